package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

const leaderboardCachePrefix = "cache:leaderboard:"

// LeaderboardService materializes ranked snapshots per (type, category,
// timeframe). A snapshot is served from Redis while fresh (the staleness
// window, 1 hour by default); on a miss the database snapshot row is checked
// before regenerating, so a cache flush does not force a recompute.
type LeaderboardService struct {
	db        *gorm.DB
	staleness time.Duration
}

// NewLeaderboardService creates the service with the given staleness window.
func NewLeaderboardService(db *gorm.DB, staleness time.Duration) *LeaderboardService {
	if staleness <= 0 {
		staleness = time.Hour
	}
	return &LeaderboardService{db: db, staleness: staleness}
}

// Get returns the leaderboard for a type/category pair, truncated to limit.
func (s *LeaderboardService) Get(lbType, category string, limit int) (*models.Leaderboard, []models.LeaderboardEntry, error) {
	if !models.ValidLeaderboardType(lbType) {
		return nil, nil, invalidArgument("unknown leaderboard type")
	}
	if !models.ValidLeaderboardCategory(category) {
		return nil, nil, invalidArgument("unknown leaderboard category")
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	now := time.Now().UTC()
	key := models.LeaderboardKey(lbType, category, now)

	if b, ok := utils.CacheGetBytes(leaderboardCachePrefix + key); ok {
		var cached models.Leaderboard
		if err := json.Unmarshal(b, &cached); err == nil {
			if entries, err := decodeEntries(cached.Entries); err == nil {
				return &cached, truncate(entries, limit), nil
			}
		}
	}

	// Redis miss: a recent snapshot row still satisfies the staleness window.
	var snapshot models.Leaderboard
	err := s.db.First(&snapshot, "`key` = ?", key).Error
	if err == nil && now.Sub(snapshot.GeneratedAt) < s.staleness {
		if entries, decErr := decodeEntries(snapshot.Entries); decErr == nil {
			s.prime(&snapshot)
			return &snapshot, truncate(entries, limit), nil
		}
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, err
	}

	entries, err := s.generate(lbType, category, now)
	if err != nil {
		return nil, nil, err
	}

	encoded, err := json.Marshal(entries)
	if err != nil {
		return nil, nil, err
	}
	snapshot = models.Leaderboard{
		Key:         key,
		Type:        lbType,
		Category:    category,
		Timeframe:   models.TimeframeKey(lbType, now),
		Entries:     string(encoded),
		GeneratedAt: now,
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&snapshot).Error; err != nil {
		utils.Sugar.Warnf("failed to store leaderboard snapshot %s: %v", key, err)
	}
	s.prime(&snapshot)

	return &snapshot, truncate(entries, limit), nil
}

// prime writes a snapshot into Redis for the rest of its staleness window.
func (s *LeaderboardService) prime(lb *models.Leaderboard) {
	ttl := s.staleness - time.Since(lb.GeneratedAt)
	if ttl <= 0 {
		return
	}
	utils.CacheSetJSON(leaderboardCachePrefix+lb.Key, lb, ttl)
}

// generate ranks up to 100 users. all_time reads the atomic counters on the
// users table; bounded timeframes aggregate point events inside the period.
func (s *LeaderboardService) generate(lbType, category string, now time.Time) ([]models.LeaderboardEntry, error) {
	const snapshotSize = 100

	start, end, bounded := models.PeriodBounds(lbType, now)
	if !bounded {
		return s.generateAllTime(category, snapshotSize)
	}

	q := s.db.Model(&models.PointEvent{}).
		Select("user_id, SUM(amount) AS total").
		Where("created_at >= ? AND created_at < ?", start, end)
	if category != models.LeaderboardCategoryOverall {
		q = q.Where("category = ?", category)
	}

	var rows []struct {
		UserID uint
		Total  int
	}
	if err := q.Group("user_id").
		Order("total DESC").
		Limit(snapshotSize).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.UserID)
	}
	users, err := s.loadUsers(ids)
	if err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(rows))
	for i, r := range rows {
		entry := models.LeaderboardEntry{Rank: i + 1, UserID: r.UserID, Points: r.Total}
		if u, ok := users[r.UserID]; ok {
			entry.Username = u.Username
			entry.AvatarURL = u.AvatarURL
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (s *LeaderboardService) generateAllTime(category string, size int) ([]models.LeaderboardEntry, error) {
	column := "points"
	if category != models.LeaderboardCategoryOverall {
		column, _ = models.PointColumn(category)
	}

	var users []models.User
	if err := s.db.Where(column + " > 0").
		Order(column + " DESC").
		Limit(size).
		Find(&users).Error; err != nil {
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, u := range users {
		points := u.Points
		switch category {
		case models.PointCategoryCheckIn:
			points = u.CheckInPoints
		case models.PointCategoryVote:
			points = u.VotePoints
		case models.PointCategoryVerified:
			points = u.VerifiedPoints
		}
		entries = append(entries, models.LeaderboardEntry{
			Rank:      i + 1,
			UserID:    u.ID,
			Username:  u.Username,
			AvatarURL: u.AvatarURL,
			Points:    points,
		})
	}
	return entries, nil
}

func (s *LeaderboardService) loadUsers(ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := s.db.Find(&users, ids).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func decodeEntries(raw string) ([]models.LeaderboardEntry, error) {
	var entries []models.LeaderboardEntry
	if raw == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func truncate(entries []models.LeaderboardEntry, limit int) []models.LeaderboardEntry {
	if len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
