package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/studyhive/studyhive/models"
)

// RewardsLedger awards points and maintains study streaks.
//
// Point totals are only ever touched with atomic `SET x = x + ?` updates so
// concurrent awards to the same user (a check-in bonus racing a vote bonus)
// can never lose an increment. Streak updates are read-modify-write by
// nature and are serialized per user with a row lock instead.
type RewardsLedger struct {
	db *gorm.DB
}

// NewRewardsLedger creates a ledger bound to the given database handle.
func NewRewardsLedger(db *gorm.DB) *RewardsLedger {
	return &RewardsLedger{db: db}
}

// AwardPoints adds amount to the user's total and to the category subtotal,
// and appends a point event for timeframe leaderboards.
func (l *RewardsLedger) AwardPoints(userID uint, category string, amount int) error {
	if userID == 0 {
		return invalidArgument("user id is required")
	}
	column, ok := models.PointColumn(category)
	if !ok {
		return invalidArgument("unknown point category")
	}
	if amount <= 0 {
		return invalidArgument("point amount must be positive")
	}

	return l.db.Transaction(func(tx *gorm.DB) error {
		event := models.PointEvent{UserID: userID, Category: category, Amount: amount}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		res := tx.Model(&models.User{}).Where("id = ?", userID).UpdateColumns(map[string]interface{}{
			"points": gorm.Expr("points + ?", amount),
			column:   gorm.Expr(column+" + ?", amount),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return notFound("user not found")
		}
		return nil
	})
}

// UpdateStudyStreak applies one check-in to the user's streak row. Calendar
// days are computed in UTC. The row is locked for the duration of the
// transaction so rapid consecutive check-ins by the same user serialize.
func (l *RewardsLedger) UpdateStudyStreak(userID uint, now time.Time, minutes int) (*models.StudyStreak, error) {
	if userID == 0 {
		return nil, invalidArgument("user id is required")
	}
	today := now.UTC().Format(models.DayLayout)

	var streak models.StudyStreak
	err := l.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&streak).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			streak = models.NewStudyStreak(userID, today, minutes)
			return tx.Create(&streak).Error
		}
		if err != nil {
			return err
		}
		if !streak.Advance(today, minutes) {
			return nil // already counted today
		}
		return tx.Save(&streak).Error
	})
	if err != nil {
		return nil, err
	}
	return &streak, nil
}

// GetStudyStreak loads the streak row for a user, or NotFound.
func (l *RewardsLedger) GetStudyStreak(userID uint) (*models.StudyStreak, error) {
	var streak models.StudyStreak
	if err := l.db.Where("user_id = ?", userID).First(&streak).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("no study activity recorded yet")
		}
		return nil, err
	}
	return &streak, nil
}
