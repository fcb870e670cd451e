package models

import (
	"fmt"
	"time"
)

// Leaderboard types and categories.
const (
	LeaderboardWeekly  = "weekly"
	LeaderboardMonthly = "monthly"
	LeaderboardAllTime = "all_time"

	LeaderboardCategoryOverall = "overall"
)

// ValidLeaderboardType reports whether t is a recognized ranking period.
func ValidLeaderboardType(t string) bool {
	return t == LeaderboardWeekly || t == LeaderboardMonthly || t == LeaderboardAllTime
}

// ValidLeaderboardCategory reports whether c is a recognized category.
func ValidLeaderboardCategory(c string) bool {
	if c == LeaderboardCategoryOverall {
		return true
	}
	_, ok := PointColumn(c)
	return ok
}

// TimeframeKey renders the ranking-period component of a leaderboard key:
// ISO week (YYYY-Www) for weekly, YYYY-MM for monthly, the literal
// "all_time" otherwise. The reference time is taken in UTC.
func TimeframeKey(lbType string, now time.Time) string {
	now = now.UTC()
	switch lbType {
	case LeaderboardWeekly:
		year, week := now.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case LeaderboardMonthly:
		return now.Format("2006-01")
	default:
		return LeaderboardAllTime
	}
}

// LeaderboardKey is the composite identity of one materialized snapshot.
func LeaderboardKey(lbType, category string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", lbType, category, TimeframeKey(lbType, now))
}

// PeriodBounds returns the [start, end) UTC window a timeframe covers.
// The all_time period has no bounds and returns ok=false.
func PeriodBounds(lbType string, now time.Time) (start, end time.Time, ok bool) {
	now = now.UTC()
	switch lbType {
	case LeaderboardWeekly:
		// Roll back to Monday 00:00 UTC.
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		start = day.AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7), true
	case LeaderboardMonthly:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// Leaderboard is a materialized ranked snapshot keyed by
// {type}_{category}_{timeframe}. Entries are stored as a JSON array.
type Leaderboard struct {
	Key         string    `gorm:"primaryKey;size:64" json:"key"`
	Type        string    `gorm:"size:16;not null" json:"type"`
	Category    string    `gorm:"size:16;not null" json:"category"`
	Timeframe   string    `gorm:"size:16;not null" json:"timeframe"`
	Entries     string    `gorm:"type:text" json:"-"`
	GeneratedAt time.Time `json:"generated_at"`
}

// LeaderboardEntry is one ranked row of a snapshot.
type LeaderboardEntry struct {
	Rank      int    `json:"rank"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Points    int    `json:"points"`
}
