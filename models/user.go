package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a StudyHive account. Passwords are stored as bcrypt hashes only.
//
// Point totals (the overall counter plus the per-category breakdown) are
// mutated exclusively through atomic SQL increments in the rewards ledger;
// nothing reads a total and writes it back.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"size:64;not null" json:"username"`
	Email          string         `gorm:"size:255" json:"email"`
	PasswordHash   string         `gorm:"size:255" json:"-"`
	Provider       string         `gorm:"size:32" json:"provider"`
	ProviderID     string         `gorm:"size:255" json:"provider_id"`
	AvatarURL      string         `gorm:"size:512" json:"avatar_url"`
	Points         int            `gorm:"default:0" json:"points"`
	CheckInPoints  int            `gorm:"default:0" json:"checkin_points"`
	VotePoints     int            `gorm:"default:0" json:"vote_points"`
	VerifiedPoints int            `gorm:"default:0" json:"verified_points"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook ensures timestamps are set even when not provided.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
	return nil
}

// BeforeUpdate ensures the UpdatedAt timestamp is refreshed.
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}

// Point categories recognized by the rewards ledger.
const (
	PointCategoryCheckIn  = "checkin"
	PointCategoryVote     = "vote"
	PointCategoryVerified = "verified"
)

// PointColumn maps an action category to the users column holding its subtotal.
func PointColumn(category string) (string, bool) {
	switch category {
	case PointCategoryCheckIn:
		return "check_in_points", true
	case PointCategoryVote:
		return "vote_points", true
	case PointCategoryVerified:
		return "verified_points", true
	default:
		return "", false
	}
}

// PointEvent is an append-only record of a single award. Timeframe
// leaderboards aggregate these rows; the user columns remain the
// authoritative all-time totals.
type PointEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Category  string    `gorm:"size:16;not null;index" json:"category"`
	Amount    int       `gorm:"not null" json:"amount"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
