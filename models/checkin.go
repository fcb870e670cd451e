package models

import (
	"encoding/json"
	"time"
)

// Check-in types. Photo check-ins start unverified and only a successful
// peer verification flips them; every other type is self-attested.
const (
	CheckInTypePhoto          = "photo"
	CheckInTypeVerification   = "verification"
	CheckInTypeProgressUpdate = "progress_update"
)

// ValidCheckInType reports whether t is one of the recognized check-in types.
func ValidCheckInType(t string) bool {
	switch t {
	case CheckInTypePhoto, CheckInTypeVerification, CheckInTypeProgressUpdate:
		return true
	}
	return false
}

// CheckIn records a user asserting they are studying in a room.
//
// IsVerified is true at creation for every non-photo type. For photo
// check-ins it is flipped by the verification engine and nothing else;
// VerifiedBy then holds the approving voter IDs as a JSON array.
type CheckIn struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"index;not null" json:"user_id"`
	RoomID          uint      `gorm:"index;not null" json:"room_id"`
	CheckInType     string    `gorm:"size:32;not null" json:"checkin_type"`
	PhotoURL        string    `gorm:"size:512" json:"photo_url"`
	IsVerified      bool      `gorm:"default:false" json:"is_verified"`
	VerifiedBy      string    `gorm:"type:text" json:"verified_by"` // JSON array of user IDs
	StudyProgress   string    `gorm:"type:text" json:"study_progress"`
	Location        string    `gorm:"size:255" json:"location"`
	DurationMinutes int       `gorm:"default:0" json:"duration_minutes"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// EncodeVerifiedBy renders a voter ID list as the stored JSON form.
func EncodeVerifiedBy(voterIDs []uint) string {
	if len(voterIDs) == 0 {
		return "[]"
	}
	b, err := json.Marshal(voterIDs)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// VerifiedByIDs parses the stored JSON array back into voter IDs.
func (c *CheckIn) VerifiedByIDs() []uint {
	if c.VerifiedBy == "" {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal([]byte(c.VerifiedBy), &ids); err != nil {
		return nil
	}
	return ids
}
