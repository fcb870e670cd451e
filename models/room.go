package models

import "time"

// Room is a shared study space. Check-ins always happen inside a room and
// only its members may submit them.
type Room struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:128;not null" json:"name"`
	Subject     string    `gorm:"size:64" json:"subject"`
	Description string    `gorm:"type:text" json:"description"`
	OwnerID     uint      `gorm:"index;not null" json:"owner_id"`
	MaxMembers  int       `gorm:"default:50" json:"max_members"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RoomMember links a user to a room. The composite unique index makes
// joining idempotent at the schema level.
type RoomMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RoomID    uint      `gorm:"uniqueIndex:idx_room_user;not null" json:"room_id"`
	UserID    uint      `gorm:"uniqueIndex:idx_room_user;not null" json:"user_id"`
	Role      string    `gorm:"size:16;default:'member'" json:"role"`
	CreatedAt time.Time `json:"joined_at"`
}

// Membership roles.
const (
	RoomRoleOwner  = "owner"
	RoomRoleMember = "member"
)
