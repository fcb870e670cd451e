package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// RoomController manages study rooms and membership. These are thin CRUD
// handlers; the verification core only depends on the membership rows they
// maintain.
type RoomController struct {
	db *gorm.DB
}

// NewRoomController creates a new controller instance.
func NewRoomController(db *gorm.DB) *RoomController {
	return &RoomController{db: db}
}

// CreateRoom opens a new study room with the caller as owner and first member.
func (r *RoomController) CreateRoom(ctx *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required,min=1,max=128"`
		Subject     string `json:"subject"`
		Description string `json:"description"`
		MaxMembers  int    `json:"max_members"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid request payload")
		return
	}

	name := utils.Sanitize(strings.TrimSpace(req.Name))
	if name == "" {
		utils.Error(ctx, http.StatusBadRequest, 40031, "room name cannot be empty")
		return
	}
	if req.MaxMembers <= 0 {
		req.MaxMembers = 50
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	room := models.Room{
		Name:        name,
		Subject:     utils.Sanitize(strings.TrimSpace(req.Subject)),
		Description: utils.Sanitize(req.Description),
		OwnerID:     userID,
		MaxMembers:  req.MaxMembers,
	}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&room).Error; err != nil {
			return err
		}
		member := models.RoomMember{RoomID: room.ID, UserID: userID, Role: models.RoomRoleOwner}
		return tx.Create(&member).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to create room")
		return
	}

	utils.Success(ctx, gin.H{"room": room})
}

// JoinRoom adds the caller to a room's participant set.
func (r *RoomController) JoinRoom(ctx *gin.Context) {
	roomID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid room id")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var room models.Room
	if err := r.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "room not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load room")
		return
	}

	var existing int64
	if err := r.db.Model(&models.RoomMember{}).
		Where("room_id = ? AND user_id = ?", roomID, userID).
		Count(&existing).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to check membership")
		return
	}
	if existing > 0 {
		utils.Error(ctx, http.StatusConflict, 40930, "you are already a member of this room")
		return
	}

	var members int64
	if err := r.db.Model(&models.RoomMember{}).
		Where("room_id = ?", roomID).
		Count(&members).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50032, "failed to check membership")
		return
	}
	if int(members) >= room.MaxMembers {
		utils.Error(ctx, http.StatusConflict, 40931, "room is full")
		return
	}

	member := models.RoomMember{RoomID: roomID, UserID: userID, Role: models.RoomRoleMember}
	if err := r.db.Create(&member).Error; err != nil {
		// Unique index turns a racing duplicate join into a conflict.
		utils.Error(ctx, http.StatusConflict, 40930, "you are already a member of this room")
		return
	}

	utils.Success(ctx, gin.H{"message": "joined room", "room_id": roomID})
}

// LeaveRoom removes the caller from a room. The owner cannot leave their own
// room; rooms without owners would orphan their check-in history.
func (r *RoomController) LeaveRoom(ctx *gin.Context) {
	roomID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid room id")
		return
	}
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var member models.RoomMember
	err := r.db.Where("room_id = ? AND user_id = ?", roomID, userID).First(&member).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Error(ctx, http.StatusNotFound, 40431, "you are not a member of this room")
		return
	}
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50033, "failed to load membership")
		return
	}
	if member.Role == models.RoomRoleOwner {
		utils.Error(ctx, http.StatusConflict, 40932, "the room owner cannot leave the room")
		return
	}

	if err := r.db.Delete(&member).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50034, "failed to leave room")
		return
	}
	utils.Success(ctx, gin.H{"message": "left room", "room_id": roomID})
}

// GetRoom returns a room with its member count.
func (r *RoomController) GetRoom(ctx *gin.Context) {
	roomID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid room id")
		return
	}

	var room models.Room
	if err := r.db.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "room not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to load room")
		return
	}

	var members int64
	if err := r.db.Model(&models.RoomMember{}).Where("room_id = ?", roomID).Count(&members).Error; err != nil {
		members = 0
	}

	utils.Success(ctx, gin.H{"room": room, "member_count": members})
}

// ListRooms returns rooms newest first, optionally filtered by subject.
func (r *RoomController) ListRooms(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))
	subject := strings.TrimSpace(ctx.Query("subject"))

	q := r.db.Model(&models.Room{})
	if subject != "" {
		q = q.Where("subject = ?", subject)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50035, "failed to count rooms")
		return
	}

	var rooms []models.Room
	if err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&rooms).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50036, "failed to list rooms")
		return
	}

	utils.Success(ctx, gin.H{
		"items":      rooms,
		"pagination": paginationPayload(page, pageSize, total),
	})
}
