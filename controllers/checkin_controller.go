package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhive/studyhive/services"
	"github.com/studyhive/studyhive/utils"
)

// CheckInController exposes the check-in service over HTTP.
type CheckInController struct {
	checkIns *services.CheckInService
	ledger   *services.RewardsLedger
}

// NewCheckInController creates a new controller instance.
func NewCheckInController(checkIns *services.CheckInService, ledger *services.RewardsLedger) *CheckInController {
	return &CheckInController{checkIns: checkIns, ledger: ledger}
}

// CreateCheckIn records a study check-in for the authenticated caller.
func (c *CheckInController) CreateCheckIn(ctx *gin.Context) {
	var req struct {
		RoomID          uint   `json:"room_id" binding:"required"`
		CheckInType     string `json:"checkin_type" binding:"required"`
		StudyProgress   string `json:"study_progress"`
		Location        string `json:"location"`
		DurationMinutes int    `json:"duration_minutes"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	checkIn, err := c.checkIns.Create(userID, services.CreateCheckInInput{
		RoomID:          req.RoomID,
		CheckInType:     req.CheckInType,
		StudyProgress:   req.StudyProgress,
		Location:        req.Location,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"checkin_id": checkIn.ID, "checkin": checkIn})
}

// GetCheckIn returns a single check-in.
func (c *CheckInController) GetCheckIn(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40041, "invalid check-in id")
		return
	}

	checkIn, err := c.checkIns.Get(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"checkin": checkIn})
}

// ListRoomCheckIns returns a room's check-ins newest first.
func (c *CheckInController) ListRoomCheckIns(ctx *gin.Context) {
	roomID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid room id")
		return
	}
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	checkIns, total, err := c.checkIns.ListForRoom(roomID, page, pageSize)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{
		"items":      checkIns,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// MyStreak returns the caller's streak record.
func (c *CheckInController) MyStreak(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	streak, err := c.ledger.GetStudyStreak(userID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"streak": streak})
}
