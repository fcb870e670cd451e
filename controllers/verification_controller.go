package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/services"
	"github.com/studyhive/studyhive/utils"
)

// VerificationController exposes the verification engine over HTTP.
type VerificationController struct {
	engine *services.VerificationEngine
	photos *services.PhotoStorage
}

// NewVerificationController creates a new controller instance. photos may be
// nil when the object store is not configured; the presign endpoint then
// reports the feature unavailable.
func NewVerificationController(engine *services.VerificationEngine, photos *services.PhotoStorage) *VerificationController {
	return &VerificationController{engine: engine, photos: photos}
}

// SubmitVerification opens a verification request for a photo check-in.
func (v *VerificationController) SubmitVerification(ctx *gin.Context) {
	var req struct {
		CheckInID uint   `json:"checkin_id" binding:"required"`
		PhotoURL  string `json:"photo_url" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40050, "invalid request payload")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	request, err := v.engine.Submit(userID, req.CheckInID, req.PhotoURL)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{"verification_id": request.ID, "verification": request})
}

// CastVote records one peer vote on a pending verification request.
func (v *VerificationController) CastVote(ctx *gin.Context) {
	verificationID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid verification id")
		return
	}

	var req struct {
		Vote   string `json:"vote" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40052, "invalid request payload")
		return
	}

	voterID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	request, err := v.engine.CastVote(voterID, verificationID, req.Vote, req.Reason)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	approve, reject := models.TallyVotes(request.Votes)
	utils.Success(ctx, gin.H{
		"status":         request.Status,
		"approve_count":  approve,
		"reject_count":   reject,
		"required_votes": request.RequiredVotes,
	})
}

// GetVerification returns one verification request with its votes.
func (v *VerificationController) GetVerification(ctx *gin.Context) {
	id, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40051, "invalid verification id")
		return
	}

	request, err := v.engine.Get(id)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"verification": request})
}

// ListRoomVerifications returns a room's verification requests, optionally
// filtered by status (e.g. ?status=pending for the review queue).
func (v *VerificationController) ListRoomVerifications(ctx *gin.Context) {
	roomID, ok := parseUintParam(ctx, "id")
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid room id")
		return
	}
	status := ctx.Query("status")
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	requests, total, err := v.engine.ListForRoom(roomID, status, page, pageSize)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{
		"items":      requests,
		"pagination": paginationPayload(page, pageSize, total),
	})
}

// PhotoUploadURL hands out a presigned upload slot for a check-in photo.
func (v *VerificationController) PhotoUploadURL(ctx *gin.Context) {
	if v.photos == nil {
		utils.Error(ctx, http.StatusServiceUnavailable, 50350, "photo storage is not configured")
		return
	}

	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var req struct {
		ContentType string `json:"content_type"`
	}
	// Body is optional; default content type is image/jpeg.
	_ = ctx.ShouldBindJSON(&req)

	upload, err := v.photos.PresignUpload(ctx.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}
	utils.Success(ctx, gin.H{"upload": upload})
}
