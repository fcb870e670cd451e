package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/utils"
)

// StatsController provides community statistics such as counts and today's activity.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a new StatsController instance.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns aggregate statistics for the community. Each value
// degrades to zero on failure instead of failing the whole endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var roomCount int64
	var checkInCount int64
	var checkInsToday int64
	var pendingVerifications int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.Room{}).Count(&roomCount).Error; err != nil {
		roomCount = 0
	}
	if err := s.db.Model(&models.CheckIn{}).Count(&checkInCount).Error; err != nil {
		checkInCount = 0
	}

	// Streak arithmetic runs on UTC days; count today's check-ins the same way.
	now := time.Now().UTC()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if err := s.db.Model(&models.CheckIn{}).
		Where("created_at >= ?", todayStart).
		Count(&checkInsToday).Error; err != nil {
		checkInsToday = 0
	}

	if err := s.db.Model(&models.VerificationRequest{}).
		Where("status = ?", models.VerificationPending).
		Count(&pendingVerifications).Error; err != nil {
		pendingVerifications = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":            userCount,
		"room_count":            roomCount,
		"checkin_count":         checkInCount,
		"checkins_today":        checkInsToday,
		"pending_verifications": pendingVerifications,
	})
}
