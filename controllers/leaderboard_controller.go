package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/services"
	"github.com/studyhive/studyhive/utils"
)

// LeaderboardController serves materialized ranking snapshots.
type LeaderboardController struct {
	leaderboards *services.LeaderboardService
}

// NewLeaderboardController creates a new controller instance.
func NewLeaderboardController(leaderboards *services.LeaderboardService) *LeaderboardController {
	return &LeaderboardController{leaderboards: leaderboards}
}

// GetLeaderboard returns the ranked view for a (type, category) pair,
// truncated to the requested limit.
func (l *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	lbType := strings.TrimSpace(ctx.DefaultQuery("type", models.LeaderboardWeekly))
	category := strings.TrimSpace(ctx.DefaultQuery("category", models.LeaderboardCategoryOverall))

	limit := 20
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.Error(ctx, http.StatusBadRequest, 40060, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	snapshot, entries, err := l.leaderboards.Get(lbType, category, limit)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	utils.Success(ctx, gin.H{
		"leaderboard": gin.H{
			"key":          snapshot.Key,
			"type":         snapshot.Type,
			"category":     snapshot.Category,
			"timeframe":    snapshot.Timeframe,
			"generated_at": snapshot.GeneratedAt,
			"entries":      entries,
		},
	})
}
