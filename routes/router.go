package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/studyhive/studyhive/config"
	"github.com/studyhive/studyhive/controllers"
	"github.com/studyhive/studyhive/middleware"
	"github.com/studyhive/studyhive/services"
	"github.com/studyhive/studyhive/utils"
)

// Services bundles the constructed domain services the router wires into
// controllers. Everything is injected; nothing here is a lazily built global.
type Services struct {
	CheckIns     *services.CheckInService
	Engine       *services.VerificationEngine
	Ledger       *services.RewardsLedger
	Leaderboards *services.LeaderboardService
	Photos       *services.PhotoStorage
}

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, svc Services) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	roomController := controllers.NewRoomController(db)
	checkInController := controllers.NewCheckInController(svc.CheckIns, svc.Ledger)
	verificationController := controllers.NewVerificationController(svc.Engine, svc.Photos)
	leaderboardController := controllers.NewLeaderboardController(svc.Leaderboards)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/oauth/:provider/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/:provider/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public reads
	api.GET("/rooms", roomController.ListRooms)
	api.GET("/rooms/:id", roomController.GetRoom)
	api.GET("/rooms/:id/checkins", checkInController.ListRoomCheckIns)
	api.GET("/leaderboards", leaderboardController.GetLeaderboard)
	api.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())
	protected.POST("/rooms", roomController.CreateRoom)
	protected.POST("/rooms/:id/join", roomController.JoinRoom)
	protected.POST("/rooms/:id/leave", roomController.LeaveRoom)
	protected.POST("/checkins", checkInController.CreateCheckIn)
	protected.GET("/checkins/:id", checkInController.GetCheckIn)
	protected.GET("/streaks/me", checkInController.MyStreak)
	protected.POST("/uploads/photo-url", verificationController.PhotoUploadURL)
	protected.POST("/verifications", verificationController.SubmitVerification)
	protected.GET("/verifications/:id", verificationController.GetVerification)
	protected.POST("/verifications/:id/votes", verificationController.CastVote)
	protected.GET("/rooms/:id/verifications", verificationController.ListRoomVerifications)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
