package main

import (
	"time"

	"github.com/studyhive/studyhive/config"
	"github.com/studyhive/studyhive/models"
	"github.com/studyhive/studyhive/routes"
	"github.com/studyhive/studyhive/services"
	"github.com/studyhive/studyhive/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}
	defer func() { _ = utils.Logger.Sync() }()

	db := config.InitDatabase(
		&models.User{},
		&models.Room{},
		&models.RoomMember{},
		&models.CheckIn{},
		&models.VerificationRequest{},
		&models.VerificationVote{},
		&models.StudyStreak{},
		&models.PointEvent{},
		&models.Leaderboard{},
	)

	ledger := services.NewRewardsLedger(db)
	engine := services.NewVerificationEngine(
		db,
		ledger,
		cfg.RequiredVotes,
		time.Duration(cfg.VerificationTTLHours)*time.Hour,
		cfg.VoteRewardPoints,
		cfg.VerifiedRewardPoints,
	)
	checkIns := services.NewCheckInService(db, ledger, cfg.CheckInRewardPoints)
	leaderboards := services.NewLeaderboardService(db, time.Duration(cfg.LeaderboardStalenessMinutes)*time.Minute)

	photos, err := services.NewPhotoStorage(cfg)
	if err != nil {
		utils.Sugar.Warnf("photo uploads disabled: %v", err)
		photos = nil
	}

	r := routes.SetupRouter(db, routes.Services{
		CheckIns:     checkIns,
		Engine:       engine,
		Ledger:       ledger,
		Leaderboards: leaderboards,
		Photos:       photos,
	})

	sweeper := services.NewVerificationSweeper(engine, time.Duration(cfg.SweepIntervalMinutes)*time.Minute)
	sweeper.Start()
	defer sweeper.Stop()

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
