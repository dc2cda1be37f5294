package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"visitboard-server/internal/config"
	"visitboard-server/internal/logger"
	"visitboard-server/internal/models"
	"visitboard-server/internal/notify"
	"visitboard-server/internal/reminder"
	"visitboard-server/internal/routes"
	"visitboard-server/internal/scheduling"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database connection
	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		logger.SLog.Fatalf("Error connecting to database: %v", err)
	}

	// Outbound push sender; without a configured gateway reminders are
	// computed but discarded.
	var sender notify.Sender = notify.Noop{}
	if cfg.Push.URL != "" {
		pushSender, err := notify.NewPushSender(cfg.Push.URL, cfg.Push.Token, cfg.Push.Target)
		if err != nil {
			logger.SLog.Fatalf("Error configuring push sender: %v", err)
		}
		sender = pushSender
	} else {
		logger.Log.Warn("PUSH_URL not set, reminder sends are disabled")
	}

	runner := &reminder.Runner{
		Store:  &reminder.GormStore{DB: db},
		Sender: sender,
		Zone:   cfg.Location,
		Log:    logger.Log,
	}

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Set up routes
	routes.SetupRoutes(router, db, cfg, runner)

	// In-process reminder schedule. Duplicate firings near a boundary are
	// fine: the dedup gate suppresses resends per appointment per date.
	if cfg.Reminder.Cron != "" {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.Reminder.Cron, func() {
			target := scheduling.DateOf(time.Now(), cfg.Location).Next()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			report, err := runner.Run(ctx, target, reminder.ModePerSchedule, false)
			if err != nil {
				logger.Log.Error("scheduled reminder run failed", zap.Error(err))
				return
			}
			logger.Log.Info("scheduled reminder run finished",
				zap.String("targetDate", report.TargetDate),
				zap.Int("matched", report.Matched),
				zap.Int("sent", report.Sent),
				zap.Int("skipped", report.Skipped),
				zap.Int("failed", report.Failed),
			)
		})
		if err != nil {
			logger.SLog.Fatalf("Invalid REMINDER_CRON %q: %v", cfg.Reminder.Cron, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	logger.SLog.Infof("Server running on port %s", cfg.Port)
	if err := router.Run(serverAddr); err != nil {
		logger.SLog.Fatalf("Failed to start server: %v", err)
	}
}
