package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"gathero_backend/internal/auth"
	"gathero_backend/internal/config"
	"gathero_backend/internal/logger"
	"gathero_backend/internal/middleware"
	"gathero_backend/internal/models"
	"gathero_backend/internal/routes"
	"gathero_backend/internal/services"
	"gathero_backend/internal/storage"
	"gathero_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const defaultMaxAttendees = 500

// Run boots the whole application: config, logging, database, storage,
// services, background workers and the HTTP server.
func Run() error {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)

	db, err := openDatabase(cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if err := migrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := seedSettings(db); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if err := seedAdmin(db); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	container := services.NewContainer(cfg, store)

	ctx := context.Background()
	workers.NewEventStatusWorker(db, time.Minute).Start(ctx)
	workers.NewNotificationPurgeWorker(db, container.NotificationRepo, cfg.Notifications.RetentionDays).Start(ctx)
	workers.NewTokenCleanupWorker(db, container.UserRepo).Start(ctx)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.CORS())
	router.Use(middleware.Database(db))

	routes.Register(router, container, store)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Event{},
		&models.Participation{},
		&models.Notification{},
		&models.Comment{},
		&models.Settings{},
		&models.ActivityLog{},
	)
}

// seedSettings creates the singleton settings record on first boot so
// the event pipeline always has a capacity ceiling to read.
func seedSettings(db *gorm.DB) error {
	var record models.Settings
	err := db.First(&record).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	payload, err := json.Marshal(map[string]int{"maxAttendeesPerEvent": defaultMaxAttendees})
	if err != nil {
		return err
	}
	record.EventSettings = datatypes.JSON(payload)
	return db.Create(&record).Error
}

// seedAdmin creates the initial admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD. Skipped when the variables are unset or the account
// already exists.
func seedAdmin(db *gorm.DB) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.First(&existing, "email = ?", adminEmail).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        adminEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	logger.Info("admin account created", "email", adminEmail)
	return nil
}
