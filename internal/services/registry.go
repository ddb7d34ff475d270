package services

import (
	"gathero_backend/internal/auth"
	"gathero_backend/internal/config"
	"gathero_backend/internal/email"
	"gathero_backend/internal/repositories"
	"gathero_backend/internal/storage"
)

// Container wires repositories and services together once at startup.
type Container struct {
	Auth          AuthService
	Users         UserService
	Events        EventService
	Participation ParticipationService
	Notifications NotificationService
	Comments      CommentService
	Settings      SettingsService
	Media         MediaService
	Activity      ActivityService
	Tokens        *auth.TokenManager

	NotificationRepo repositories.NotificationRepository
	UserRepo         repositories.UserRepository
}

func NewContainer(cfg *config.Config, store storage.Storage) *Container {
	userRepo := repositories.NewUserRepository()
	eventRepo := repositories.NewEventRepository()
	participationRepo := repositories.NewParticipationRepository()
	notificationRepo := repositories.NewNotificationRepository()
	commentRepo := repositories.NewCommentRepository()
	settingsRepo := repositories.NewSettingsRepository()
	activityRepo := repositories.NewActivityRepository()

	media := NewMediaService(store, cfg.Storage.SignedURLTTL, cfg.Storage.CallTimeout)
	activity := NewActivityService(activityRepo)
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	mailer := email.NewSender(cfg.Email)

	return &Container{
		Auth:  NewAuthService(userRepo, tokens, mailer),
		Users: NewUserService(userRepo),
		Events: NewEventService(
			eventRepo, participationRepo, notificationRepo, settingsRepo,
			userRepo, media, activity,
			UploadLimits{
				MaxSize:      cfg.Upload.MaxSize,
				AllowedTypes: cfg.Upload.AllowedTypes,
			},
		),
		Participation: NewParticipationService(participationRepo, eventRepo, notificationRepo, userRepo, activity),
		Notifications: NewNotificationService(notificationRepo),
		Comments:      NewCommentService(commentRepo, eventRepo, notificationRepo, userRepo),
		Settings:      NewSettingsService(settingsRepo, activity),
		Media:         media,
		Activity:      activity,
		Tokens:        tokens,

		NotificationRepo: notificationRepo,
		UserRepo:         userRepo,
	}
}
