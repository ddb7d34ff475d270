package services

import (
	"context"
	"errors"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/repositories"
	"gathero_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SettingsService interface {
	GetEventSettings(ctx context.Context, db *gorm.DB) (*dto.EventSettings, error)
	UpdateEventSettings(ctx context.Context, db *gorm.DB, actorID string, req *dto.UpdateSettingsRequest) (*dto.EventSettings, error)
}

type settingsService struct {
	settingsRepo repositories.SettingsRepository
	activity     ActivityService
}

func NewSettingsService(settingsRepo repositories.SettingsRepository, activity ActivityService) SettingsService {
	return &settingsService{settingsRepo: settingsRepo, activity: activity}
}

func (s *settingsService) GetEventSettings(ctx context.Context, db *gorm.DB) (*dto.EventSettings, error) {
	settings, err := s.settingsRepo.GetEventSettings(db)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsMissing) {
			return nil, apperrors.ErrSettingsMissing
		}
		return nil, apperrors.InternalError(err)
	}
	return settings, nil
}

func (s *settingsService) UpdateEventSettings(ctx context.Context, db *gorm.DB, actorID string, req *dto.UpdateSettingsRequest) (*dto.EventSettings, error) {
	ceiling := req.MaxAttendeesPerEvent
	settings := &dto.EventSettings{MaxAttendeesPerEvent: &ceiling}

	if err := s.settingsRepo.UpdateEventSettings(db, settings); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.activity.Log(db, actorID, "updated", "settings", "event_settings", map[string]interface{}{
		"max_attendees_per_event": ceiling,
	})
	return settings, nil
}
