package repositories

import (
	"encoding/json"
	"errors"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrSettingsMissing covers both an absent Settings row and a payload
// without the required ceiling. The orchestrator cannot proceed
// without a known ceiling, so callers surface this as a 500.
var ErrSettingsMissing = errors.New("system settings missing")

type SettingsRepository interface {
	// GetEventSettings resolves the singleton record and decodes its
	// event payload.
	GetEventSettings(db *gorm.DB) (*dto.EventSettings, error)
	UpdateEventSettings(db *gorm.DB, settings *dto.EventSettings) error
}

type SettingsRepositoryImpl struct{}

func NewSettingsRepository() SettingsRepository {
	return &SettingsRepositoryImpl{}
}

func (r *SettingsRepositoryImpl) GetEventSettings(db *gorm.DB) (*dto.EventSettings, error) {
	var record models.Settings
	if err := db.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSettingsMissing
		}
		return nil, err
	}

	if len(record.EventSettings) == 0 {
		return nil, ErrSettingsMissing
	}

	var settings dto.EventSettings
	if err := json.Unmarshal(record.EventSettings, &settings); err != nil {
		return nil, ErrSettingsMissing
	}
	if settings.MaxAttendeesPerEvent == nil {
		return nil, ErrSettingsMissing
	}
	return &settings, nil
}

func (r *SettingsRepositoryImpl) UpdateEventSettings(db *gorm.DB, settings *dto.EventSettings) error {
	payload, err := json.Marshal(settings)
	if err != nil {
		return err
	}

	var record models.Settings
	err = db.First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		record.EventSettings = datatypes.JSON(payload)
		return db.Create(&record).Error
	}
	if err != nil {
		return err
	}

	record.EventSettings = datatypes.JSON(payload)
	return db.Save(&record).Error
}
