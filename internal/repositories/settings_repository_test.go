package repositories

import (
	"fmt"
	"testing"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Settings{}))
	return db
}

func TestGetEventSettingsMissingRow(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepository()

	_, err := repo.GetEventSettings(db)
	assert.ErrorIs(t, err, ErrSettingsMissing)
}

func TestGetEventSettingsMissingCeiling(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepository()

	require.NoError(t, db.Create(&models.Settings{
		EventSettings: datatypes.JSON([]byte(`{"somethingElse": 1}`)),
	}).Error)

	_, err := repo.GetEventSettings(db)
	assert.ErrorIs(t, err, ErrSettingsMissing)
}

func TestGetEventSettingsEmptyPayload(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepository()

	require.NoError(t, db.Create(&models.Settings{}).Error)

	_, err := repo.GetEventSettings(db)
	assert.ErrorIs(t, err, ErrSettingsMissing)
}

func TestEventSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewSettingsRepository()

	ceiling := 250
	require.NoError(t, repo.UpdateEventSettings(db, &dto.EventSettings{
		MaxAttendeesPerEvent: &ceiling,
	}))

	settings, err := repo.GetEventSettings(db)
	require.NoError(t, err)
	require.NotNil(t, settings.MaxAttendeesPerEvent)
	assert.Equal(t, 250, *settings.MaxAttendeesPerEvent)

	// Updating again overwrites the singleton rather than adding rows.
	ceiling = 100
	require.NoError(t, repo.UpdateEventSettings(db, &dto.EventSettings{
		MaxAttendeesPerEvent: &ceiling,
	}))

	var count int64
	require.NoError(t, db.Model(&models.Settings{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	settings, err = repo.GetEventSettings(db)
	require.NoError(t, err)
	assert.Equal(t, 100, *settings.MaxAttendeesPerEvent)
}
