package repositories

import (
	"gathero_backend/internal/models"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	Create(db *gorm.DB, entry *models.ActivityLog) error
}

type ActivityRepositoryImpl struct{}

func NewActivityRepository() ActivityRepository {
	return &ActivityRepositoryImpl{}
}

func (r *ActivityRepositoryImpl) Create(db *gorm.DB, entry *models.ActivityLog) error {
	return db.Create(entry).Error
}
