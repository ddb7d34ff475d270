package repositories

import (
	"errors"

	"gathero_backend/internal/models"

	"gorm.io/gorm"
)

var ErrParticipationNotFound = errors.New("participation not found")

type ParticipationRepository interface {
	Create(db *gorm.DB, p *models.Participation) error
	FindByID(db *gorm.DB, id string) (*models.Participation, error)
	FindByUserAndEvent(db *gorm.DB, userID, eventID string) (*models.Participation, error)
	// FindApprovedByEvent returns the notification target set for an
	// event, with users preloaded, in stable creation order.
	FindApprovedByEvent(db *gorm.DB, eventID string) ([]models.Participation, error)
	FindByEvent(db *gorm.DB, eventID string) ([]models.Participation, error)
	UpdateStatus(db *gorm.DB, id string, status models.ParticipationStatus) error
	// MarkDeletedByEvent cascades the event's soft deletion onto its
	// participations.
	MarkDeletedByEvent(db *gorm.DB, eventID string) error
	CountApprovedByEvent(db *gorm.DB, eventID string) (int64, error)
}

type ParticipationRepositoryImpl struct{}

func NewParticipationRepository() ParticipationRepository {
	return &ParticipationRepositoryImpl{}
}

func (r *ParticipationRepositoryImpl) Create(db *gorm.DB, p *models.Participation) error {
	return db.Create(p).Error
}

func (r *ParticipationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Participation, error) {
	var p models.Participation
	err := db.Where("id = ? AND status <> ?", id, models.ParticipationStatusDeleted).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipationNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ParticipationRepositoryImpl) FindByUserAndEvent(db *gorm.DB, userID, eventID string) (*models.Participation, error) {
	var p models.Participation
	err := db.Where("user_id = ? AND event_id = ? AND status <> ?",
		userID, eventID, models.ParticipationStatusDeleted).
		First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipationNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ParticipationRepositoryImpl) FindApprovedByEvent(db *gorm.DB, eventID string) ([]models.Participation, error) {
	var participations []models.Participation
	err := db.Preload("User").
		Where("event_id = ? AND status = ?", eventID, models.ParticipationStatusApproved).
		Order("created_at ASC").
		Find(&participations).Error
	if err != nil {
		return nil, err
	}
	return participations, nil
}

func (r *ParticipationRepositoryImpl) FindByEvent(db *gorm.DB, eventID string) ([]models.Participation, error) {
	var participations []models.Participation
	err := db.Preload("User").
		Where("event_id = ? AND status <> ?", eventID, models.ParticipationStatusDeleted).
		Order("created_at ASC").
		Find(&participations).Error
	if err != nil {
		return nil, err
	}
	return participations, nil
}

func (r *ParticipationRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.ParticipationStatus) error {
	result := db.Model(&models.Participation{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipationNotFound
	}
	return nil
}

func (r *ParticipationRepositoryImpl) MarkDeletedByEvent(db *gorm.DB, eventID string) error {
	return db.Model(&models.Participation{}).
		Where("event_id = ? AND status <> ?", eventID, models.ParticipationStatusDeleted).
		Update("status", models.ParticipationStatusDeleted).Error
}

func (r *ParticipationRepositoryImpl) CountApprovedByEvent(db *gorm.DB, eventID string) (int64, error) {
	var count int64
	err := db.Model(&models.Participation{}).
		Where("event_id = ? AND status = ?", eventID, models.ParticipationStatusApproved).
		Count(&count).Error
	return count, err
}
