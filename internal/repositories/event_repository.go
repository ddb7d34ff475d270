package repositories

import (
	"errors"

	"gathero_backend/internal/models"

	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type EventCriteria struct {
	Status   models.EventStatus
	Page     int
	PageSize int
}

type EventRepository interface {
	Create(db *gorm.DB, event *models.Event) error
	// FindByID loads an event by id. Soft-deleted events are treated
	// as absent.
	FindByID(db *gorm.DB, id string) (*models.Event, error)
	FindByIDWithOrganizer(db *gorm.DB, id string) (*models.Event, error)
	// Save persists the full event row and fails on constraint
	// violations.
	Save(db *gorm.DB, event *models.Event) error
	List(db *gorm.DB, criteria EventCriteria) ([]models.Event, int64, error)
	MarkDeleted(db *gorm.DB, id string) error
}

type EventRepositoryImpl struct{}

func NewEventRepository() EventRepository {
	return &EventRepositoryImpl{}
}

func (r *EventRepositoryImpl) Create(db *gorm.DB, event *models.Event) error {
	return db.Create(event).Error
}

func (r *EventRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	err := db.Where("id = ? AND status <> ?", id, models.EventStatusDeleted).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) FindByIDWithOrganizer(db *gorm.DB, id string) (*models.Event, error) {
	var event models.Event
	err := db.Preload("Organizer").
		Where("id = ? AND status <> ?", id, models.EventStatusDeleted).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepositoryImpl) Save(db *gorm.DB, event *models.Event) error {
	return db.Save(event).Error
}

// List returns non-deleted events, newest start first.
func (r *EventRepositoryImpl) List(db *gorm.DB, criteria EventCriteria) ([]models.Event, int64, error) {
	query := db.Model(&models.Event{}).
		Where("status <> ?", models.EventStatusDeleted)

	if criteria.Status != "" {
		query = query.Where("status = ?", criteria.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := criteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	var events []models.Event
	err := query.Preload("Organizer").
		Order("starts_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&events).Error
	if err != nil {
		return nil, 0, err
	}
	return events, total, nil
}

func (r *EventRepositoryImpl) MarkDeleted(db *gorm.DB, id string) error {
	result := db.Model(&models.Event{}).
		Where("id = ? AND status <> ?", id, models.EventStatusDeleted).
		Update("status", models.EventStatusDeleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}
