package repositories

import (
	"errors"
	"time"

	"gathero_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationCriteria struct {
	UnreadOnly bool
	Type       string
	Page       int
	PageSize   int
}

type NotificationRepository interface {
	Create(db *gorm.DB, notification *models.Notification) error
	// CreateBatch inserts all drafts in one statement. gorm issues a
	// single multi-row INSERT, so the batch fails or succeeds as a
	// whole inside the caller's transaction.
	CreateBatch(db *gorm.DB, notifications []*models.Notification) error
	FindByID(db *gorm.DB, id string) (*models.Notification, error)
	FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error)
	MarkAsRead(db *gorm.DB, id string) error
	MarkAllAsRead(db *gorm.DB, userID string) error
	GetUnreadCount(db *gorm.DB, userID string) (int64, error)
	Delete(db *gorm.DB, id string) error
	DeleteReadOlderThan(db *gorm.DB, cutoff time.Time) (int64, error)
}

type NotificationRepositoryImpl struct{}

func NewNotificationRepository() NotificationRepository {
	return &NotificationRepositoryImpl{}
}

func (r *NotificationRepositoryImpl) Create(db *gorm.DB, notification *models.Notification) error {
	return db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) CreateBatch(db *gorm.DB, notifications []*models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return db.Create(notifications).Error
}

func (r *NotificationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Notification, error) {
	var n models.Notification
	if err := db.First(&n, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(db *gorm.DB, userID string, criteria NotificationCriteria) ([]models.Notification, int64, error) {
	query := db.Model(&models.Notification{}).Where("user_id = ?", userID)

	if criteria.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
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

	var notifications []models.Notification
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&notifications).Error
	if err != nil {
		return nil, 0, err
	}
	return notifications, total, nil
}

func (r *NotificationRepositoryImpl) MarkAsRead(db *gorm.DB, id string) error {
	now := time.Now()
	result := db.Model(&models.Notification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(db *gorm.DB, userID string) error {
	now := time.Now()
	return db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{"is_read": true, "read_at": &now}).Error
}

func (r *NotificationRepositoryImpl) GetUnreadCount(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Notification{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) DeleteReadOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Delete(&models.Notification{}, "is_read = ? AND created_at < ?", true, cutoff)
	return result.RowsAffected, result.Error
}
