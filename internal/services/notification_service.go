package services

import (
	"context"
	"errors"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/repositories"
	"gathero_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type NotificationService interface {
	ListNotifications(ctx context.Context, db *gorm.DB, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error)
	GetUnreadCount(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) error
	DeleteNotification(ctx context.Context, db *gorm.DB, userID, notificationID string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) ListNotifications(ctx context.Context, db *gorm.DB, userID string, criteria dto.NotificationCriteria) (*dto.NotificationListResponse, error) {
	repoCriteria := repositories.NotificationCriteria{
		UnreadOnly: criteria.UnreadOnly,
		Type:       criteria.Type,
		Page:       criteria.Page,
		PageSize:   criteria.PageSize,
	}

	notifications, total, err := s.notificationRepo.FindUserNotifications(db, userID, repoCriteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, dto.NewNotificationResponse(&notifications[i]))
	}

	page := repoCriteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := repoCriteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *notificationService) GetUnreadCount(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.GetUnreadCount(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, db *gorm.DB, userID, notificationID string) error {
	if err := s.authorize(db, userID, notificationID); err != nil {
		return err
	}
	if err := s.notificationRepo.MarkAsRead(db, notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) DeleteNotification(ctx context.Context, db *gorm.DB, userID, notificationID string) error {
	if err := s.authorize(db, userID, notificationID); err != nil {
		return err
	}
	if err := s.notificationRepo.Delete(db, notificationID); err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// authorize verifies the notification belongs to the caller. Foreign
// notifications read as not found rather than forbidden, so their
// existence is not leaked.
func (s *notificationService) authorize(db *gorm.DB, userID, notificationID string) *apperrors.AppError {
	notification, err := s.notificationRepo.FindByID(db, notificationID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.InternalError(err)
	}
	if notification.UserID != userID {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}
