package services

import (
	"context"
	"errors"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/models"
	"gathero_backend/internal/repositories"
	"gathero_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CommentService interface {
	CreateComment(ctx context.Context, db *gorm.DB, userID, eventID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, db *gorm.DB, eventID string, limit, offset int) ([]*dto.CommentResponse, int64, error)
	DeleteComment(ctx context.Context, db *gorm.DB, actorID string, actorRole models.UserRole, commentID string) error
}

type commentService struct {
	commentRepo      repositories.CommentRepository
	eventRepo        repositories.EventRepository
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	eventRepo repositories.EventRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
) CommentService {
	return &commentService{
		commentRepo:      commentRepo,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	}
}

// CreateComment posts a comment and notifies the organizer unless they
// are commenting on their own event.
func (s *commentService) CreateComment(ctx context.Context, db *gorm.DB, userID, eventID string, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	event, err := s.eventRepo.FindByID(tx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	comment := &models.Comment{
		EventID: eventID,
		UserID:  userID,
		Body:    req.Body,
	}
	if err := s.commentRepo.Create(tx, comment); err != nil {
		return nil, apperrors.PersistError(err)
	}

	if event.OrganizerID != userID {
		author, err := s.userRepo.FindByID(tx, userID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		notification := buildCommentNotification(event, comment, author)
		if err := s.notificationRepo.Create(tx, notification); err != nil {
			return nil, apperrors.NotificationError(err)
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCommentResponse(comment), nil
}

func (s *commentService) ListComments(ctx context.Context, db *gorm.DB, eventID string, limit, offset int) ([]*dto.CommentResponse, int64, error) {
	if _, err := s.eventRepo.FindByID(db, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, 0, apperrors.ErrEventNotFound
		}
		return nil, 0, apperrors.InternalError(err)
	}

	comments, total, err := s.commentRepo.FindByEvent(db, eventID, limit, offset)
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}

	responses := make([]*dto.CommentResponse, 0, len(comments))
	for i := range comments {
		responses = append(responses, dto.NewCommentResponse(&comments[i]))
	}
	return responses, total, nil
}

func (s *commentService) DeleteComment(ctx context.Context, db *gorm.DB, actorID string, actorRole models.UserRole, commentID string) error {
	comment, err := s.commentRepo.FindByID(db, commentID)
	if err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return apperrors.InternalError(err)
	}

	if comment.UserID != actorID && actorRole != models.UserRoleAdmin {
		event, err := s.eventRepo.FindByID(db, comment.EventID)
		if err != nil || event.OrganizerID != actorID {
			return apperrors.ErrForbidden
		}
	}

	if err := s.commentRepo.Delete(db, commentID); err != nil {
		if errors.Is(err, repositories.ErrCommentNotFound) {
			return apperrors.ErrCommentNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
