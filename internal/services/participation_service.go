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

type ParticipationService interface {
	JoinEvent(ctx context.Context, db *gorm.DB, userID, eventID string) (*dto.ParticipationResponse, error)
	ListEventParticipations(ctx context.Context, db *gorm.DB, actorID string, actorRole models.UserRole, eventID string) ([]*dto.ParticipationResponse, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, actorID, participationID string, req *dto.UpdateParticipationStatusRequest) (*dto.ParticipationResponse, error)
	LeaveEvent(ctx context.Context, db *gorm.DB, userID, eventID string) error
}

type participationService struct {
	participationRepo repositories.ParticipationRepository
	eventRepo         repositories.EventRepository
	notificationRepo  repositories.NotificationRepository
	userRepo          repositories.UserRepository
	activity          ActivityService
}

func NewParticipationService(
	participationRepo repositories.ParticipationRepository,
	eventRepo repositories.EventRepository,
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	activity ActivityService,
) ParticipationService {
	return &participationService{
		participationRepo: participationRepo,
		eventRepo:         eventRepo,
		notificationRepo:  notificationRepo,
		userRepo:          userRepo,
		activity:          activity,
	}
}

// JoinEvent files a pending participation request and notifies the
// organizer, all inside one transaction.
func (s *participationService) JoinEvent(ctx context.Context, db *gorm.DB, userID, eventID string) (*dto.ParticipationResponse, error) {
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

	if event.Status != models.EventStatusUpcoming {
		return nil, apperrors.ErrEventNotJoinable
	}
	if event.OrganizerID == userID {
		return nil, apperrors.NewBadRequestError("Organizers cannot join their own event")
	}

	if _, err := s.participationRepo.FindByUserAndEvent(tx, userID, eventID); err == nil {
		return nil, apperrors.ErrAlreadyParticipant
	} else if !errors.Is(err, repositories.ErrParticipationNotFound) {
		return nil, apperrors.InternalError(err)
	}

	approved, err := s.participationRepo.CountApprovedByEvent(tx, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if approved >= int64(event.MaxAttendees) {
		return nil, apperrors.NewBadRequestError("Event is full")
	}

	participation := &models.Participation{
		UserID:  userID,
		EventID: eventID,
		Status:  models.ParticipationStatusPending,
	}
	if err := s.participationRepo.Create(tx, participation); err != nil {
		return nil, apperrors.PersistError(err)
	}

	actor, err := s.userRepo.FindByID(tx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	notification := buildParticipationNotification(
		models.NotificationTypeJoinRequest, event.OrganizerID, event, participation, actor)
	if err := s.notificationRepo.Create(tx, notification); err != nil {
		return nil, apperrors.NotificationError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.activity.Log(db, userID, "joined", "event", eventID, nil)
	return dto.NewParticipationResponse(participation), nil
}

func (s *participationService) ListEventParticipations(ctx context.Context, db *gorm.DB, actorID string, actorRole models.UserRole, eventID string) ([]*dto.ParticipationResponse, error) {
	event, err := s.eventRepo.FindByID(db, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if event.OrganizerID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	participations, err := s.participationRepo.FindByEvent(db, eventID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.ParticipationResponse, 0, len(participations))
	for i := range participations {
		responses = append(responses, dto.NewParticipationResponse(&participations[i]))
	}
	return responses, nil
}

// UpdateStatus lets the event's organizer approve or reject a pending
// request. The decision notification is written in the same
// transaction as the status flip.
func (s *participationService) UpdateStatus(ctx context.Context, db *gorm.DB, actorID, participationID string, req *dto.UpdateParticipationStatusRequest) (*dto.ParticipationResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	participation, err := s.participationRepo.FindByID(tx, participationID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipationNotFound) {
			return nil, apperrors.ErrParticipationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	event, err := s.eventRepo.FindByID(tx, participation.EventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, apperrors.ErrEventNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if event.OrganizerID != actorID {
		return nil, apperrors.ErrForbidden
	}

	if participation.Status != models.ParticipationStatusPending {
		return nil, apperrors.NewBadRequestError("Participation request was already decided")
	}

	newStatus := models.ParticipationStatus(req.Status)
	if newStatus == models.ParticipationStatusApproved {
		approved, err := s.participationRepo.CountApprovedByEvent(tx, event.ID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if approved >= int64(event.MaxAttendees) {
			return nil, apperrors.NewBadRequestError("Event is full")
		}
	}

	if err := s.participationRepo.UpdateStatus(tx, participationID, newStatus); err != nil {
		return nil, apperrors.PersistError(err)
	}
	participation.Status = newStatus

	organizer, err := s.userRepo.FindByID(tx, actorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	notifType := models.NotificationTypeJoinApproved
	if newStatus == models.ParticipationStatusRejected {
		notifType = models.NotificationTypeJoinRejected
	}
	notification := buildParticipationNotification(
		notifType, participation.UserID, event, participation, organizer)
	if err := s.notificationRepo.Create(tx, notification); err != nil {
		return nil, apperrors.NotificationError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.activity.Log(db, actorID, string(newStatus), "participation", participationID, map[string]interface{}{
		"event_id": event.ID,
	})
	return dto.NewParticipationResponse(participation), nil
}

func (s *participationService) LeaveEvent(ctx context.Context, db *gorm.DB, userID, eventID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	participation, err := s.participationRepo.FindByUserAndEvent(tx, userID, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrParticipationNotFound) {
			return apperrors.ErrParticipationNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.participationRepo.UpdateStatus(tx, participation.ID, models.ParticipationStatusDeleted); err != nil {
		return apperrors.PersistError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	s.activity.Log(db, userID, "left", "event", eventID, nil)
	return nil
}
