package services

import (
	"context"
	"errors"
	"mime/multipart"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/logger"
	"gathero_backend/internal/models"
	"gathero_backend/internal/repositories"
	"gathero_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type EventService interface {
	CreateEvent(ctx context.Context, db *gorm.DB, organizerID string, req *dto.CreateEventRequest, file *multipart.FileHeader) (*dto.EventResponse, error)
	GetEvent(ctx context.Context, db *gorm.DB, eventID string) (*dto.EventResponse, error)
	ListEvents(ctx context.Context, db *gorm.DB, criteria dto.EventCriteria) (*dto.EventListResponse, error)
	UpdateEvent(ctx context.Context, db *gorm.DB, actorID, eventID string, req *dto.UpdateEventRequest, file *multipart.FileHeader) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, db *gorm.DB, actorID string, actorRole models.UserRole, eventID string) error
}

// UploadLimits constrains incoming media before anything touches the
// storage backend.
type UploadLimits struct {
	MaxSize      int64
	AllowedTypes []string
}

type eventService struct {
	eventRepo         repositories.EventRepository
	participationRepo repositories.ParticipationRepository
	notificationRepo  repositories.NotificationRepository
	settingsRepo      repositories.SettingsRepository
	userRepo          repositories.UserRepository
	media             MediaService
	activity          ActivityService
	limits            UploadLimits
}

func NewEventService(
	eventRepo repositories.EventRepository,
	participationRepo repositories.ParticipationRepository,
	notificationRepo repositories.NotificationRepository,
	settingsRepo repositories.SettingsRepository,
	userRepo repositories.UserRepository,
	media MediaService,
	activity ActivityService,
	limits UploadLimits,
) EventService {
	return &eventService{
		eventRepo:         eventRepo,
		participationRepo: participationRepo,
		notificationRepo:  notificationRepo,
		settingsRepo:      settingsRepo,
		userRepo:          userRepo,
		media:             media,
		activity:          activity,
		limits:            limits,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, db *gorm.DB, organizerID string, req *dto.CreateEventRequest, file *multipart.FileHeader) (*dto.EventResponse, error) {
	// Media upload happens before the transaction: a failed upload
	// aborts cheaply, before any lock is taken.
	var newKey *string
	if file != nil {
		key, err := s.uploadImage(ctx, file)
		if err != nil {
			return nil, err
		}
		newKey = &key
	}

	tx := db.Begin()
	if tx.Error != nil {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	settings, err := s.settingsRepo.GetEventSettings(tx)
	if err != nil {
		s.discardUpload(ctx, newKey)
		return nil, s.mapSettingsError(err)
	}
	ceiling := *settings.MaxAttendeesPerEvent

	if err := ValidateCapacity(req.MaxAttendees, ceiling); err != nil {
		s.discardUpload(ctx, newKey)
		return nil, err
	}

	event := &models.Event{
		OrganizerID:  organizerID,
		Title:        req.Title,
		Description:  req.Description,
		Location:     req.Location,
		StartsAt:     req.StartsAt,
		EndsAt:       req.EndsAt,
		MaxAttendees: DefaultCapacity(req.MaxAttendees, ceiling),
		IsPublic:     req.IsPublic == nil || *req.IsPublic,
		Status:       models.EventStatusUpcoming,
		ImageKey:     newKey,
	}

	if err := validateEventRecord(event); err != nil {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.PersistError(err)
	}
	if err := s.eventRepo.Create(tx, event); err != nil {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.PersistError(err)
	}

	if err := tx.Commit().Error; err != nil {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.InternalError(err)
	}

	s.activity.Log(db, organizerID, "created", "event", event.ID, map[string]interface{}{
		"title": event.Title,
	})

	return s.buildEventResponse(ctx, db, event), nil
}

func (s *eventService) GetEvent(ctx context.Context, db *gorm.DB, eventID string) (*dto.EventResponse, error) {
	event, err := s.eventRepo.FindByIDWithOrganizer(db, eventID)
	if err != nil {
		return nil, s.mapEventError(err)
	}
	return s.buildEventResponse(ctx, db, event), nil
}

func (s *eventService) ListEvents(ctx context.Context, db *gorm.DB, criteria dto.EventCriteria) (*dto.EventListResponse, error) {
	repoCriteria := repositories.EventCriteria{
		Status:   models.EventStatus(criteria.Status),
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}

	events, total, err := s.eventRepo.List(db, repoCriteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, s.buildEventResponse(ctx, db, &events[i]))
	}

	page := repoCriteria.Page
	if page < 1 {
		page = 1
	}
	pageSize := repoCriteria.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return &dto.EventListResponse{
		Events:     responses,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: calculateTotalPages(total, pageSize),
	}, nil
}

// UpdateEvent is the mutation pipeline: load, optionally replace media,
// validate capacity, detect material changes, persist, fan out
// notifications, commit. Everything between Begin and Commit is one
// atomic unit; the old image key is deleted only after the commit is
// durable, and a new upload is discarded on any abort.
func (s *eventService) UpdateEvent(ctx context.Context, db *gorm.DB, actorID, eventID string, req *dto.UpdateEventRequest, file *multipart.FileHeader) (*dto.EventResponse, error) {
	var newKey *string
	if file != nil {
		key, err := s.uploadImage(ctx, file)
		if err != nil {
			return nil, err
		}
		newKey = &key
	}

	tx := db.Begin()
	if tx.Error != nil {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	event, err := s.eventRepo.FindByID(tx, eventID)
	if err != nil {
		s.discardUpload(ctx, newKey)
		return nil, s.mapEventError(err)
	}
	if event.OrganizerID != actorID {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.ErrForbidden
	}

	settings, err := s.settingsRepo.GetEventSettings(tx)
	if err != nil {
		s.discardUpload(ctx, newKey)
		return nil, s.mapSettingsError(err)
	}

	if err := ValidateCapacity(req.MaxAttendees, *settings.MaxAttendeesPerEvent); err != nil {
		s.discardUpload(ctx, newKey)
		return nil, err
	}

	changed := eventChanged(event, req, newKey)

	var oldKey *string
	if newKey != nil {
		oldKey = event.ImageKey
		event.ImageKey = newKey
	}
	applyEventPatch(event, req)

	if err := validateEventRecord(event); err != nil {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.PersistError(err)
	}
	if err := s.eventRepo.Save(tx, event); err != nil {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.PersistError(err)
	}

	if changed {
		approved, err := s.participationRepo.FindApprovedByEvent(tx, eventID)
		if err != nil {
			s.discardUpload(ctx, newKey)
			return nil, apperrors.InternalError(err)
		}
		if len(approved) > 0 {
			organizer, err := s.userRepo.FindByID(tx, event.OrganizerID)
			if err != nil {
				s.discardUpload(ctx, newKey)
				return nil, apperrors.InternalError(err)
			}
			drafts := buildEventUpdateNotifications(event, approved, organizer)
			// One batch insert inside the same transaction: either
			// every participant is notified or the update itself
			// rolls back.
			if err := s.notificationRepo.CreateBatch(tx, drafts); err != nil {
				s.discardUpload(ctx, newKey)
				return nil, apperrors.NotificationError(err)
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		s.discardUpload(ctx, newKey)
		return nil, apperrors.InternalError(err)
	}

	// Never delete old media until new state is durably committed.
	if oldKey != nil && *oldKey != "" {
		if ok := s.media.Remove(ctx, *oldKey); !ok {
			logger.CtxWarn(ctx, "failed to delete replaced event image",
				"event_id", event.ID, "key", *oldKey)
		}
	}

	s.activity.Log(db, actorID, "updated", "event", event.ID, map[string]interface{}{
		"changed": changed,
	})

	return s.buildEventResponse(ctx, db, event), nil
}

func (s *eventService) DeleteEvent(ctx context.Context, db *gorm.DB, actorID string, actorRole models.UserRole, eventID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	event, err := s.eventRepo.FindByID(tx, eventID)
	if err != nil {
		return s.mapEventError(err)
	}
	if event.OrganizerID != actorID && actorRole != models.UserRoleAdmin {
		return apperrors.ErrForbidden
	}

	if err := s.eventRepo.MarkDeleted(tx, eventID); err != nil {
		return s.mapEventError(err)
	}
	if err := s.participationRepo.MarkDeletedByEvent(tx, eventID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	// Best-effort: the row is already soft-deleted, an orphaned blob
	// only costs storage.
	if event.ImageKey != nil && *event.ImageKey != "" {
		if ok := s.media.Remove(ctx, *event.ImageKey); !ok {
			logger.CtxWarn(ctx, "failed to delete event image",
				"event_id", event.ID, "key", *event.ImageKey)
		}
	}

	s.activity.Log(db, actorID, "deleted", "event", event.ID, map[string]interface{}{
		"title": event.Title,
	})
	return nil
}

// ---------------- helpers ----------------

func (s *eventService) uploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > s.limits.MaxSize {
		return "", apperrors.ErrFileTooLarge
	}

	mimeType := file.Header.Get("Content-Type")
	if !s.typeAllowed(mimeType) {
		return "", apperrors.ErrInvalidUploadFormat
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.UploadError(err)
	}
	defer src.Close()

	key, err := s.media.Upload(ctx, src, mimeType)
	if err != nil {
		return "", apperrors.UploadError(err)
	}
	return key, nil
}

func (s *eventService) typeAllowed(mimeType string) bool {
	for _, allowed := range s.limits.AllowedTypes {
		if allowed == mimeType {
			return true
		}
	}
	return false
}

// discardUpload is the compensating cleanup for an aborted mutation
// that had already uploaded new media.
func (s *eventService) discardUpload(ctx context.Context, key *string) {
	if key == nil || *key == "" {
		return
	}
	if ok := s.media.Remove(ctx, *key); !ok {
		logger.CtxWarn(ctx, "failed to discard orphaned upload", "key", *key)
	}
}

func (s *eventService) buildEventResponse(ctx context.Context, db *gorm.DB, event *models.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		ID:           event.ID,
		OrganizerID:  event.OrganizerID,
		Title:        event.Title,
		Description:  event.Description,
		Location:     event.Location,
		StartsAt:     event.StartsAt,
		EndsAt:       event.EndsAt,
		MaxAttendees: event.MaxAttendees,
		IsPublic:     event.IsPublic,
		Status:       event.Status,
		ImageURL:     s.media.SignedURL(ctx, event.ImageKey),
		CreatedAt:    event.CreatedAt,
		UpdatedAt:    event.UpdatedAt,
	}

	if event.Organizer != nil {
		resp.Organizer = dto.NewUserResponse(event.Organizer)
	} else if organizer, err := s.userRepo.FindByID(db, event.OrganizerID); err == nil {
		resp.Organizer = dto.NewUserResponse(organizer)
	}
	return resp
}

func (s *eventService) mapEventError(err error) *apperrors.AppError {
	if errors.Is(err, repositories.ErrEventNotFound) {
		return apperrors.ErrEventNotFound
	}
	return apperrors.InternalError(err)
}

func (s *eventService) mapSettingsError(err error) *apperrors.AppError {
	if errors.Is(err, repositories.ErrSettingsMissing) {
		return apperrors.ErrSettingsMissing
	}
	return apperrors.InternalError(err)
}

// validateEventRecord enforces record-level invariants before the row
// is written.
func validateEventRecord(event *models.Event) error {
	if event.Title == "" {
		return errors.New("title must not be empty")
	}
	if event.MaxAttendees < 1 {
		return errors.New("max attendees must be at least 1")
	}
	if event.EndsAt != nil && event.EndsAt.Before(event.StartsAt) {
		return errors.New("event cannot end before it starts")
	}
	return nil
}

func calculateTotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
