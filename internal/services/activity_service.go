package services

import (
	"encoding/json"

	"gathero_backend/internal/logger"
	"gathero_backend/internal/models"
	"gathero_backend/internal/repositories"

	"gorm.io/gorm"
)

// ActivityService is the fire-and-forget audit sink. Log is called
// after the main transaction commits and must never fail the caller;
// writes happen on the pool connection in a background goroutine.
type ActivityService interface {
	Log(db *gorm.DB, actorID, verb, entityType, entityID string, metadata map[string]interface{})
}

type activityService struct {
	activityRepo repositories.ActivityRepository
}

func NewActivityService(activityRepo repositories.ActivityRepository) ActivityService {
	return &activityService{activityRepo: activityRepo}
}

func (s *activityService) Log(db *gorm.DB, actorID, verb, entityType, entityID string, metadata map[string]interface{}) {
	entry := &models.ActivityLog{
		ActorID:    actorID,
		Verb:       verb,
		EntityType: entityType,
		EntityID:   entityID,
	}
	if metadata != nil {
		if payload, err := json.Marshal(metadata); err == nil {
			entry.Metadata = payload
		}
	}

	go func() {
		if err := s.activityRepo.Create(db, entry); err != nil {
			logger.Warn("failed to write activity log",
				"actor_id", actorID, "verb", verb,
				"entity_type", entityType, "entity_id", entityID,
				"error", err.Error())
		}
	}()
}
