package models

import "gorm.io/datatypes"

// ActivityLog is the fire-and-forget audit sink. Writes happen after
// commit and never fail the outer request.
type ActivityLog struct {
	BaseModel
	ActorID    string         `gorm:"type:uuid;not null;index" json:"actor_id"`
	Verb       string         `gorm:"not null" json:"verb"` // updated, deleted, joined, ...
	EntityType string         `gorm:"not null" json:"entity_type"`
	EntityID   string         `gorm:"type:uuid;not null;index" json:"entity_id"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
}
