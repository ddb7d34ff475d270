package models

import (
	"time"

	"gorm.io/datatypes"
)

// Notification is a persisted, addressed message about a state change.
// Created only by server-side actions; immutable except for read flips
// and eventual deletion.
type Notification struct {
	BaseModel
	UserID    string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string         `gorm:"not null" json:"type"` // eventUpdate, joinApproved, ...
	Message   string         `gorm:"not null" json:"message"`
	RelatedID *string        `gorm:"type:uuid" json:"related_id,omitempty"` // triggering entity, e.g. participation
	SenderID  *string        `gorm:"type:uuid" json:"sender_id,omitempty"`  // acting user, e.g. organizer
	Data      datatypes.JSON `json:"data,omitempty"`                        // free-form payload, e.g. rendered body
	IsRead    bool           `gorm:"default:false;index" json:"is_read"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
}
