package dto

import (
	"time"

	"gathero_backend/internal/models"
)

// CreateEventRequest is bound from a multipart form; the optional image
// file travels separately.
type CreateEventRequest struct {
	Title        string     `form:"title" json:"title" validate:"required,min=3,max=200"`
	Description  string     `form:"description" json:"description" validate:"max=5000"`
	Location     string     `form:"location" json:"location" validate:"max=300"`
	StartsAt     time.Time  `form:"starts_at" json:"starts_at" time_format:"2006-01-02T15:04:05Z07:00" validate:"required"`
	EndsAt       *time.Time `form:"ends_at" json:"ends_at" time_format:"2006-01-02T15:04:05Z07:00"`
	MaxAttendees *int       `form:"max_attendees" json:"max_attendees" validate:"omitempty,min=1"`
	IsPublic     *bool      `form:"is_public" json:"is_public"`
}

// UpdateEventRequest is an explicit patch: every field optional, nil
// meaning "leave unchanged". Arbitrary body merging into the entity is
// deliberately not supported.
type UpdateEventRequest struct {
	Title        *string    `form:"title" json:"title" validate:"omitempty,min=3,max=200"`
	Description  *string    `form:"description" json:"description" validate:"omitempty,max=5000"`
	Location     *string    `form:"location" json:"location" validate:"omitempty,max=300"`
	StartsAt     *time.Time `form:"starts_at" json:"starts_at" time_format:"2006-01-02T15:04:05Z07:00"`
	EndsAt       *time.Time `form:"ends_at" json:"ends_at" time_format:"2006-01-02T15:04:05Z07:00"`
	MaxAttendees *int       `form:"max_attendees" json:"max_attendees" validate:"omitempty,min=1"`
	IsPublic     *bool      `form:"is_public" json:"is_public"`
}

type EventCriteria struct {
	Status   string `form:"status" validate:"omitempty,oneof=draft upcoming ongoing ended cancelled"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type EventResponse struct {
	ID           string             `json:"id"`
	OrganizerID  string             `json:"organizer_id"`
	Organizer    *UserResponse      `json:"organizer,omitempty"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	Location     string             `json:"location"`
	StartsAt     time.Time          `json:"starts_at"`
	EndsAt       *time.Time         `json:"ends_at,omitempty"`
	MaxAttendees int                `json:"max_attendees"`
	IsPublic     bool               `json:"is_public"`
	Status       models.EventStatus `json:"status"`
	ImageURL     string             `json:"image_url,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

type EventListResponse struct {
	Events     []*EventResponse `json:"events"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}
