package dto

import (
	"time"

	"gathero_backend/internal/models"
)

type UpdateParticipationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

type ParticipationResponse struct {
	ID        string                     `json:"id"`
	UserID    string                     `json:"user_id"`
	EventID   string                     `json:"event_id"`
	Status    models.ParticipationStatus `json:"status"`
	User      *UserResponse              `json:"user,omitempty"`
	CreatedAt time.Time                  `json:"created_at"`
}

func NewParticipationResponse(p *models.Participation) *ParticipationResponse {
	resp := &ParticipationResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		EventID:   p.EventID,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
	}
	if p.User != nil {
		resp.User = NewUserResponse(p.User)
	}
	return resp
}
