package dto

import (
	"time"

	"gathero_backend/internal/models"
)

type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=2000"`
}

type CommentResponse struct {
	ID        string        `json:"id"`
	EventID   string        `json:"event_id"`
	UserID    string        `json:"user_id"`
	Body      string        `json:"body"`
	User      *UserResponse `json:"user,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewCommentResponse(c *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        c.ID,
		EventID:   c.EventID,
		UserID:    c.UserID,
		Body:      c.Body,
		CreatedAt: c.CreatedAt,
	}
	if c.User != nil {
		resp.User = NewUserResponse(c.User)
	}
	return resp
}
