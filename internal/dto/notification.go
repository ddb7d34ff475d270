package dto

import (
	"time"

	"gathero_backend/internal/models"
)

type NotificationCriteria struct {
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type"`
	Page       int    `form:"page" validate:"omitempty,min=1"`
	PageSize   int    `form:"page_size" validate:"omitempty,min=1,max=100"`
}

type NotificationResponse struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	RelatedID *string     `json:"related_id,omitempty"`
	SenderID  *string     `json:"sender_id,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	IsRead    bool        `json:"is_read"`
	CreatedAt time.Time   `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int64                   `json:"total"`
	Page          int                     `json:"page"`
	PageSize      int                     `json:"page_size"`
}

func NewNotificationResponse(n *models.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		RelatedID: n.RelatedID,
		SenderID:  n.SenderID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
	if len(n.Data) > 0 {
		resp.Data = n.Data
	}
	return resp
}
