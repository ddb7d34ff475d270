package services

import (
	"encoding/json"
	"fmt"

	"gathero_backend/internal/models"

	"gorm.io/datatypes"
)

// buildEventUpdateNotifications renders one draft per approved
// participation. Pure: the decision of who gets notified and with what
// content is separated from the transactional insert.
func buildEventUpdateNotifications(event *models.Event, approved []models.Participation, organizer *models.User) []*models.Notification {
	drafts := make([]*models.Notification, 0, len(approved))

	message := fmt.Sprintf("The event %q you are attending was updated", event.Title)
	body := fmt.Sprintf(
		"%s has updated %q. Check the event page for the latest schedule and details.",
		organizer.Name, event.Title,
	)

	for i := range approved {
		p := approved[i]
		data, _ := json.Marshal(map[string]interface{}{
			"eventId":          event.ID,
			"eventTitle":       event.Title,
			"organizerContact": organizer.Email,
			"body":             body,
		})

		relatedID := p.ID
		senderID := organizer.ID
		drafts = append(drafts, &models.Notification{
			UserID:    p.UserID,
			Type:      models.NotificationTypeEventUpdate,
			Message:   message,
			RelatedID: &relatedID,
			SenderID:  &senderID,
			Data:      datatypes.JSON(data),
		})
	}
	return drafts
}

// buildCommentNotification tells an organizer about a new comment on
// their event.
func buildCommentNotification(event *models.Event, comment *models.Comment, author *models.User) *models.Notification {
	data, _ := json.Marshal(map[string]interface{}{
		"eventId":    event.ID,
		"eventTitle": event.Title,
		"commentId":  comment.ID,
	})

	relatedID := comment.ID
	senderID := author.ID
	return &models.Notification{
		UserID:    event.OrganizerID,
		Type:      models.NotificationTypeNewComment,
		Message:   fmt.Sprintf("%s commented on %q", author.Name, event.Title),
		RelatedID: &relatedID,
		SenderID:  &senderID,
		Data:      data,
	}
}

// buildParticipationNotification renders the single draft sent when a
// join request is filed, approved or rejected.
func buildParticipationNotification(notifType string, recipientID string, event *models.Event, p *models.Participation, actor *models.User) *models.Notification {
	var message string
	switch notifType {
	case models.NotificationTypeJoinRequest:
		message = fmt.Sprintf("%s wants to join %q", actor.Name, event.Title)
	case models.NotificationTypeJoinApproved:
		message = fmt.Sprintf("Your request to join %q was approved", event.Title)
	case models.NotificationTypeJoinRejected:
		message = fmt.Sprintf("Your request to join %q was rejected", event.Title)
	default:
		message = fmt.Sprintf("Update on %q", event.Title)
	}

	data, _ := json.Marshal(map[string]interface{}{
		"eventId":    event.ID,
		"eventTitle": event.Title,
	})

	relatedID := p.ID
	senderID := actor.ID
	return &models.Notification{
		UserID:    recipientID,
		Type:      notifType,
		Message:   message,
		RelatedID: &relatedID,
		SenderID:  &senderID,
		Data:      data,
	}
}
