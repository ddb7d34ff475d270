package services

import (
	"encoding/json"
	"testing"

	"gathero_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEventUpdateNotifications(t *testing.T) {
	organizer := &models.User{
		BaseModel: models.BaseModel{ID: "org-1"},
		Name:      "Dana",
		Email:     "dana@example.com",
	}
	event := &models.Event{
		BaseModel:   models.BaseModel{ID: "evt-1"},
		OrganizerID: organizer.ID,
		Title:       "Autumn Meetup",
	}
	approved := []models.Participation{
		{BaseModel: models.BaseModel{ID: "part-1"}, UserID: "user-1", EventID: event.ID},
		{BaseModel: models.BaseModel{ID: "part-2"}, UserID: "user-2", EventID: event.ID},
	}

	drafts := buildEventUpdateNotifications(event, approved, organizer)
	require.Len(t, drafts, 2)

	for i, draft := range drafts {
		assert.Equal(t, approved[i].UserID, draft.UserID)
		assert.Equal(t, models.NotificationTypeEventUpdate, draft.Type)
		assert.Contains(t, draft.Message, "Autumn Meetup")
		require.NotNil(t, draft.RelatedID)
		assert.Equal(t, approved[i].ID, *draft.RelatedID)
		require.NotNil(t, draft.SenderID)
		assert.Equal(t, organizer.ID, *draft.SenderID)

		var data map[string]interface{}
		require.NoError(t, json.Unmarshal(draft.Data, &data))
		assert.Equal(t, "evt-1", data["eventId"])
		assert.Equal(t, "Autumn Meetup", data["eventTitle"])
		assert.Equal(t, "dana@example.com", data["organizerContact"])
		assert.Contains(t, data["body"], "Dana")
	}
}

func TestBuildEventUpdateNotificationsEmpty(t *testing.T) {
	organizer := &models.User{BaseModel: models.BaseModel{ID: "org-1"}, Name: "Dana"}
	event := &models.Event{BaseModel: models.BaseModel{ID: "evt-1"}, Title: "Autumn Meetup"}

	drafts := buildEventUpdateNotifications(event, nil, organizer)
	assert.Empty(t, drafts)
}

func TestBuildParticipationNotification(t *testing.T) {
	actor := &models.User{BaseModel: models.BaseModel{ID: "user-1"}, Name: "Kim"}
	event := &models.Event{BaseModel: models.BaseModel{ID: "evt-1"}, Title: "Autumn Meetup"}
	participation := &models.Participation{BaseModel: models.BaseModel{ID: "part-1"}, UserID: actor.ID}

	t.Run("join request addressed to organizer", func(t *testing.T) {
		n := buildParticipationNotification(models.NotificationTypeJoinRequest, "org-1", event, participation, actor)
		assert.Equal(t, "org-1", n.UserID)
		assert.Equal(t, models.NotificationTypeJoinRequest, n.Type)
		assert.Contains(t, n.Message, "Kim")
		assert.Contains(t, n.Message, "Autumn Meetup")
	})

	t.Run("approval addressed to requester", func(t *testing.T) {
		n := buildParticipationNotification(models.NotificationTypeJoinApproved, actor.ID, event, participation, actor)
		assert.Equal(t, actor.ID, n.UserID)
		assert.Contains(t, n.Message, "approved")
	})

	t.Run("rejection addressed to requester", func(t *testing.T) {
		n := buildParticipationNotification(models.NotificationTypeJoinRejected, actor.ID, event, participation, actor)
		assert.Contains(t, n.Message, "rejected")
	})
}
