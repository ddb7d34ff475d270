package services

import (
	"testing"
	"time"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func strPtr(v string) *string { return &v }

func baseEvent() *models.Event {
	starts := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	ends := starts.Add(3 * time.Hour)
	key := "events/old.png"
	return &models.Event{
		Title:       "Autumn Meetup",
		Description: "Talks and pizza",
		Location:    "Main hall",
		StartsAt:    starts,
		EndsAt:      &ends,
		ImageKey:    &key,
	}
}

func TestEventChanged(t *testing.T) {
	t.Run("empty patch is not a change", func(t *testing.T) {
		assert.False(t, eventChanged(baseEvent(), &dto.UpdateEventRequest{}, nil))
	})

	t.Run("identical values are not a change", func(t *testing.T) {
		event := baseEvent()
		patch := &dto.UpdateEventRequest{
			Title:       strPtr(event.Title),
			Description: strPtr(event.Description),
			Location:    strPtr(event.Location),
			StartsAt:    &event.StartsAt,
			EndsAt:      event.EndsAt,
		}
		assert.False(t, eventChanged(event, patch, nil))
	})

	t.Run("title change detected", func(t *testing.T) {
		patch := &dto.UpdateEventRequest{Title: strPtr("Winter Meetup")}
		assert.True(t, eventChanged(baseEvent(), patch, nil))
	})

	t.Run("description change detected", func(t *testing.T) {
		patch := &dto.UpdateEventRequest{Description: strPtr("Talks only")}
		assert.True(t, eventChanged(baseEvent(), patch, nil))
	})

	t.Run("location change detected", func(t *testing.T) {
		patch := &dto.UpdateEventRequest{Location: strPtr("Room 2")}
		assert.True(t, eventChanged(baseEvent(), patch, nil))
	})

	t.Run("same instant in another zone is not a change", func(t *testing.T) {
		event := baseEvent()
		shifted := event.StartsAt.In(time.FixedZone("UTC+5", 5*3600))
		patch := &dto.UpdateEventRequest{StartsAt: &shifted}
		assert.False(t, eventChanged(event, patch, nil))
	})

	t.Run("start instant change detected", func(t *testing.T) {
		event := baseEvent()
		moved := event.StartsAt.Add(time.Hour)
		patch := &dto.UpdateEventRequest{StartsAt: &moved}
		assert.True(t, eventChanged(event, patch, nil))
	})

	t.Run("end instant change detected", func(t *testing.T) {
		event := baseEvent()
		moved := event.EndsAt.Add(30 * time.Minute)
		patch := &dto.UpdateEventRequest{EndsAt: &moved}
		assert.True(t, eventChanged(event, patch, nil))
	})

	t.Run("setting end on an open-ended event detected", func(t *testing.T) {
		event := baseEvent()
		event.EndsAt = nil
		ends := event.StartsAt.Add(time.Hour)
		patch := &dto.UpdateEventRequest{EndsAt: &ends}
		assert.True(t, eventChanged(event, patch, nil))
	})

	t.Run("new image key detected", func(t *testing.T) {
		assert.True(t, eventChanged(baseEvent(), &dto.UpdateEventRequest{}, strPtr("events/new.png")))
	})

	t.Run("re-uploading the same key is not a change", func(t *testing.T) {
		event := baseEvent()
		assert.False(t, eventChanged(event, &dto.UpdateEventRequest{}, event.ImageKey))
	})

	t.Run("first image on an imageless event detected", func(t *testing.T) {
		event := baseEvent()
		event.ImageKey = nil
		assert.True(t, eventChanged(event, &dto.UpdateEventRequest{}, strPtr("events/new.png")))
	})

	t.Run("capacity and publicity flips are not material", func(t *testing.T) {
		isPublic := false
		patch := &dto.UpdateEventRequest{MaxAttendees: intPtr(7), IsPublic: &isPublic}
		assert.False(t, eventChanged(baseEvent(), patch, nil))
	})
}

func TestApplyEventPatch(t *testing.T) {
	t.Run("nil fields leave the event untouched", func(t *testing.T) {
		event := baseEvent()
		before := *event
		applyEventPatch(event, &dto.UpdateEventRequest{})
		assert.Equal(t, before.Title, event.Title)
		assert.Equal(t, before.Description, event.Description)
		assert.Equal(t, before.Location, event.Location)
		assert.True(t, before.StartsAt.Equal(event.StartsAt))
	})

	t.Run("set fields are merged", func(t *testing.T) {
		event := baseEvent()
		moved := event.StartsAt.Add(2 * time.Hour)
		isPublic := false
		applyEventPatch(event, &dto.UpdateEventRequest{
			Title:        strPtr("Renamed"),
			StartsAt:     &moved,
			MaxAttendees: intPtr(12),
			IsPublic:     &isPublic,
		})
		assert.Equal(t, "Renamed", event.Title)
		assert.True(t, moved.Equal(event.StartsAt))
		assert.Equal(t, 12, event.MaxAttendees)
		assert.False(t, event.IsPublic)
		assert.Equal(t, "Talks and pizza", event.Description)
	})
}
