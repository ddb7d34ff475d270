package services

import (
	"gathero_backend/internal/dto"
	"gathero_backend/internal/models"
)

// eventChanged reports whether the proposed patch would materially
// change the event from a participant's point of view. It is the sole
// gate for notification fan-out: a false positive produces spurious
// noise, a false negative silently suppresses a legitimate alert.
//
// Compared fields: title, description, location, start/end instants
// and the image key (with a new upload's key, if any, substituted for
// the old one). Instants are compared with time.Equal, never by string
// form. Bookkeeping fields (UpdatedAt, Status) are excluded.
func eventChanged(current *models.Event, patch *dto.UpdateEventRequest, newImageKey *string) bool {
	if patch.Title != nil && *patch.Title != current.Title {
		return true
	}
	if patch.Description != nil && *patch.Description != current.Description {
		return true
	}
	if patch.Location != nil && *patch.Location != current.Location {
		return true
	}
	if patch.StartsAt != nil && !patch.StartsAt.Equal(current.StartsAt) {
		return true
	}
	if patch.EndsAt != nil {
		if current.EndsAt == nil || !patch.EndsAt.Equal(*current.EndsAt) {
			return true
		}
	}
	if newImageKey != nil {
		if current.ImageKey == nil || *newImageKey != *current.ImageKey {
			return true
		}
	}
	return false
}

// applyEventPatch merges the patch into the event. Only named fields
// can ever reach the record; there is no generic body merge.
func applyEventPatch(event *models.Event, patch *dto.UpdateEventRequest) {
	if patch.Title != nil {
		event.Title = *patch.Title
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Location != nil {
		event.Location = *patch.Location
	}
	if patch.StartsAt != nil {
		event.StartsAt = *patch.StartsAt
	}
	if patch.EndsAt != nil {
		event.EndsAt = patch.EndsAt
	}
	if patch.MaxAttendees != nil {
		event.MaxAttendees = *patch.MaxAttendees
	}
	if patch.IsPublic != nil {
		event.IsPublic = *patch.IsPublic
	}
}
