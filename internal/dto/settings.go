package dto

// EventSettings is the decoded event_settings payload of the singleton
// Settings record. The ceiling pointer distinguishes "absent" from
// zero so missing configuration can be reported as such.
type EventSettings struct {
	MaxAttendeesPerEvent *int `json:"maxAttendeesPerEvent"`
}

type UpdateSettingsRequest struct {
	MaxAttendeesPerEvent int `json:"maxAttendeesPerEvent" validate:"required,min=1"`
}
