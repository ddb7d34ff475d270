package models

import "gorm.io/datatypes"

// Settings is a singleton configuration record, externally
// administered. EventSettings carries the event-related knobs,
// currently {"maxAttendeesPerEvent": N}.
type Settings struct {
	BaseModel
	EventSettings datatypes.JSON `json:"event_settings"`
}
