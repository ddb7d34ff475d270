package models

import "time"

// Event is a schedulable activity owned by its organizer. The image
// key references a blob in whichever storage backend is active; the
// event record exclusively owns that key's lifecycle. Deletion is a
// soft status transition, never row removal.
type Event struct {
	BaseModel
	OrganizerID  string      `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer    *User       `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`
	Title        string      `gorm:"not null" json:"title"`
	Description  string      `json:"description"`
	Location     string      `json:"location"`
	StartsAt     time.Time   `gorm:"not null;index" json:"starts_at"`
	EndsAt       *time.Time  `json:"ends_at,omitempty"`
	MaxAttendees int         `gorm:"not null;default:1" json:"max_attendees"`
	IsPublic     bool        `gorm:"default:true" json:"is_public"`
	Status       EventStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	ImageKey     *string     `json:"-"`

	Participations []Participation `gorm:"foreignKey:EventID" json:"-"`
}
