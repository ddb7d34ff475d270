package models

// Participation links a user to an event. Only approved rows are
// notification targets; rows cascade to deleted when the event is
// soft-deleted.
type Participation struct {
	BaseModel
	UserID  string              `gorm:"type:uuid;not null;index:idx_participation_user_event,unique" json:"user_id"`
	EventID string              `gorm:"type:uuid;not null;index:idx_participation_user_event,unique" json:"event_id"`
	Status  ParticipationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Event *Event `gorm:"foreignKey:EventID" json:"-"`
}
