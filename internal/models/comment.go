package models

type Comment struct {
	BaseModel
	UserID  string `gorm:"type:uuid;not null;index" json:"user_id"`
	EventID string `gorm:"type:uuid;not null;index" json:"event_id"`
	Body    string `gorm:"not null" json:"body"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
