package models

import "time"

type User struct {
	BaseModel
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Name              string     `gorm:"not null" json:"name"`
	Role              UserRole   `gorm:"type:varchar(20);not null;default:'user'" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken string     `json:"-"`

	// Relations
	Events         []Event         `gorm:"foreignKey:OrganizerID" json:"-"`
	Participations []Participation `gorm:"foreignKey:UserID" json:"-"`
	RefreshTokens  []RefreshToken  `gorm:"foreignKey:UserID" json:"-"`
}

type RefreshToken struct {
	BaseModel
	UserID    string    `gorm:"type:uuid;not null;index"`
	Token     string    `gorm:"not null;uniqueIndex"`
	ExpiresAt time.Time `gorm:"not null"`
}
