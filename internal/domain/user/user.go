package user

import (
	"time"

	"github.com/google/uuid"
)

// User is created on first sign-in and never deleted by the application.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email;uniqueIndex;not null" json:"email"`
	Image     string    `gorm:"column:image" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

func (User) TableName() string { return "users" }
