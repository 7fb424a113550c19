package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an identity record. The password hash is never serialized.
type User struct {
	ID           string `gorm:"type:text;primaryKey" json:"id"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = time.Now().Format(time.RFC3339)
	u.UpdatedAt = u.CreatedAt
	return
}

// Author is the minimal projection of a user joined onto articles.
type Author struct {
	ID    string `gorm:"type:text;primaryKey" json:"id"`
	Email string `json:"email"`
}

func (Author) TableName() string { return "users" }
