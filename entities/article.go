package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Article is a unit of content owned by exactly one user. Every read,
// update and delete is scoped by (id, author_id).
type Article struct {
	ID        string         `gorm:"type:text;primaryKey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Body      string         `gorm:"not null" json:"body"`
	Tags      pq.StringArray `gorm:"type:text[]" json:"tags"`
	Summary   *string        `json:"summary"`
	AuthorID  string         `gorm:"type:text;index;not null" json:"author_id"`
	Author    *Author        `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`
	CreatedAt string         `json:"created_at"`
	UpdatedAt string         `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Tags == nil {
		a.Tags = pq.StringArray{}
	}
	a.CreatedAt = time.Now().Format(time.RFC3339)
	a.UpdatedAt = a.CreatedAt
	return
}
