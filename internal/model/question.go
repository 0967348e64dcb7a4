package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Question struct {
	ID             string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Question       string         `json:"question" gorm:"type:text;not null"`
	Category       string         `json:"category" gorm:"not null;index"`
	ExpectedAnswer string         `json:"-" gorm:"not null"` // stored normalized, never sent to players
	CreatedBy      string         `json:"created_by,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (q *Question) BeforeSave(tx *gorm.DB) error {
	q.ExpectedAnswer = NormalizeLabel(q.ExpectedAnswer)
	return nil
}
