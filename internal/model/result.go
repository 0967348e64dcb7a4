package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Result is the record of one graded drawing. Question holds the question
// text as it was at grading time rather than a reference, so history stays
// readable after the question changes or disappears. Rows are append-only.
type Result struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username  string    `json:"username" gorm:"not null;index"`
	Question  string    `json:"question" gorm:"type:text;not null"`
	Caption   string    `json:"caption" gorm:"not null"`
	Correct   bool      `json:"correct" gorm:"not null"`
	ImageData string    `json:"imageData" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
