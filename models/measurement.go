package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Measurement struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(36);index;not null"`
	Type      string    `gorm:"type:VARCHAR(20);not null"`
	ValueMm   float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"index"`
}

func (m *Measurement) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
