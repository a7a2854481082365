package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile mirrors the display fields of a user.
type Profile struct {
	ID     string `gorm:"type:varchar(36);primaryKey" json:"profileId"`
	UserID string `gorm:"type:varchar(36);uniqueIndex;not null" json:"-"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
