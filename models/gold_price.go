package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoldPrice is a dated quote per purity that products can reference.
type GoldPrice struct {
	ID       string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Date     time.Time `json:"date"`
	Price24k float64   `json:"price24k"`
	Price22k float64   `json:"price22k"`
	Price18k float64   `json:"price18k"`
}

func (g *GoldPrice) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Date.IsZero() {
		g.Date = time.Now()
	}
	return nil
}
