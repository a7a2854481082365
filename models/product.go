package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID          string     `gorm:"type:varchar(36);primaryKey"`
	Title       string     `gorm:"not null;index"`
	Description string
	Carat       int        `gorm:"not null;index"`
	Weight      float64    `gorm:"not null"`
	Price       float64    `gorm:"not null"`
	Stock       int        `gorm:"not null;default:0"`
	ImageURL    *string    `gorm:"type:text"` // nil when the product has no image
	SellerID    string     `gorm:"type:varchar(36);index;not null"`
	Seller      User       `gorm:"foreignKey:SellerID"`
	GoldPriceID *string    `gorm:"type:varchar(36)"`
	GoldPrice   *GoldPrice `gorm:"foreignKey:GoldPriceID"`
	CreatedAt   time.Time  `gorm:"index"`
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// Image returns the stored image reference, or "" when there is none.
func (p *Product) Image() string {
	if p.ImageURL == nil {
		return ""
	}
	return *p.ImageURL
}
