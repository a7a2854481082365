package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

type User struct {
	ID           string        `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name         string        `gorm:"not null" json:"name"`
	Email        string        `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string        `gorm:"not null" json:"-"`
	Role         Role          `gorm:"type:VARCHAR(20);default:'buyer'" json:"role"`
	Boutique     Boutique      `gorm:"embedded;embeddedPrefix:boutique_" json:"boutique"`
	Measurements []Measurement `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Boutique is the shop profile of a seller, embedded in the users table.
type Boutique struct {
	ShopName    string `json:"shopName"`
	Description string `json:"description"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Role == "" {
		u.Role = RoleBuyer
	}
	u.Email = NormalizeEmail(u.Email)
	return nil
}

func (u *User) IsSeller() bool {
	return u.Role == RoleSeller
}

// NormalizeEmail trims and lowercases an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
