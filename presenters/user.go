package presenters

import (
	"time"

	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/sizing"
)

type User struct {
	UserID    string           `json:"userId"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      models.Role      `json:"role"`
	Boutique  *models.Boutique `json:"boutique,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

func NewUser(u models.User) User {
	out := User{
		UserID:    u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.IsSeller() {
		b := u.Boutique
		out.Boutique = &b
	}
	return out
}

type Profile struct {
	ProfileID string `json:"profileId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

func NewProfile(p models.Profile) Profile {
	return Profile{ProfileID: p.ID, Name: p.Name, Email: p.Email}
}

type ShopProfile struct {
	ShopName    string `json:"shopName"`
	Description string `json:"description"`
	SellerName  string `json:"sellerName"`
	Email       string `json:"email"`
}

func NewShopProfile(u models.User) ShopProfile {
	return ShopProfile{
		ShopName:    u.Boutique.ShopName,
		Description: u.Boutique.Description,
		SellerName:  u.Name,
		Email:       u.Email,
	}
}

type Measurement struct {
	MeasurementID string    `json:"measurementId"`
	UserID        string    `json:"userId"`
	Type          string    `json:"type"`
	ValueMm       float64   `json:"valueMm"`
	StandardSize  float64   `json:"standardSize"`
	Date          time.Time `json:"date"`
}

// NewMeasurement derives the standard size from the stored raw value.
func NewMeasurement(m models.Measurement) Measurement {
	t, err := sizing.ParseType(m.Type)
	size := m.ValueMm
	if err == nil {
		size = sizing.Standardize(t, m.ValueMm)
	}
	return Measurement{
		MeasurementID: m.ID,
		UserID:        m.UserID,
		Type:          m.Type,
		ValueMm:       m.ValueMm,
		StandardSize:  size,
		Date:          m.CreatedAt,
	}
}

func NewMeasurements(ms []models.Measurement) []Measurement {
	out := make([]Measurement, 0, len(ms))
	for _, m := range ms {
		out = append(out, NewMeasurement(m))
	}
	return out
}
