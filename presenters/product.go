// Package presenters builds the JSON shapes returned by the API from
// persisted models.
package presenters

import (
	"net/http"
	"time"

	"github.com/junaidrashid-git/jewelry-api/imageref"
	"github.com/junaidrashid-git/jewelry-api/models"
)

type Seller struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Boutique models.Boutique `json:"boutique"`
}

// Product always carries imageUrl and imageLink as strings; clients
// cannot handle null there.
type Product struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Carat       int               `json:"carat"`
	Weight      float64           `json:"weight"`
	Price       float64           `json:"price"`
	Stock       int               `json:"stock"`
	ImageURL    string            `json:"imageUrl"`
	ImageLink   string            `json:"imageLink"`
	SellerID    string            `json:"sellerId"`
	Seller      *Seller           `json:"seller,omitempty"`
	GoldPriceID *string           `json:"goldPriceId"`
	GoldPrice   *models.GoldPrice `json:"goldPrice"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func NewProduct(p models.Product, links *imageref.Materializer, r *http.Request) Product {
	image := links.Link(p.Image(), r)
	out := Product{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Carat:       p.Carat,
		Weight:      p.Weight,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    image,
		ImageLink:   image,
		SellerID:    p.SellerID,
		GoldPriceID: p.GoldPriceID,
		GoldPrice:   p.GoldPrice,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Seller.ID != "" {
		out.Seller = &Seller{ID: p.Seller.ID, Name: p.Seller.Name, Boutique: p.Seller.Boutique}
	}
	return out
}

func NewProducts(ps []models.Product, links *imageref.Materializer, r *http.Request) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProduct(p, links, r))
	}
	return out
}
