package presenters

import (
	"net/http"
	"time"

	"github.com/junaidrashid-git/jewelry-api/imageref"
	"github.com/junaidrashid-git/jewelry-api/models"
)

type Buyer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Order struct {
	ID         string             `json:"id"`
	BuyerID    string             `json:"buyerId"`
	Buyer      *Buyer             `json:"buyer,omitempty"`
	ProductID  string             `json:"productId"`
	Product    *Product           `json:"product"`
	Quantity   int                `json:"quantity"`
	TotalPrice float64            `json:"totalPrice"`
	Status     models.OrderStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// NewOrder leaves product null when the ordered product has since been deleted.
func NewOrder(o models.Order, links *imageref.Materializer, r *http.Request) Order {
	out := Order{
		ID:         o.ID,
		BuyerID:    o.BuyerID,
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice.Round(2).InexactFloat64(),
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
	if o.Buyer.ID != "" {
		out.Buyer = &Buyer{ID: o.Buyer.ID, Name: o.Buyer.Name, Email: o.Buyer.Email}
	}
	if o.Product.ID != "" {
		p := NewProduct(o.Product, links, r)
		out.Product = &p
	}
	return out
}

func NewOrders(orders []models.Order, links *imageref.Materializer, r *http.Request) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, NewOrder(o, links, r))
	}
	return out
}
