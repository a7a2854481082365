// Package events carries order notifications to sellers and downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/shopspring/decimal"
)

type Type string

const (
	OrderCreated       Type = "order.created"
	OrderStatusUpdated Type = "order.status_updated"
)

type Event struct {
	ID         string             `json:"id"`
	Type       Type               `json:"type"`
	OrderID    string             `json:"orderId"`
	ProductID  string             `json:"productId"`
	SellerID   string             `json:"sellerId"`
	BuyerID    string             `json:"buyerId"`
	Quantity   int                `json:"quantity"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	Status     models.OrderStatus `json:"status"`
	OccurredAt time.Time          `json:"occurredAt"`
}

// NewOrderEvent describes order o, whose product belongs to sellerID.
func NewOrderEvent(t Type, o models.Order, sellerID string) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OrderID:    o.ID,
		ProductID:  o.ProductID,
		SellerID:   sellerID,
		BuyerID:    o.BuyerID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice,
		Status:     o.Status,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events. Implementations must not block the caller for
// long and report their own failures.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

// Fanout publishes every event to each of its publishers in order.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) {
	for _, p := range f {
		if p != nil {
			p.Publish(ctx, ev)
		}
	}
}

// Discard drops every event.
type Discard struct{}

func (Discard) Publish(context.Context, Event) {}
