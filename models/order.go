package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting the seller
	OrderStatusProcessing OrderStatus = "processing" // Seller is preparing it
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // Customer received the item
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

type Order struct {
	ID        string `gorm:"type:varchar(36);primaryKey"`
	BuyerID   string `gorm:"type:varchar(36);index;not null"`
	Buyer     User   `gorm:"foreignKey:BuyerID"`
	ProductID string `gorm:"type:varchar(36);index;not null"`
	Product   Product
	Quantity  int `gorm:"not null"`
	// TotalPrice is price x quantity at the moment the order was placed.
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Status     OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'"`
	CreatedAt  time.Time       `gorm:"index"`
	UpdatedAt  time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = OrderStatusPending
	}
	return nil
}
