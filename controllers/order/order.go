package orderControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/controllers/params"
	"github.com/junaidrashid-git/jewelry-api/events"
	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/presenters"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// -------- Request Structs --------
type PlaceOrderRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// -------- Core Logic --------

// PlaceOrder decrements stock and records the order in one transaction. The
// decrement is conditional on enough stock remaining, so concurrent orders
// can never take stock below zero. It returns the order and the seller that
// owns the product.
func PlaceOrder(ctx context.Context, db *gorm.DB, buyerID string, req PlaceOrderRequest) (*models.Order, string, error) {
	if !params.ValidID(req.ProductID) {
		return nil, "", apperr.Validation("Invalid product ID.")
	}

	var order models.Order
	var sellerID string
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Product not found.")
			}
			return err
		}

		res := tx.Model(&models.Product{}).
			Where("id = ? AND stock >= ?", product.ID, req.Quantity).
			UpdateColumn("stock", gorm.Expr("stock - ?", req.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.InsufficientStock(fmt.Sprintf("Insufficient stock for product %q.", product.Title))
		}

		order = models.Order{
			BuyerID:    buyerID,
			ProductID:  product.ID,
			Quantity:   req.Quantity,
			TotalPrice: decimal.NewFromFloat(product.Price).Mul(decimal.NewFromInt(int64(req.Quantity))).Round(2),
			Status:     models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		sellerID = product.SellerID
		return nil
	})
	if err != nil {
		return nil, "", err
	}
	return &order, sellerID, nil
}

// loadOrder reads an order with its buyer and product.
func loadOrder(ctx context.Context, db *gorm.DB, id string) (*models.Order, error) {
	var order models.Order
	err := db.WithContext(ctx).
		Preload("Buyer").
		Preload("Product").
		Preload("Product.Seller").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Order not found.")
	}
	if err != nil {
		return nil, apperr.Internal("Error while retrieving the order.", err)
	}
	return &order, nil
}

// sellerProducts selects the ids of the live products of sellerID.
func sellerProducts(db *gorm.DB, sellerID string) *gorm.DB {
	return db.Model(&models.Product{}).Select("id").Where("seller_id = ?", sellerID)
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyer := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("productId and a quantity greater than 0 are required."))
			return
		}

		order, sellerID, err := PlaceOrder(ctx, d.DB, buyer.ID, req)
		if err != nil {
			var appErr *apperr.Error
			if !errors.As(err, &appErr) {
				err = apperr.Internal("Error while placing the order.", err)
			}
			apperr.Respond(c, err)
			return
		}
		d.Cache.Invalidate(ctx, order.ProductID)
		d.Events.Publish(ctx, events.NewOrderEvent(events.OrderCreated, *order, sellerID))

		logger.Info().
			Str("orderId", order.ID).
			Str("productId", order.ProductID).
			Int("quantity", order.Quantity).
			Msg("order placed")

		placed, err := loadOrder(ctx, d.DB, order.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Order placed successfully",
			"order":   presenters.NewOrder(*placed, d.Links, c.Request),
		})
	}
}

// GET /api/orders
func GetMyOrdersHandler(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyer := middleware.CurrentUser(c)

		var orders []models.Order
		if err := d.DB.WithContext(c.Request.Context()).
			Where("buyer_id = ?", buyer.ID).
			Preload("Buyer").
			Preload("Product").
			Preload("Product.Seller").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Error while retrieving orders.", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Orders retrieved successfully",
			"count":   len(orders),
			"orders":  presenters.NewOrders(orders, d.Links, c.Request),
		})
	}
}

// GET /api/seller/orders
func GetSellerOrdersHandler(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)
		db := d.DB.WithContext(c.Request.Context())

		var orders []models.Order
		if err := db.
			Where("product_id IN (?)", sellerProducts(db, seller.ID)).
			Preload("Buyer").
			Preload("Product").
			Preload("Product.Seller").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Error while retrieving orders.", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Orders retrieved successfully",
			"count":   len(orders),
			"orders":  presenters.NewOrders(orders, d.Links, c.Request),
		})
	}
}

// authorizeSeller loads the order and checks that its product belongs to
// sellerID. An order whose product has been deleted belongs to nobody.
func authorizeSeller(c *gin.Context, d *app.Deps, sellerID, forbidden string) (*models.Order, error) {
	id, err := params.ID(c, "id", "order")
	if err != nil {
		return nil, err
	}
	order, err := loadOrder(c.Request.Context(), d.DB, id)
	if err != nil {
		return nil, err
	}
	if order.Product.ID == "" || order.Product.SellerID != sellerID {
		return nil, apperr.Forbidden(forbidden)
	}
	return order, nil
}

// GET /api/seller/orders/:id
func GetSellerOrderHandler(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)

		order, err := authorizeSeller(c, d, seller.ID, "You are not allowed to access this order.")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Order retrieved successfully",
			"order":   presenters.NewOrder(*order, d.Links, c.Request),
		})
	}
}

// Update order status
// PATCH /api/seller/orders/:id/status
func UpdateOrderStatusHandler(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.Validation("The request body is empty or invalid. Please send JSON."))
			return
		}
		status, ok := models.ParseOrderStatus(strings.ToLower(strings.TrimSpace(req.Status)))
		if !ok {
			names := make([]string, 0, len(models.OrderStatuses))
			for _, s := range models.OrderStatuses {
				names = append(names, string(s))
			}
			apperr.Respond(c, apperr.Validation("Status must be one of: "+strings.Join(names, ", ")+"."))
			return
		}

		order, err := authorizeSeller(c, d, seller.ID, "You are not allowed to modify this order.")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		if err := d.DB.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Error while updating the order status.", err))
			return
		}
		order.Status = status
		d.Events.Publish(ctx, events.NewOrderEvent(events.OrderStatusUpdated, *order, seller.ID))

		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated successfully",
			"order":   presenters.NewOrder(*order, d.Links, c.Request),
		})
	}
}
