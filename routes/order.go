package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	orderControllers "github.com/junaidrashid-git/jewelry-api/controllers/order"
	"github.com/junaidrashid-git/jewelry-api/middleware"
)

// SetupOrderRoutes registers the buyer side of orders. Any authenticated
// user may order.
func SetupOrderRoutes(api *gin.RouterGroup, d *app.Deps) {
	orders := api.Group("/orders")
	orders.Use(middleware.Authenticate(d))
	{
		// Place an order, decrementing stock atomically
		orders.POST("", orderControllers.PlaceOrderHandler(d))

		// Orders placed by the current user
		orders.GET("", orderControllers.GetMyOrdersHandler(d))
	}
}
