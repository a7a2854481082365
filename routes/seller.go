package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	orderControllers "github.com/junaidrashid-git/jewelry-api/controllers/order"
	productcontroller "github.com/junaidrashid-git/jewelry-api/controllers/product"
	sellerControllers "github.com/junaidrashid-git/jewelry-api/controllers/seller"
	"github.com/junaidrashid-git/jewelry-api/middleware"
)

// SetupSellerRoutes registers all "/api/seller/*" endpoints. Requires a token
// and the seller role.
func SetupSellerRoutes(api *gin.RouterGroup, d *app.Deps) {
	sellerGroup := api.Group("/seller")
	sellerGroup.Use(middleware.Authenticate(d), middleware.RequireSeller)
	{
		// ─────────── Shop Profile ───────────
		sellerGroup.GET("/shop-profile", sellerControllers.GetShopProfile)
		sellerGroup.PUT("/shop-profile", sellerControllers.UpdateShopProfile(d))

		// ─────────── Product Management ───────────
		products := sellerGroup.Group("/products")
		{
			products.POST("", productcontroller.CreateProduct(d))
			products.GET("", productcontroller.GetMyProducts(d))
			products.GET("/export", productcontroller.ExportProductsToExcel(d))
			products.POST("/import", productcontroller.ImportProductsFromExcel(d))
			products.GET("/:id", productcontroller.GetMyProduct(d))
			products.PUT("/:id", productcontroller.UpdateProduct(d))
			products.DELETE("/:id", productcontroller.DeleteProduct(d))
			products.PATCH("/:id/stock", productcontroller.UpdateStock(d))
		}

		// ─────────── Orders ───────────
		orders := sellerGroup.Group("/orders")
		{
			orders.GET("", orderControllers.GetSellerOrdersHandler(d))
			orders.GET("/ws", orderControllers.OrderWebSocketHandler(d))
			orders.GET("/:id", orderControllers.GetSellerOrderHandler(d))
			orders.PATCH("/:id/status", orderControllers.UpdateOrderStatusHandler(d))
		}

		// ─────────── Statistics ───────────
		sellerGroup.GET("/statistics", sellerControllers.GetStatistics(d))
	}
}
