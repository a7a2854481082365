package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	catalogControllers "github.com/junaidrashid-git/jewelry-api/controllers/catalog"
)

// SetupCatalogRoutes registers the public, in-stock-only catalog.
func SetupCatalogRoutes(api *gin.RouterGroup, d *app.Deps) {
	catalog := api.Group("/catalog")
	{
		catalog.GET("", catalogControllers.ListProducts(d))
		catalog.GET("/search", catalogControllers.SearchProducts(d))
		catalog.GET("/filter/carat", catalogControllers.FilterByCarat(d))
		catalog.GET("/filter/price", catalogControllers.FilterByPrice(d))
		catalog.GET("/:id", catalogControllers.GetProduct(d))
	}
}
