package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/controllers/params"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/presenters"
)

// GET /api/seller/products
func GetMyProducts(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)

		var products []models.Product
		err := d.DB.WithContext(c.Request.Context()).
			Preload("Seller").
			Preload("GoldPrice").
			Where("seller_id = ?", seller.ID).
			Order("created_at DESC").
			Find(&products).Error
		if err != nil {
			apperr.Respond(c, apperr.Internal("Error while retrieving products.", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "Products retrieved successfully",
			"count":    len(products),
			"products": presenters.NewProducts(products, d.Links, c.Request),
		})
	}
}

// GET /api/seller/products/:id
func GetMyProduct(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)

		id, err := params.ID(c, "id", "product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		product, err := loadOwned(c.Request.Context(), d.DB, id, seller.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Product retrieved successfully",
			"product": presenters.NewProduct(*product, d.Links, c.Request),
		})
	}
}
