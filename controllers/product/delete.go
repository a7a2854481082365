package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/controllers/params"
	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/junaidrashid-git/jewelry-api/middleware"
)

// DeleteProduct soft-deletes a product. Existing orders keep their
// reference and price snapshot.
// DELETE /api/seller/products/:id
func DeleteProduct(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		// 1. Parse product ID
		id, err := params.ID(c, "id", "product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		// 2. Ownership check
		product, err := loadOwned(ctx, d.DB, id, seller.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		// 3. Delete and drop the cached copy
		if err := d.DB.WithContext(ctx).Delete(product).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Error while deleting the product.", err))
			return
		}
		d.Cache.Invalidate(ctx, product.ID)

		logger.Info().Str("productId", product.ID).Str("sellerId", seller.ID).Msg("product deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
