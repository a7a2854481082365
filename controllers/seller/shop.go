package sellerControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/presenters"
)

type UpdateShopProfileInput struct {
	ShopName    *string `json:"shopName"`
	Description *string `json:"description"`
}

// GET /api/seller/shop-profile
func GetShopProfile(c *gin.Context) {
	seller := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"message":     "Shop profile retrieved successfully",
		"shopProfile": presenters.NewShopProfile(*seller),
	})
}

// PUT /api/seller/shop-profile
func UpdateShopProfile(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)

		var input UpdateShopProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("The request body is empty or invalid. Please send JSON."))
			return
		}

		updates := make(map[string]interface{})
		if input.ShopName != nil && strings.TrimSpace(*input.ShopName) != "" {
			updates["boutique_shop_name"] = strings.TrimSpace(*input.ShopName)
		}
		if input.Description != nil {
			updates["boutique_description"] = *input.Description
		}
		if len(updates) == 0 {
			apperr.Respond(c, apperr.Validation("At least one field (shopName or description) must be provided."))
			return
		}

		if err := d.DB.WithContext(c.Request.Context()).Model(seller).Updates(updates).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Error while updating the shop profile.", err))
			return
		}
		d.Cache.InvalidateSeller(c.Request.Context(), d.DB, seller.ID)
		if v, ok := updates["boutique_shop_name"].(string); ok {
			seller.Boutique.ShopName = v
		}
		if v, ok := updates["boutique_description"].(string); ok {
			seller.Boutique.Description = v
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "Shop profile updated successfully",
			"shopProfile": presenters.NewShopProfile(*seller),
		})
	}
}
