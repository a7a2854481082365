package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/controllers/params"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/presenters"
	"github.com/junaidrashid-git/jewelry-api/validation"
)

// parseUpdates turns an update body into column updates. Only fields that
// are present are touched.
func parseUpdates(f fields) (map[string]interface{}, error) {
	updates := make(map[string]interface{})

	if title, ok := f.str("title"); ok {
		updates["title"] = title
	}
	if f.has("description") {
		desc, _ := f.str("description")
		updates["description"] = desc
	}
	if carat, ok, err := f.integer("carat"); err != nil || (ok && !validation.IsCarat(carat)) {
		return nil, apperr.Validation("carat must be 18, 22 or 24.")
	} else if ok {
		updates["carat"] = carat
	}
	if weight, ok, err := f.float("weight"); err != nil || (ok && weight <= 0) {
		return nil, apperr.Validation("weight must be positive.")
	} else if ok {
		updates["weight"] = weight
	}
	if price, ok, err := f.float("price"); err != nil || (ok && price <= 0) {
		return nil, apperr.Validation("price must be positive.")
	} else if ok {
		updates["price"] = price
	}
	if stock, ok, err := f.integer("stock"); err != nil || (ok && stock < 0) {
		return nil, apperr.Validation("stock cannot be negative.")
	} else if ok {
		updates["stock"] = stock
	}
	if f.has("goldPriceId") {
		if id, ok := f.str("goldPriceId"); ok {
			updates["gold_price_id"] = id
		} else {
			updates["gold_price_id"] = nil
		}
	}
	return updates, nil
}

// UpdateProduct applies a partial update to one of the seller's products.
// An image upload replaces the image. An imageUrl of "" or null clears it,
// and an unusable imageUrl leaves it untouched under the lenient policy.
// PUT /api/seller/products/:id
func UpdateProduct(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		id, err := params.ID(c, "id", "product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		product, err := loadOwned(ctx, d.DB, id, seller.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		f, err := readFields(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		updates, err := parseUpdates(f)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if gp, ok := updates["gold_price_id"].(string); ok {
			if err := checkGoldPrice(ctx, d.DB, &gp); err != nil {
				apperr.Respond(c, err)
				return
			}
		}

		filename, err := d.Uploads.Save(c, "image")
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		supplied := f.pointer("imageUrl")
		switch {
		case filename != "":
			ref, _ := d.Images.Resolve(filename, nil)
			updates["image_url"] = ref
		case f.has("imageUrl") && (supplied == nil || strings.TrimSpace(*supplied) == ""):
			updates["image_url"] = nil
		case supplied != nil:
			ref, err := d.Images.Resolve("", supplied)
			if err != nil {
				apperr.Respond(c, err)
				return
			}
			if ref != "" {
				updates["image_url"] = ref
			}
		}

		if len(updates) > 0 {
			if err := d.DB.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
				apperr.Respond(c, apperr.Internal("Error while updating the product.", err))
				return
			}
			d.Cache.Invalidate(ctx, product.ID)
		}

		updated, err := loadOwned(ctx, d.DB, product.ID, seller.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Product updated successfully",
			"product": presenters.NewProduct(*updated, d.Links, c.Request),
		})
	}
}

type StockInput struct {
	Stock *params.Number `json:"stock"`
}

// PATCH /api/seller/products/:id/stock
func UpdateStock(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		id, err := params.ID(c, "id", "product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		var input StockInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Stock == nil || !input.Stock.Set ||
			input.Stock.Value < 0 || input.Stock.Value != float64(int(input.Stock.Value)) {
			apperr.Respond(c, apperr.Validation("Stock is required and must be a whole number >= 0."))
			return
		}

		product, err := loadOwned(ctx, d.DB, id, seller.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		stock := int(input.Stock.Value)
		if err := d.DB.WithContext(ctx).Model(product).Update("stock", stock).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Error while updating the stock.", err))
			return
		}
		product.Stock = stock
		d.Cache.Invalidate(ctx, product.ID)

		c.JSON(http.StatusOK, gin.H{
			"message": "Stock updated successfully",
			"product": presenters.NewProduct(*product, d.Links, c.Request),
		})
	}
}
