package catalogControllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/controllers/params"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/presenters"
	"gorm.io/gorm"
)

// filter narrows the in-stock catalog. Nil fields are not applied.
type filter struct {
	Name      string
	Carat     *int
	PriceMin  *float64
	PriceMax  *float64
	WeightMin *float64
	WeightMax *float64
}

func (f filter) apply(q *gorm.DB) *gorm.DB {
	q = q.Where("stock > ?", 0)
	if f.Name != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(f.Name)+"%")
	}
	if f.Carat != nil {
		q = q.Where("carat = ?", *f.Carat)
	}
	if f.PriceMin != nil {
		q = q.Where("price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		q = q.Where("price <= ?", *f.PriceMax)
	}
	if f.WeightMin != nil {
		q = q.Where("weight >= ?", *f.WeightMin)
	}
	if f.WeightMax != nil {
		q = q.Where("weight <= ?", *f.WeightMax)
	}
	return q
}

func parseCarat(c *gin.Context) (*int, error) {
	raw := strings.TrimSpace(c.Query("carat"))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperr.Validation("Query parameter 'carat' must be an integer.")
	}
	return &v, nil
}

func parseFilter(c *gin.Context) (filter, error) {
	f := filter{Name: strings.TrimSpace(c.Query("name"))}
	var err error
	if f.Carat, err = parseCarat(c); err != nil {
		return f, err
	}
	for name, dst := range map[string]**float64{
		"priceMin":  &f.PriceMin,
		"priceMax":  &f.PriceMax,
		"weightMin": &f.WeightMin,
		"weightMax": &f.WeightMax,
	} {
		if *dst, err = params.QueryFloat(c, name); err != nil {
			return f, err
		}
	}
	return f, nil
}

func list(c *gin.Context, d *app.Deps, f filter, message string) {
	var products []models.Product
	err := f.apply(d.DB.WithContext(c.Request.Context()).Model(&models.Product{})).
		Preload("Seller").
		Preload("GoldPrice").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		apperr.Respond(c, apperr.Internal("Error while retrieving products.", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  message,
		"count":    len(products),
		"products": presenters.NewProducts(products, d.Links, c.Request),
	})
}

// GET /api/catalog
func ListProducts(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := parseFilter(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		list(c, d, f, "Products retrieved successfully")
	}
}

// GET /api/catalog/search?name=
func SearchProducts(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.Query("name"))
		if name == "" {
			apperr.Respond(c, apperr.Validation("The 'name' parameter is required."))
			return
		}
		list(c, d, filter{Name: name}, "Search completed successfully")
	}
}

// GET /api/catalog/filter/carat?carat=
func FilterByCarat(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		carat, err := parseCarat(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if carat == nil {
			apperr.Respond(c, apperr.Validation("The 'carat' parameter is required."))
			return
		}
		list(c, d, filter{Carat: carat}, "Carat filter applied successfully")
	}
}

// GET /api/catalog/filter/price?priceMin=&priceMax=
func FilterByPrice(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f filter
		var err error
		if f.PriceMin, err = params.QueryFloat(c, "priceMin"); err != nil {
			apperr.Respond(c, err)
			return
		}
		if f.PriceMax, err = params.QueryFloat(c, "priceMax"); err != nil {
			apperr.Respond(c, err)
			return
		}
		if f.PriceMin == nil && f.PriceMax == nil {
			apperr.Respond(c, apperr.Validation("At least one of 'priceMin' or 'priceMax' is required."))
			return
		}
		list(c, d, f, "Price filter applied successfully")
	}
}

// GET /api/catalog/:id
func GetProduct(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := params.ID(c, "id", "product")
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		product, err := d.Cache.Get(c.Request.Context(), id, LoadProduct(d.DB, id))
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if product.Stock <= 0 {
			apperr.Respond(c, apperr.NotFound("Product not available (out of stock)."))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Product retrieved successfully",
			"product": presenters.NewProduct(*product, d.Links, c.Request),
		})
	}
}

// LoadProduct reads a product with its seller and gold price.
func LoadProduct(db *gorm.DB, id string) func(ctx context.Context) (*models.Product, error) {
	return func(ctx context.Context) (*models.Product, error) {
		var product models.Product
		err := db.WithContext(ctx).Preload("Seller").Preload("GoldPrice").First(&product, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Product not found.")
		}
		if err != nil {
			return nil, apperr.Internal("Error while retrieving the product.", fmt.Errorf("load product %s: %w", id, err))
		}
		return &product, nil
	}
}
