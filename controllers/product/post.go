package productcontroller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/controllers/params"
	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/presenters"
	"github.com/junaidrashid-git/jewelry-api/validation"
	"gorm.io/gorm"
)

// productInput is a fully validated product body.
type productInput struct {
	Title       string  `validate:"required"`
	Description string
	Carat       int     `validate:"carat"`
	Weight      float64 `validate:"gt=0"`
	Price       float64 `validate:"gt=0"`
	Stock       int     `validate:"gte=0"`
	GoldPriceID *string
	ImageURL    *string
}

var requiredProductFields = []string{"title", "carat", "weight", "price", "stock"}

// parseProductInput checks a create body: required fields, numbers, ranges.
func parseProductInput(f fields) (productInput, error) {
	var in productInput
	for _, key := range requiredProductFields {
		if _, ok := f.str(key); !ok {
			return in, apperr.Validation("The fields title, carat, weight, price and stock are required.")
		}
	}

	in.Title, _ = f.str("title")
	in.Description, _ = f.str("description")

	var err error
	if in.Carat, _, err = f.integer("carat"); err != nil {
		return in, apperr.Validation(err.Error() + ".")
	}
	if in.Weight, _, err = f.float("weight"); err != nil {
		return in, apperr.Validation(err.Error() + ".")
	}
	if in.Price, _, err = f.float("price"); err != nil {
		return in, apperr.Validation(err.Error() + ".")
	}
	if in.Stock, _, err = f.integer("stock"); err != nil {
		return in, apperr.Validation(err.Error() + ".")
	}
	if id, ok := f.str("goldPriceId"); ok {
		in.GoldPriceID = &id
	}
	in.ImageURL = f.pointer("imageUrl")

	if err := validation.Struct(in); err != nil {
		return in, apperr.Validation(err.Error())
	}
	return in, nil
}

// checkGoldPrice rejects references to gold prices that do not exist.
func checkGoldPrice(ctx context.Context, db *gorm.DB, id *string) error {
	if id == nil {
		return nil
	}
	if !params.ValidID(*id) {
		return apperr.Validation("Invalid gold price ID.")
	}
	var count int64
	if err := db.WithContext(ctx).Model(&models.GoldPrice{}).Where("id = ?", *id).Count(&count).Error; err != nil {
		return apperr.Internal("Error while checking the gold price.", err)
	}
	if count == 0 {
		return apperr.Validation("Gold price not found.")
	}
	return nil
}

// CreateProduct creates a product for the authenticated seller. The body may
// be JSON, urlencoded or multipart with an optional "image" file.
// POST /api/seller/products
func CreateProduct(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		f, err := readFields(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		in, err := parseProductInput(f)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if err := checkGoldPrice(ctx, d.DB, in.GoldPriceID); err != nil {
			apperr.Respond(c, err)
			return
		}

		filename, err := d.Uploads.Save(c, "image")
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		if filename != "" || in.ImageURL != nil {
			logger.Debug().Bool("imageUrl", in.ImageURL != nil).Bool("upload", filename != "").Msg("creating product with image")
		}
		ref, err := d.Images.Resolve(filename, in.ImageURL)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		product := in.model(seller.ID)
		if ref != "" {
			product.ImageURL = &ref
		}
		if err := d.DB.WithContext(ctx).Create(&product).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Error while creating the product.", err))
			return
		}

		created, err := loadOwned(ctx, d.DB, product.ID, seller.ID)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "Product created successfully",
			"product": presenters.NewProduct(*created, d.Links, c.Request),
		})
	}
}

func (in productInput) model(sellerID string) models.Product {
	return models.Product{
		Title:       in.Title,
		Description: in.Description,
		Carat:       in.Carat,
		Weight:      in.Weight,
		Price:       in.Price,
		Stock:       in.Stock,
		SellerID:    sellerID,
		GoldPriceID: in.GoldPriceID,
	}
}

var errNotOwned = apperr.NotFound("Product not found or you are not allowed to access it.")

// loadOwned reads a product of sellerID with its relations.
func loadOwned(ctx context.Context, db *gorm.DB, id, sellerID string) (*models.Product, error) {
	var product models.Product
	err := db.WithContext(ctx).
		Preload("Seller").
		Preload("GoldPrice").
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errNotOwned
	}
	if err != nil {
		return nil, apperr.Internal("Error while retrieving the product.", err)
	}
	return &product, nil
}
