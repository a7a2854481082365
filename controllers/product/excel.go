package productcontroller

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
	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

type rowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportProductsFromExcel creates or updates the seller's products from the
// first sheet of an uploaded workbook laid out like the export. Rows whose ID
// matches one of the seller's products update it; other rows create products.
// POST /api/seller/products/import
func ImportProductsFromExcel(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)
		ctx := c.Request.Context()

		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			apperr.Respond(c, apperr.Validation("Excel file is required."))
			return
		}
		file, err := excelFileHeader.Open()
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to open Excel file.", err))
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			apperr.Respond(c, apperr.Validation("Failed to parse Excel file."))
			return
		}
		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			apperr.Respond(c, apperr.Validation("Excel file is empty or missing header row."))
			return
		}

		sheet := xlFile.Sheets[0]
		created, updated := 0, 0
		var skipped []rowError
		var touched []string

		for i := 1; i < len(sheet.Rows); i++ {
			row := sheet.Rows[i]
			if row == nil || rowEmpty(row) {
				continue
			}
			id, wasUpdate, err := importRow(ctx, d, seller.ID, row)
			if err != nil {
				skipped = append(skipped, rowError{Row: i + 1, Message: rowMessage(err)})
				continue
			}
			touched = append(touched, id)
			if wasUpdate {
				updated++
			} else {
				created++
			}
		}
		d.Cache.Invalidate(ctx, touched...)

		logger.Info().
			Str("sellerId", seller.ID).
			Int("created", created).
			Int("updated", updated).
			Int("skipped", len(skipped)).
			Msg("product import finished")

		c.JSON(http.StatusOK, gin.H{
			"message":      "Import completed",
			"createdCount": created,
			"updatedCount": updated,
			"skippedCount": len(skipped),
			"errors":       nonNil(skipped),
		})
	}
}

// importRow validates one sheet row like a create request and upserts it.
func importRow(ctx context.Context, d *app.Deps, sellerID string, row *xlsx.Row) (string, bool, error) {
	get := func(index int) string {
		if index < len(row.Cells) {
			return strings.TrimSpace(row.Cells[index].String())
		}
		return ""
	}

	f := fields{
		"title":       {value: get(colTitle)},
		"description": {value: get(colDescription)},
		"carat":       {value: get(colCarat)},
		"weight":      {value: get(colWeight)},
		"price":       {value: get(colPrice)},
		"stock":       {value: get(colStock)},
	}
	if v := get(colGoldPriceID); v != "" {
		f["goldPriceId"] = field{value: v}
	}
	if v := get(colImageURL); v != "" {
		f["imageUrl"] = field{value: v}
	}

	in, err := parseProductInput(f)
	if err != nil {
		return "", false, err
	}
	if err := checkGoldPrice(ctx, d.DB, in.GoldPriceID); err != nil {
		return "", false, err
	}
	ref, err := d.Images.Resolve("", in.ImageURL)
	if err != nil {
		return "", false, err
	}

	product := in.model(sellerID)
	if ref != "" {
		product.ImageURL = &ref
	}

	db := d.DB.WithContext(ctx)
	if id := get(colID); params.ValidID(id) {
		var existing models.Product
		err := db.Where("id = ? AND seller_id = ?", id, sellerID).First(&existing).Error
		switch {
		case err == nil:
			err = db.Model(&existing).Updates(map[string]interface{}{
				"title":         product.Title,
				"description":   product.Description,
				"carat":         product.Carat,
				"weight":        product.Weight,
				"price":         product.Price,
				"stock":         product.Stock,
				"image_url":     product.ImageURL,
				"gold_price_id": product.GoldPriceID,
			}).Error
			return existing.ID, true, err
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return "", false, err
		}
	}

	err = db.Create(&product).Error
	return product.ID, false, err
}

func rowEmpty(row *xlsx.Row) bool {
	for _, cell := range row.Cells {
		if strings.TrimSpace(cell.String()) != "" {
			return false
		}
	}
	return true
}

func rowMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fmt.Sprintf("database error: %v", err)
}

func nonNil(errs []rowError) []rowError {
	if errs == nil {
		return []rowError{}
	}
	return errs
}
