package productcontroller

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/tealeg/xlsx"
)

// excelColumns is shared by export and import so a downloaded sheet can be
// edited and uploaded back.
var excelColumns = []string{
	"ID", "Title", "Description", "Carat", "Weight", "Price", "Stock",
	"ImageURL", "GoldPriceID", "CreatedAt", "UpdatedAt",
}

const (
	colID = iota
	colTitle
	colDescription
	colCarat
	colWeight
	colPrice
	colStock
	colImageURL
	colGoldPriceID
)

// GET /api/seller/products/export
func ExportProductsToExcel(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)

		var products []models.Product
		err := d.DB.WithContext(c.Request.Context()).
			Where("seller_id = ?", seller.ID).
			Order("created_at DESC").
			Find(&products).Error
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to fetch products.", err))
			return
		}

		file, err := buildProductsSheet(products)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Failed to create Excel sheet.", err))
			return
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			_ = c.Error(err)
		}
	}
}

func buildProductsSheet(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, h := range excelColumns {
		header.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Title)
		row.AddCell().SetValue(p.Description)
		row.AddCell().SetInt(p.Carat)
		row.AddCell().SetFloat(p.Weight)
		row.AddCell().SetFloat(p.Price)
		row.AddCell().SetInt(p.Stock)
		row.AddCell().SetValue(p.Image())
		goldPriceID := ""
		if p.GoldPriceID != nil {
			goldPriceID = *p.GoldPriceID
		}
		row.AddCell().SetValue(goldPriceID)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
