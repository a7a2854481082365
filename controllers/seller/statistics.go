package sellerControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Statistics struct {
	ProductCount int64   `json:"productCount"`
	AveragePrice float64 `json:"averagePrice"`
	OrderCount   int64   `json:"orderCount"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// ComputeStatistics summarises the live products of sellerID and the orders
// placed on them. Amounts are rounded to cents.
func ComputeStatistics(db *gorm.DB, sellerID string) (Statistics, error) {
	var stats Statistics

	var prices []float64
	if err := db.Model(&models.Product{}).Where("seller_id = ?", sellerID).Pluck("price", &prices).Error; err != nil {
		return stats, err
	}
	stats.ProductCount = int64(len(prices))
	if len(prices) > 0 {
		sum := decimal.Zero
		for _, p := range prices {
			sum = sum.Add(decimal.NewFromFloat(p))
		}
		stats.AveragePrice = sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(2).InexactFloat64()
	}

	productIDs := db.Model(&models.Product{}).Select("id").Where("seller_id = ?", sellerID)
	var totals []decimal.Decimal
	if err := db.Model(&models.Order{}).Where("product_id IN (?)", productIDs).Pluck("total_price", &totals).Error; err != nil {
		return stats, err
	}
	stats.OrderCount = int64(len(totals))
	revenue := decimal.Zero
	for _, t := range totals {
		revenue = revenue.Add(t)
	}
	stats.TotalRevenue = revenue.Round(2).InexactFloat64()

	return stats, nil
}

// GET /api/seller/statistics
func GetStatistics(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)

		stats, err := ComputeStatistics(d.DB.WithContext(c.Request.Context()), seller.ID)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Error while retrieving statistics.", err))
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":    "Statistics retrieved successfully",
			"statistics": stats,
		})
	}
}
