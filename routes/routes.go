package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
)

// SetupRoutes is the single entry-point that wires up every /api route group.
func SetupRoutes(r *gin.Engine, d *app.Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Jewelry marketplace API"})
	})
	r.GET("/healthz", health(d))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Route not found."})
	})

	api := r.Group("/api")

	// 1. Public auth routes
	SetupAuthRoutes(api, d)

	// 2. Public catalog
	SetupCatalogRoutes(api, d)

	// 3. Buyer routes (JWT-protected)
	SetupUserRoutes(api, d)

	// 4. Orders
	SetupOrderRoutes(api, d)

	// 5. Seller routes (JWT + seller role)
	SetupSellerRoutes(api, d)
}

func health(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := d.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Database unavailable.", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
}
