package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	measurementControllers "github.com/junaidrashid-git/jewelry-api/controllers/measurement"
	profileControllers "github.com/junaidrashid-git/jewelry-api/controllers/profile"
	"github.com/junaidrashid-git/jewelry-api/middleware"
)

// SetupUserRoutes registers profile and measurement endpoints. Requires JWT middleware.
func SetupUserRoutes(api *gin.RouterGroup, d *app.Deps) {
	authed := api.Group("")
	authed.Use(middleware.Authenticate(d))
	{
		// ──────────────── Profile ────────────────
		authed.GET("/profile", profileControllers.GetProfile(d))    // GET /api/profile
		authed.PUT("/profile", profileControllers.UpdateProfile(d)) // PUT /api/profile

		// ──────────────── Measurements ────────────────
		measurements := authed.Group("/measurements")
		{
			measurements.POST("", measurementControllers.SaveMeasurement(d))
			measurements.GET("", measurementControllers.ListMeasurements(d))
			measurements.POST("/calculate", measurementControllers.CalculateStandardSize)
		}
	}
}
