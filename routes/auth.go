package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	authControllers "github.com/junaidrashid-git/jewelry-api/controllers/auth"
	"github.com/junaidrashid-git/jewelry-api/middleware"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, d *app.Deps) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(d))
		authGroup.POST("/register-seller", authControllers.RegisterSeller(d))
		authGroup.POST("/login", authControllers.Login(d))

		authGroup.GET("/profile", middleware.Authenticate(d), authControllers.Profile)
	}
}
