package orderControllers

import (
	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/junaidrashid-git/jewelry-api/middleware"
)

// OrderWebSocketHandler streams order events for the authenticated seller's
// products.
// GET /api/seller/orders/ws
func OrderWebSocketHandler(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		seller := middleware.CurrentUser(c)
		if err := d.Hub.Serve(c.Writer, c.Request, seller.ID); err != nil {
			logger.Warn().Err(err).Str("sellerId", seller.ID).Msg("websocket upgrade failed")
		}
	}
}
