package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/auth"
	"github.com/junaidrashid-git/jewelry-api/models"
	"gorm.io/gorm"
)

const userKey = "user"

// Authenticate requires a valid bearer token and loads its user into the context.
func Authenticate(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			raw = ""
		}
		// Browsers cannot set headers on websocket handshakes.
		if raw == "" && websocket.IsWebSocketUpgrade(c.Request) {
			raw = c.Query("token")
		}

		claims, err := d.Tokens.Parse(strings.TrimSpace(raw))
		switch {
		case errors.Is(err, auth.ErrTokenMissing):
			apperr.Respond(c, apperr.Unauthorized("Access denied. Token missing."))
			return
		case errors.Is(err, auth.ErrTokenExpired):
			apperr.Respond(c, apperr.Unauthorized("Token expired."))
			return
		case err != nil:
			apperr.Respond(c, apperr.Unauthorized("Invalid token."))
			return
		}

		var user models.User
		err = d.DB.WithContext(c.Request.Context()).First(&user, "id = ?", claims.UserID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.Unauthorized("Invalid token. User not found."))
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Internal("Authentication error.", err))
			return
		}

		c.Set(userKey, &user)
		c.Next()
	}
}

// RequireSeller must run after Authenticate.
func RequireSeller(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil || !user.IsSeller() {
		apperr.Respond(c, apperr.Forbidden("Access denied. You are not a seller."))
		return
	}
	c.Next()
}

// CurrentUser returns the user loaded by Authenticate, or nil.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
