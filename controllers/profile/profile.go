package profileControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/presenters"
	"github.com/junaidrashid-git/jewelry-api/validation"
	"gorm.io/gorm"
)

type UpdateProfileInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// GET /api/profile
func GetProfile(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		db := d.DB.WithContext(c.Request.Context())

		profile, err := ensureProfile(db, user)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Error while retrieving the profile.", err))
			return
		}
		measurements, err := measurementsOf(db, user.ID)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Error while retrieving the profile.", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile retrieved successfully",
			"user":    presenters.NewUser(*user),
			"profile": presenters.NewProfile(*profile),
			"mesures": presenters.NewMeasurements(measurements),
		})
	}
}

// PUT /api/profile
func UpdateProfile(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation("Invalid data."))
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
			updates["name"] = strings.TrimSpace(*input.Name)
		}
		if input.Email != nil && strings.TrimSpace(*input.Email) != "" {
			email := models.NormalizeEmail(*input.Email)
			if err := validation.Validator().Var(email, "email"); err != nil {
				apperr.Respond(c, apperr.Validation("email must be a valid email address."))
				return
			}
			updates["email"] = email
		}
		if len(updates) == 0 {
			apperr.Respond(c, apperr.Validation("At least one field (name or email) must be provided."))
			return
		}

		db := d.DB.WithContext(c.Request.Context())
		if email, ok := updates["email"]; ok {
			var count int64
			if err := db.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count).Error; err != nil {
				apperr.Respond(c, apperr.Internal("Error while updating the profile.", err))
				return
			}
			if count > 0 {
				apperr.Respond(c, apperr.Validation("This email is already used by another user."))
				return
			}
		}

		var profile *models.Profile
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(user).Updates(updates).Error; err != nil {
				return err
			}
			p, err := ensureProfile(tx, user)
			if err != nil {
				return err
			}
			if err := tx.Model(p).Updates(updates).Error; err != nil {
				return err
			}
			profile = p
			return nil
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			apperr.Respond(c, apperr.Validation("This email is already used by another user."))
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Internal("Error while updating the profile.", err))
			return
		}

		if _, ok := updates["name"]; ok && user.IsSeller() {
			d.Cache.InvalidateSeller(c.Request.Context(), d.DB, user.ID)
		}
		if name, ok := updates["name"].(string); ok {
			user.Name, profile.Name = name, name
		}
		if email, ok := updates["email"].(string); ok {
			user.Email, profile.Email = email, email
		}

		measurements, err := measurementsOf(db, user.ID)
		if err != nil {
			apperr.Respond(c, apperr.Internal("Error while updating the profile.", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user":    presenters.NewUser(*user),
			"profile": presenters.NewProfile(*profile),
			"mesures": presenters.NewMeasurements(measurements),
		})
	}
}

// ensureProfile returns the user's profile, creating it from the user when missing.
func ensureProfile(db *gorm.DB, user *models.User) (*models.Profile, error) {
	profile := models.Profile{UserID: user.ID, Name: user.Name, Email: user.Email}
	err := db.Where(models.Profile{UserID: user.ID}).FirstOrCreate(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func measurementsOf(db *gorm.DB, userID string) ([]models.Measurement, error) {
	var ms []models.Measurement
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&ms).Error
	return ms, err
}
