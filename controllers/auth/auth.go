package authControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/auth"
	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/presenters"
	"github.com/junaidrashid-git/jewelry-api/validation"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterSellerInput struct {
	RegisterInput
	ShopName    string `json:"shopName"`
	Description string `json:"description"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

var errEmailTaken = apperr.Validation("A user with this email already exists.")

// POST /api/auth/register
func Register(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation(validation.Message(err)))
			return
		}

		user, err := createUser(c, d, input, models.RoleBuyer, models.Boutique{})
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		respondWithToken(c, d, http.StatusCreated, "Registration successful", user)
	}
}

// POST /api/auth/register-seller
func RegisterSeller(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterSellerInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation(validation.Message(err)))
			return
		}
		if strings.TrimSpace(input.ShopName) == "" {
			apperr.Respond(c, apperr.Validation("The shop name (shopName) is required."))
			return
		}

		boutique := models.Boutique{
			ShopName:    strings.TrimSpace(input.ShopName),
			Description: input.Description,
		}
		user, err := createUser(c, d, input.RegisterInput, models.RoleSeller, boutique)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		respondWithToken(c, d, http.StatusCreated, "Seller registration successful", user)
	}
}

// POST /api/auth/login
func Login(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			apperr.Respond(c, apperr.Validation(validation.Message(err)))
			return
		}

		var user models.User
		err := d.DB.WithContext(c.Request.Context()).
			First(&user, "email = ?", models.NormalizeEmail(input.Email)).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apperr.Respond(c, apperr.Unauthorized("Incorrect email or password."))
			return
		}
		if err != nil {
			apperr.Respond(c, apperr.Internal("Error while logging in.", err))
			return
		}
		if !auth.CheckPassword(user.PasswordHash, input.Password) {
			apperr.Respond(c, apperr.Unauthorized("Incorrect email or password."))
			return
		}

		respondWithToken(c, d, http.StatusOK, "Login successful", &user)
	}
}

// GET /api/auth/profile
func Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"user":    presenters.NewUser(*user),
	})
}

// createUser stores the user and its profile in one transaction.
func createUser(c *gin.Context, d *app.Deps, input RegisterInput, role models.Role, boutique models.Boutique) (*models.User, error) {
	db := d.DB.WithContext(c.Request.Context())
	email := models.NormalizeEmail(input.Email)

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, apperr.Internal("Error during registration.", err)
	}
	if count > 0 {
		return nil, errEmailTaken
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal("Error during registration.", err)
	}

	user := models.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Boutique:     boutique,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID, Name: user.Name, Email: user.Email}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errEmailTaken
		}
		return nil, apperr.Internal("Error during registration.", err)
	}

	logger.Info().Str("userId", user.ID).Str("role", string(role)).Msg("user registered")
	return &user, nil
}

func respondWithToken(c *gin.Context, d *app.Deps, status int, message string, user *models.User) {
	token, err := d.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		apperr.Respond(c, apperr.Internal("Failed to issue token.", err))
		return
	}
	c.JSON(status, gin.H{
		"message": message,
		"token":   token,
		"user":    presenters.NewUser(*user),
	})
}
