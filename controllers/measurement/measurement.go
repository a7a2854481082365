package measurementControllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/jewelry-api/app"
	"github.com/junaidrashid-git/jewelry-api/apperr"
	"github.com/junaidrashid-git/jewelry-api/controllers/params"
	"github.com/junaidrashid-git/jewelry-api/middleware"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/junaidrashid-git/jewelry-api/presenters"
	"github.com/junaidrashid-git/jewelry-api/sizing"
)

type MeasurementInput struct {
	Type    string        `json:"type"`
	ValueMm params.Number `json:"valueMm"`
}

// bind reads and checks a measurement body.
func bind(c *gin.Context) (MeasurementInput, sizing.Type, error) {
	var input MeasurementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		return input, "", apperr.Validation("valueMm must be a number.")
	}
	if input.Type == "" || !input.ValueMm.Set {
		return input, "", apperr.Validation("The type and the value in mm are required.")
	}
	t, err := sizing.ParseType(input.Type)
	if err != nil {
		return input, "", apperr.Validation("The type must be 'ring' or 'bracelet'.")
	}
	return input, t, nil
}

// POST /api/measurements
func SaveMeasurement(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		input, t, err := bind(c)
		if err != nil {
			apperr.Respond(c, err)
			return
		}

		m := models.Measurement{
			UserID:  user.ID,
			Type:    string(t),
			ValueMm: input.ValueMm.Value,
		}
		if err := d.DB.WithContext(c.Request.Context()).Create(&m).Error; err != nil {
			apperr.Respond(c, apperr.Internal("Error while saving the measurement.", err))
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":     "Measurement saved successfully",
			"measurement": presenters.NewMeasurement(m),
		})
	}
}

// POST /api/measurements/calculate
func CalculateStandardSize(c *gin.Context) {
	input, t, err := bind(c)
	if err != nil {
		apperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Standard size calculated",
		"originalValue": json.RawMessage(input.ValueMm.Raw),
		"type":          t,
		"standardSize":  sizing.Standardize(t, input.ValueMm.Value),
	})
}

// GET /api/measurements
func ListMeasurements(d *app.Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var ms []models.Measurement
		err := d.DB.WithContext(c.Request.Context()).
			Where("user_id = ?", user.ID).
			Order("created_at DESC").
			Find(&ms).Error
		if err != nil {
			apperr.Respond(c, apperr.Internal("Error while retrieving measurements.", err))
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "Measurements retrieved successfully",
			"count":        len(ms),
			"measurements": presenters.NewMeasurements(ms),
		})
	}
}
