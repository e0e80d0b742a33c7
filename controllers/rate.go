// controllers/rate.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"jewelbill-backend/config"
	"jewelbill-backend/models"
	"jewelbill-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UpdateRateInput defines the JSON body for upserting a day's metal rates
type UpdateRateInput struct {
	Date              string          `json:"date"`
	GoldRatePerGram   decimal.Decimal `json:"goldRatePerGram"`
	SilverRatePerGram decimal.Decimal `json:"silverRatePerGram"`
	EnteredManually   bool            `json:"enteredManually"`
}

// GetRate returns the rate record for the requested date (today UTC when no
// date is given). A date with no record yields a JSON null, matching what
// the rate form expects.
func GetRate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = utils.ISODate(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	var rate models.Rate
	if err := config.DB.Where("date = ?", date).First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, nil)
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, rate)
}

// UpdateRate upserts the rate record keyed by calendar date
func UpdateRate(c *gin.Context) {
	var input UpdateRateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date := input.Date
	if date == "" {
		date = utils.ISODate(time.Now())
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	if input.GoldRatePerGram.IsNegative() || input.SilverRatePerGram.IsNegative() {
		utils.RespondWithError(c, http.StatusBadRequest, "Rates cannot be negative")
		return
	}

	rate := models.Rate{
		Date:              date,
		GoldRatePerGram:   input.GoldRatePerGram,
		SilverRatePerGram: input.SilverRatePerGram,
		EnteredManually:   input.EnteredManually,
	}

	if err := config.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"gold_rate_per_gram", "silver_rate_per_gram", "entered_manually", "updated_at",
		}),
	}).Create(&rate).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to save rate")
		return
	}

	// Re-read so the response carries the stored row (id of the original
	// record when this was an update)
	var stored models.Rate
	if err := config.DB.Where("date = ?", date).First(&stored).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, stored)
}
