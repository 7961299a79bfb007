// controllers/loyalty.go
package controllers

import (
	"errors"
	"net/http"

	"spabook-backend/config"
	"spabook-backend/models"
	"spabook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AddLoyaltyPointsInput defines the admin payload for a manual point grant
type AddLoyaltyPointsInput struct {
	Points int    `json:"points" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// GetMyLoyalty returns the caller's loyalty account; users who never earned
// points get the default bronze state.
func GetMyLoyalty(c *gin.Context) {
	userID, ok := callerUUID(c)
	if !ok {
		return
	}

	var loyalty models.Loyalty
	if err := config.DB.Where("user_id = ?", userID).First(&loyalty).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.Loyalty{
				UserID: userID,
				Points: 0,
				Rank:   models.LoyaltyRankBronze,
			})
			return
		}
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, loyalty)
}

// GetMyLoyaltyHistory returns the caller's point ledger, newest first
func GetMyLoyaltyHistory(c *gin.Context) {
	userID, ok := callerUUID(c)
	if !ok {
		return
	}

	var history []models.LoyaltyHistory
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&history).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve loyalty history")
		return
	}

	c.JSON(http.StatusOK, history)
}

// AddLoyaltyPoints grants points to a user (admin). Unlike the booking
// completion trigger, validation errors here propagate to the caller.
func AddLoyaltyPoints(c *gin.Context) {
	userUUID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var user models.User
	if err := config.DB.Where("id = ?", userUUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "User not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input AddLoyaltyPointsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if err := bookingService.AddLoyaltyPoints(userUUID, input.Points, input.Reason); err != nil {
		respondServiceError(c, err)
		return
	}

	var loyalty models.Loyalty
	if err := config.DB.Where("user_id = ?", userUUID).First(&loyalty).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, loyalty)
}
