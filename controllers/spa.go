// controllers/spa.go
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

// CreateSpaInput defines the expected JSON structure for registering a spa
type CreateSpaInput struct {
	Name         string       `json:"name" binding:"required"`
	Address      string       `json:"address"`
	Phone        string       `json:"phone"`
	Description  string       `json:"description"`
	OpeningHours models.JSONB `json:"openingHours"`
}

// ApproveSpaInput defines the admin approval payload
type ApproveSpaInput struct {
	Approved *bool `json:"approved" binding:"required"`
}

// CreateSpa registers a new spa for the authenticated owner. Spas start
// unapproved and take no bookings until an admin approves them.
func CreateSpa(c *gin.Context) {
	ownerID, ok := callerUUID(c)
	if !ok {
		return
	}

	var input CreateSpaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	spa := models.Spa{
		OwnerID:      ownerID,
		Name:         input.Name,
		Address:      input.Address,
		Phone:        input.Phone,
		Description:  input.Description,
		OpeningHours: input.OpeningHours,
		IsApproved:   false,
	}
	if spa.OpeningHours == nil {
		spa.OpeningHours = models.JSONB{}
	}

	if err := config.DB.Create(&spa).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create spa")
		return
	}

	c.JSON(http.StatusCreated, spa)
}

// GetSpas lists approved spas
func GetSpas(c *gin.Context) {
	var spas []models.Spa
	if err := config.DB.Preload("Services", "is_active = ?", true).
		Where("is_approved = ?", true).
		Find(&spas).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve spas")
		return
	}

	c.JSON(http.StatusOK, spas)
}

// GetMySpas lists the authenticated owner's spas, approved or not
func GetMySpas(c *gin.Context) {
	ownerID, ok := callerUUID(c)
	if !ok {
		return
	}

	var spas []models.Spa
	if err := config.DB.Where("owner_id = ?", ownerID).Find(&spas).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve spas")
		return
	}

	c.JSON(http.StatusOK, spas)
}

// GetSpa retrieves a specific spa by ID
func GetSpa(c *gin.Context) {
	spaUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid spa ID format")
		return
	}

	var spa models.Spa
	if err := config.DB.Preload("Services").Preload("Staff").
		Where("id = ?", spaUUID).
		First(&spa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Spa not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, spa)
}

// ApproveSpa sets the spa's approval flag (admin)
func ApproveSpa(c *gin.Context) {
	spaUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid spa ID format")
		return
	}

	var input ApproveSpaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var spa models.Spa
	if err := config.DB.Where("id = ?", spaUUID).First(&spa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Spa not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if err := config.DB.Model(&spa).Update("is_approved", *input.Approved).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update spa")
		return
	}

	c.JSON(http.StatusOK, spa)
}
