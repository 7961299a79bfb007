// controllers/coupon.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"spabook-backend/config"
	"spabook-backend/models"
	"spabook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCouponInput defines the expected JSON structure for creating a coupon
type CreateCouponInput struct {
	Code            string  `json:"code" binding:"required"`
	Description     string  `json:"description"`
	DiscountPercent float64 `json:"discountPercent" binding:"required,gt=0,lte=100"`
	ExpiresAt       *string `json:"expiresAt"`
	MaxRedemptions  int     `json:"maxRedemptions" binding:"min=0"`
}

// UpdateCouponInput defines the expected JSON structure for updating a coupon
type UpdateCouponInput struct {
	Description     *string  `json:"description"`
	DiscountPercent *float64 `json:"discountPercent" binding:"omitempty,gt=0,lte=100"`
	IsActive        *bool    `json:"isActive"`
	ExpiresAt       *string  `json:"expiresAt"`
	MaxRedemptions  *int     `json:"maxRedemptions" binding:"omitempty,min=0"`
}

// CreateCoupon creates a platform coupon (admin)
func CreateCoupon(c *gin.Context) {
	var input CreateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.Coupon
	if err := config.DB.Where("code = ?", input.Code).First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Coupon with this code already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	coupon := models.Coupon{
		Code:            input.Code,
		Description:     input.Description,
		DiscountPercent: input.DiscountPercent,
		IsActive:        true,
		MaxRedemptions:  input.MaxRedemptions,
	}

	if input.ExpiresAt != nil {
		expiresAt, err := time.Parse(time.RFC3339, *input.ExpiresAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid expiresAt, expected ISO 8601")
			return
		}
		coupon.ExpiresAt = &expiresAt
	}

	if err := config.DB.Create(&coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create coupon")
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

// GetCoupons lists all coupons (admin)
func GetCoupons(c *gin.Context) {
	var coupons []models.Coupon
	if err := config.DB.Order("created_at DESC").Find(&coupons).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve coupons")
		return
	}

	c.JSON(http.StatusOK, coupons)
}

// UpdateCoupon updates a coupon. The redemption counter is never writable
// through this endpoint.
func UpdateCoupon(c *gin.Context) {
	couponUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid coupon ID format")
		return
	}

	var coupon models.Coupon
	if err := config.DB.Where("id = ?", couponUUID).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input UpdateCouponInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Description != nil {
		coupon.Description = *input.Description
	}
	if input.DiscountPercent != nil {
		coupon.DiscountPercent = *input.DiscountPercent
	}
	if input.IsActive != nil {
		coupon.IsActive = *input.IsActive
	}
	if input.ExpiresAt != nil {
		expiresAt, err := time.Parse(time.RFC3339, *input.ExpiresAt)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid expiresAt, expected ISO 8601")
			return
		}
		coupon.ExpiresAt = &expiresAt
	}
	if input.MaxRedemptions != nil {
		coupon.MaxRedemptions = *input.MaxRedemptions
	}

	if err := config.DB.Save(&coupon).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update coupon")
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// DeleteCoupon soft deletes a coupon
func DeleteCoupon(c *gin.Context) {
	couponUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid coupon ID format")
		return
	}

	result := config.DB.Where("id = ?", couponUUID).Delete(&models.Coupon{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete coupon")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Coupon not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Coupon deleted successfully"})
}
