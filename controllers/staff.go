// controllers/staff.go
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

// CreateStaffInput defines the expected JSON structure for adding staff
type CreateStaffInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// UpdateStaffInput defines the expected JSON structure for updating staff
type UpdateStaffInput struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	IsActive *bool   `json:"isActive"`
}

// ShiftInput defines one weekly shift: a time window plus its weekdays
type ShiftInput struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Weekdays  []int  `json:"weekdays" binding:"required,min=1,dive,min=0,max=6"`
}

// UpdateShiftsInput replaces the staff member's whole shift set
type UpdateShiftsInput struct {
	Shifts []ShiftInput `json:"shifts" binding:"required"`
}

// TimeOffInput defines the expected JSON structure for a time-off window
type TimeOffInput struct {
	StartAt string `json:"startAt" binding:"required"`
	EndAt   string `json:"endAt" binding:"required"`
	Reason  string `json:"reason"`
}

// ownedStaff loads a staff member and verifies the caller owns their spa
func ownedStaff(c *gin.Context, staffID uuid.UUID) (*models.Staff, bool) {
	var staff models.Staff
	if err := config.DB.Where("id = ?", staffID).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Staff member not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	if _, ok := ownedSpa(c, staff.SpaID); !ok {
		return nil, false
	}

	return &staff, true
}

// CreateStaff adds a staff member to a spa
func CreateStaff(c *gin.Context) {
	spaUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid spa ID format")
		return
	}

	spa, ok := ownedSpa(c, spaUUID)
	if !ok {
		return
	}

	var input CreateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	staff := models.Staff{
		SpaID:    spa.ID,
		Name:     input.Name,
		Phone:    input.Phone,
		IsActive: true,
	}

	if err := config.DB.Create(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create staff member")
		return
	}

	c.JSON(http.StatusCreated, staff)
}

// GetSpaStaff lists the staff of a spa with shifts and time off
func GetSpaStaff(c *gin.Context) {
	spaUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid spa ID format")
		return
	}

	var staff []models.Staff
	if err := config.DB.Preload("Shifts.ShiftDays").Preload("TimeOff").
		Where("spa_id = ?", spaUUID).
		Order("created_at").
		Find(&staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve staff")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// UpdateStaff updates a staff member
func UpdateStaff(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	staff, ok := ownedStaff(c, staffUUID)
	if !ok {
		return
	}

	var input UpdateStaffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Name != nil {
		staff.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		staff.Phone = *input.Phone
	}
	if input.IsActive != nil {
		staff.IsActive = *input.IsActive
	}

	if err := config.DB.Save(staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update staff member")
		return
	}

	c.JSON(http.StatusOK, staff)
}

// DeleteStaff soft deletes a staff member
func DeleteStaff(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	staff, ok := ownedStaff(c, staffUUID)
	if !ok {
		return
	}

	if err := config.DB.Delete(staff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete staff member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Staff member deleted successfully"})
}

// UpdateStaffShifts replaces the staff member's shift set in one transaction
func UpdateStaffShifts(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	staff, ok := ownedStaff(c, staffUUID)
	if !ok {
		return
	}

	var input UpdateShiftsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	for _, shift := range input.Shifts {
		if !utils.ValidateShiftTime(shift.StartTime) || !utils.ValidateShiftTime(shift.EndTime) {
			utils.RespondWithError(c, http.StatusBadRequest, "Shift times must be HH:MM or HH:MM:SS")
			return
		}
		if shift.StartTime >= shift.EndTime {
			utils.RespondWithError(c, http.StatusBadRequest, "Shift start must be before its end (no overnight shifts)")
			return
		}
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		var shiftIDs []uuid.UUID
		if err := tx.Model(&models.Shift{}).Where("staff_id = ?", staff.ID).
			Pluck("id", &shiftIDs).Error; err != nil {
			return err
		}
		if len(shiftIDs) > 0 {
			if err := tx.Where("shift_id IN ?", shiftIDs).Delete(&models.ShiftDay{}).Error; err != nil {
				return err
			}
			if err := tx.Where("staff_id = ?", staff.ID).Delete(&models.Shift{}).Error; err != nil {
				return err
			}
		}

		for _, in := range input.Shifts {
			shift := models.Shift{
				StaffID:   staff.ID,
				StartTime: normalizeShiftTime(in.StartTime),
				EndTime:   normalizeShiftTime(in.EndTime),
			}
			if err := tx.Create(&shift).Error; err != nil {
				return err
			}
			for _, weekday := range in.Weekdays {
				day := models.ShiftDay{ShiftID: shift.ID, Weekday: weekday}
				if err := tx.Create(&day).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update shifts")
		return
	}

	var updated models.Staff
	if err := config.DB.Preload("Shifts.ShiftDays").Where("id = ?", staff.ID).First(&updated).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func normalizeShiftTime(t string) string {
	if len(t) == 5 {
		return t + ":00"
	}
	return t
}

// CreateTimeOff adds a time-off window for a staff member
func CreateTimeOff(c *gin.Context) {
	staffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid staff ID format")
		return
	}

	staff, ok := ownedStaff(c, staffUUID)
	if !ok {
		return
	}

	var input TimeOffInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	startAt, err := time.Parse(time.RFC3339, input.StartAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid startAt, expected ISO 8601")
		return
	}
	endAt, err := time.Parse(time.RFC3339, input.EndAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid endAt, expected ISO 8601")
		return
	}
	if endAt.Before(startAt) {
		utils.RespondWithError(c, http.StatusBadRequest, "endAt must not be before startAt")
		return
	}

	timeOff := models.TimeOff{
		StaffID: staff.ID,
		StartAt: startAt,
		EndAt:   endAt,
		Reason:  input.Reason,
	}

	if err := config.DB.Create(&timeOff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create time off")
		return
	}

	c.JSON(http.StatusCreated, timeOff)
}

// DeleteTimeOff removes a time-off window
func DeleteTimeOff(c *gin.Context) {
	timeOffUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid time off ID format")
		return
	}

	var timeOff models.TimeOff
	if err := config.DB.Where("id = ?", timeOffUUID).First(&timeOff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Time off not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if _, ok := ownedStaff(c, timeOff.StaffID); !ok {
		return
	}

	if err := config.DB.Delete(&timeOff).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete time off")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time off deleted successfully"})
}
