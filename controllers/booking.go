// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"spabook-backend/config"
	"spabook-backend/models"
	"spabook-backend/services"
	"spabook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var bookingService *services.BookingService

// InitBookingService wires the booking service used by the handlers below.
// Called once from route setup (and from tests with their own database).
func InitBookingService(s *services.BookingService) {
	bookingService = s
}

// CreateBookingInput defines the expected JSON structure for creating a booking
type CreateBookingInput struct {
	SpaID         uuid.UUID  `json:"spaId" binding:"required"`
	ServiceID     uuid.UUID  `json:"serviceId" binding:"required"`
	ScheduledAt   string     `json:"scheduledAt" binding:"required"`
	StaffID       *uuid.UUID `json:"staffId"`
	CouponCode    *string    `json:"couponCode"`
	PaymentMethod string     `json:"paymentMethod" binding:"omitempty,oneof=cash card bank_transfer"`
}

// RescheduleBookingInput defines the expected JSON structure for a reschedule
type RescheduleBookingInput struct {
	ScheduledAt string `json:"scheduledAt" binding:"required"`
}

// RespondRescheduleInput approves or rejects a pending reschedule request
type RespondRescheduleInput struct {
	Approved *bool `json:"approved" binding:"required"`
}

// UpdateBookingStatusInput defines the expected JSON structure for a status change
type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED COMPLETED CANCELLED"`
}

// callerUUID extracts the authenticated user's id from the context
func callerUUID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(userID.(string))
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Invalid user ID format")
		return uuid.Nil, false
	}
	return id, true
}

func callerRole(c *gin.Context) string {
	role, _ := c.Get("role")
	if r, ok := role.(string); ok {
		return r
	}
	return ""
}

// respondServiceError maps booking service errors onto HTTP status codes
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.RespondWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.RespondWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrBadRequest),
		errors.Is(err, services.ErrInvalidCoupon),
		errors.Is(err, services.ErrCouponExpired),
		errors.Is(err, services.ErrCouponLimitReached):
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
	default:
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
	}
}

// CreateBooking books a service for the authenticated customer
func CreateBooking(c *gin.Context) {
	customerID, ok := callerUUID(c)
	if !ok {
		return
	}

	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, input.ScheduledAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid scheduledAt, expected ISO 8601 (e.g. 2023-01-01T10:00:00Z)")
		return
	}

	booking, err := bookingService.Create(services.CreateBookingInput{
		SpaID:         input.SpaID,
		ServiceID:     input.ServiceID,
		CustomerID:    customerID,
		ScheduledAt:   scheduledAt,
		StaffID:       input.StaffID,
		CouponCode:    input.CouponCode,
		PaymentMethod: input.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// GetBookings retrieves all bookings, newest first (admin)
func GetBookings(c *gin.Context) {
	var bookings []models.Booking
	if err := config.DB.Preload("Spa").Preload("Service").Preload("Customer").Preload("Staff").
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetMyBookings retrieves the authenticated user's bookings
func GetMyBookings(c *gin.Context) {
	customerID, ok := callerUUID(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := config.DB.Preload("Spa").Preload("Service").Preload("Staff").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetOwnerBookings retrieves bookings across the owner's spas
func GetOwnerBookings(c *gin.Context) {
	ownerID, ok := callerUUID(c)
	if !ok {
		return
	}

	var bookings []models.Booking
	if err := config.DB.Preload("Spa").Preload("Service").Preload("Customer").Preload("Staff").
		Joins("JOIN spas ON spas.id = bookings.spa_id").
		Where("spas.owner_id = ?", ownerID).
		Order("bookings.scheduled_at DESC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetAvailableStaff lists staff of a spa who can take a booking at the given time
func GetAvailableStaff(c *gin.Context) {
	spaUUID, err := uuid.Parse(c.Param("spaId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid spa ID format")
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, c.Query("scheduledAt"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid scheduledAt, expected ISO 8601")
		return
	}

	staff, err := bookingService.GetAvailableStaff(spaUUID, scheduledAt)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, staff)
}

// GetBooking retrieves a specific booking by ID
func GetBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Spa").Preload("Service").Preload("Customer").Preload("Staff").Preload("Payment").
		Where("id = ?", bookingUUID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// RescheduleBooking moves a booking to a new time. Customers create a
// pending request; owners and admins reschedule directly.
func RescheduleBooking(c *gin.Context) {
	actorID, ok := callerUUID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input RescheduleBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	newTime, err := time.Parse(time.RFC3339, input.ScheduledAt)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid scheduledAt, expected ISO 8601 (e.g. 2023-01-01T10:00:00Z)")
		return
	}

	booking, err := bookingService.Reschedule(bookingUUID, newTime, services.Actor{
		ID:   actorID,
		Role: callerRole(c),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// RespondToReschedule lets the spa owner approve or reject a pending request
func RespondToReschedule(c *gin.Context) {
	ownerID, ok := callerUUID(c)
	if !ok {
		return
	}

	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input RespondRescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bookingService.RespondToReschedule(bookingUUID, *input.Approved, ownerID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// CancelBooking marks a booking cancelled
func CancelBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	booking, err := bookingService.Cancel(bookingUUID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus overwrites the booking status (owner/admin)
func UpdateBookingStatus(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	booking, err := bookingService.UpdateStatus(bookingUUID, input.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}
