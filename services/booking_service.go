// services/booking_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"spabook-backend/metrics"
	"spabook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompletionRewardPoints is awarded to the customer once per completed booking.
const CompletionRewardPoints = 10

// Actor identifies who is performing a lifecycle operation. The role is
// taken from the verified JWT, never inferred from id comparisons.
type Actor struct {
	ID   uuid.UUID
	Role string
}

type CreateBookingInput struct {
	SpaID         uuid.UUID
	ServiceID     uuid.UUID
	CustomerID    uuid.UUID
	ScheduledAt   time.Time
	StaffID       *uuid.UUID
	CouponCode    *string
	PaymentMethod string
}

type BookingService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewBookingService(db *gorm.DB, notifier Notifier) *BookingService {
	return &BookingService{db: db, notifier: notifier}
}

// Create books a service as one atomic transaction: spa/service/customer
// lookups, staff selection, coupon redemption, booking and payment rows all
// commit or roll back together. The customer notification goes out only
// after the commit and never fails the booking.
func (s *BookingService) Create(input CreateBookingInput) (*models.Booking, error) {
	var booking models.Booking

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var spa models.Spa
		if err := tx.Where("id = ? AND is_approved = ?", input.SpaID, true).First(&spa).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: spa not found or not approved", ErrNotFound)
			}
			return err
		}

		var service models.Service
		if err := tx.Where("id = ? AND spa_id = ?", input.ServiceID, spa.ID).First(&service).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: service not found for spa", ErrNotFound)
			}
			return err
		}

		var customer models.User
		if err := tx.Where("id = ?", input.CustomerID).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: customer not found", ErrNotFound)
			}
			return err
		}

		staff, err := SelectStaff(tx, spa.ID, input.StaffID, input.ScheduledAt)
		if err != nil {
			return err
		}

		servicePrice := service.Price
		discountPercent := 0.0
		if input.CouponCode != nil && *input.CouponCode != "" {
			discountPercent, err = redeemCoupon(tx, *input.CouponCode)
			if err != nil {
				return err
			}
		}

		finalPrice := ApplyDiscount(servicePrice, discountPercent)
		rate := CommissionRate(tx)
		commissionAmount := Round2(finalPrice * rate / 100)

		booking = models.Booking{
			SpaID:            spa.ID,
			ServiceID:        service.ID,
			CustomerID:       customer.ID,
			ScheduledAt:      input.ScheduledAt,
			Status:           models.BookingStatusPending,
			CouponCode:       input.CouponCode,
			TotalPrice:       Round2(servicePrice),
			FinalPrice:       finalPrice,
			CommissionAmount: commissionAmount,
		}
		if staff != nil {
			booking.StaffID = &staff.ID
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("create booking: %w", err)
		}

		method := input.PaymentMethod
		if method == "" {
			method = models.PaymentMethodCash
		}

		// Transaction reference only for non-cash methods
		var transactionReference *string
		if method != models.PaymentMethodCash {
			ref := fmt.Sprintf("TXN-%s-%d", booking.ID, time.Now().UnixMilli())
			transactionReference = &ref
		}

		payment := models.Payment{
			BookingID:            booking.ID,
			Amount:               finalPrice,
			Method:               method,
			Status:               models.PaymentStatusCompleted,
			CommissionPercent:    rate,
			CommissionAmount:     commissionAmount,
			TransactionReference: transactionReference,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("create payment: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCreated.Inc()
	if booking.CouponCode != nil && *booking.CouponCode != "" {
		metrics.CouponRedemptions.Inc()
	}

	s.dispatch(booking.CustomerID,
		fmt.Sprintf("Your booking for %s is received and awaiting confirmation.", booking.ScheduledAt.Format("2006-01-02 15:04")),
		models.JSONB{"bookingId": booking.ID.String(), "status": booking.Status})

	if err := s.db.Preload("Spa").Preload("Service").Preload("Customer").Preload("Staff").
		First(&booking, "id = ?", booking.ID).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// Reschedule moves a booking to a new time. Customers only create a pending
// request that the spa owner must approve; owners and admins reschedule
// directly and clear any pending request.
func (s *BookingService) Reschedule(bookingID uuid.UUID, newTime time.Time, actor Actor) (*models.Booking, error) {
	if !newTime.After(time.Now()) {
		return nil, fmt.Errorf("%w: new booking time must be in the future", ErrBadRequest)
	}

	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", bookingID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking not found", ErrNotFound)
			}
			return err
		}

		if actor.Role == models.RoleCustomer {
			booking.RequestedScheduledAt = &newTime
		} else {
			booking.ScheduledAt = newTime
			booking.RequestedScheduledAt = nil
		}

		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// RespondToReschedule lets the spa owner approve or reject a pending
// reschedule request. Rejection keeps the original time; both outcomes clear
// the request.
func (s *BookingService) RespondToReschedule(bookingID uuid.UUID, approved bool, ownerID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", bookingID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking not found", ErrNotFound)
			}
			return err
		}

		var spa models.Spa
		if err := tx.Where("id = ?", booking.SpaID).First(&spa).Error; err != nil {
			return err
		}
		if spa.OwnerID != ownerID {
			return fmt.Errorf("%w: you can only respond to reschedule requests for your own spa bookings", ErrForbidden)
		}

		if booking.RequestedScheduledAt == nil {
			return fmt.Errorf("%w: this booking does not have a pending reschedule request", ErrBadRequest)
		}

		if approved {
			booking.ScheduledAt = *booking.RequestedScheduledAt
		}
		booking.RequestedScheduledAt = nil

		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	message := "Your reschedule request was rejected. The original booking time is unchanged."
	if approved {
		message = "Your reschedule request was approved."
	}
	s.dispatch(booking.CustomerID, message,
		models.JSONB{"bookingId": booking.ID.String(), "approved": approved})

	return &booking, nil
}

// Cancel marks the booking cancelled. Cancellation is a status, not a
// delete, and re-cancelling is a no-op status-wise.
func (s *BookingService) Cancel(bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", bookingID).First(&booking).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: booking not found", ErrNotFound)
			}
			return err
		}

		booking.Status = models.BookingStatusCancelled
		return tx.Save(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	metrics.BookingsCancelled.Inc()
	s.dispatch(booking.CustomerID, "Your booking has been cancelled.",
		models.JSONB{"bookingId": booking.ID.String(), "status": booking.Status})

	return &booking, nil
}

// UpdateStatus overwrites the booking status. Moving into COMPLETED awards
// loyalty points exactly once; repeating the call changes nothing. Loyalty
// and notification failures are logged, never surfaced.
func (s *BookingService) UpdateStatus(bookingID uuid.UUID, newStatus string) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Where("id = ?", bookingID).First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: booking not found", ErrNotFound)
		}
		return nil, err
	}

	oldStatus := booking.Status
	booking.Status = newStatus
	if err := s.db.Save(&booking).Error; err != nil {
		return nil, err
	}

	if newStatus == models.BookingStatusCompleted && oldStatus != models.BookingStatusCompleted {
		metrics.BookingsCompleted.Inc()
		reason := fmt.Sprintf("Booking #%s completed", booking.ID)
		if err := s.AddLoyaltyPoints(booking.CustomerID, CompletionRewardPoints, reason); err != nil {
			log.Printf("Failed to add loyalty points for booking %s: %v", booking.ID, err)
		}
	}

	s.dispatch(booking.CustomerID, statusMessage(newStatus),
		models.JSONB{"bookingId": booking.ID.String(), "status": newStatus})

	return &booking, nil
}

func statusMessage(status string) string {
	switch status {
	case models.BookingStatusConfirmed:
		return "Your booking has been confirmed."
	case models.BookingStatusCompleted:
		return "Your booking is completed. Thank you for your visit!"
	case models.BookingStatusCancelled:
		return "Your booking has been cancelled."
	default:
		return fmt.Sprintf("Your booking status changed to %s.", status)
	}
}

// AddLoyaltyPoints adds points to the customer's loyalty account, creating
// it on first use, recomputes the rank and appends a history entry. Errors
// propagate to the caller; the lifecycle trigger swallows them itself.
func (s *BookingService) AddLoyaltyPoints(userID uuid.UUID, points int, reason string) error {
	if points <= 0 {
		return fmt.Errorf("%w: points must be a positive integer", ErrBadRequest)
	}
	if reason == "" {
		return fmt.Errorf("%w: reason is required", ErrBadRequest)
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var loyalty models.Loyalty
		err := tx.Where("user_id = ?", userID).First(&loyalty).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			loyalty = models.Loyalty{UserID: userID, Points: 0, Rank: models.LoyaltyRankBronze}
		} else if err != nil {
			return err
		}

		loyalty.Points += points
		loyalty.Rank = RankForPoints(loyalty.Points)
		if err := tx.Save(&loyalty).Error; err != nil {
			return fmt.Errorf("save loyalty: %w", err)
		}

		history := models.LoyaltyHistory{
			UserID: userID,
			Points: points,
			Reason: reason,
		}
		return tx.Create(&history).Error
	})
}

// RankForPoints derives the loyalty tier from accumulated points.
func RankForPoints(points int) string {
	switch {
	case points >= 300:
		return models.LoyaltyRankPlatinum
	case points >= 200:
		return models.LoyaltyRankGold
	case points >= 100:
		return models.LoyaltyRankSilver
	default:
		return models.LoyaltyRankBronze
	}
}

// GetAvailableStaff lists the spa's active staff who pass the availability
// check at t.
func (s *BookingService) GetAvailableStaff(spaID uuid.UUID, t time.Time) ([]models.Staff, error) {
	var spa models.Spa
	if err := s.db.Where("id = ?", spaID).First(&spa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: spa not found", ErrNotFound)
		}
		return nil, err
	}

	var allStaff []models.Staff
	if err := s.db.Preload("Shifts.ShiftDays").Preload("TimeOff").
		Where("spa_id = ? AND is_active = ?", spaID, true).
		Order("created_at").
		Find(&allStaff).Error; err != nil {
		return nil, err
	}

	available := make([]models.Staff, 0, len(allStaff))
	for _, staff := range allStaff {
		if IsStaffAvailable(staff, t) {
			available = append(available, staff)
		}
	}
	return available, nil
}

// dispatch sends a best-effort customer notification. Failures are logged
// and swallowed; the primary operation already committed.
func (s *BookingService) dispatch(userID uuid.UUID, message string, meta models.JSONB) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Send(userID, message, meta); err != nil {
		log.Printf("Notification dispatch failed for user %s: %v", userID, err)
	}
}
