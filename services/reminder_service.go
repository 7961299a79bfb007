// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"time"

	"spabook-backend/models"
	"spabook-backend/utils"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ReminderService notifies customers about their next-day bookings.
type ReminderService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewReminderService(db *gorm.DB, notifier Notifier) *ReminderService {
	return &ReminderService{db: db, notifier: notifier}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendBookingReminders()
	})

	c.Start()
	log.Println("Booking reminder scheduler started")
}

// SendBookingReminders notifies every customer with a confirmed booking
// scheduled for tomorrow. Send failures are logged per booking and do not
// stop the run.
func (s *ReminderService) SendBookingReminders() {
	log.Println("Starting daily booking reminder processing...")

	start := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	end := start.AddDate(0, 0, 1)

	var bookings []models.Booking
	if err := s.db.Preload("Spa").Preload("Service").
		Where("status = ? AND scheduled_at >= ? AND scheduled_at < ?", models.BookingStatusConfirmed, start, end).
		Find(&bookings).Error; err != nil {
		log.Printf("Failed to fetch bookings for reminders: %v", err)
		return
	}

	for _, booking := range bookings {
		message := fmt.Sprintf("Reminder: your %s appointment at %s is tomorrow at %s.",
			booking.Service.Name, booking.Spa.Name, booking.ScheduledAt.Format("15:04"))

		if err := s.notifier.Send(booking.CustomerID, message, models.JSONB{
			"bookingId": booking.ID.String(),
			"type":      "reminder",
		}); err != nil {
			log.Printf("Failed to send reminder for booking %s: %v", booking.ID, err)
		}
	}

	log.Printf("Daily booking reminder processing completed, %d bookings", len(bookings))
}
