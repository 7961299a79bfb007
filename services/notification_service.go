// services/notification_service.go
package services

import (
	"log"
	"os"
	"strings"
	"time"

	"spabook-backend/models"

	"github.com/google/uuid"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// Notifier is the narrow sink the booking service dispatches through.
// Implementations may fail; callers treat failure as non-fatal.
type Notifier interface {
	Send(userID uuid.UUID, message string, meta models.JSONB) error
}

type NotificationService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &NotificationService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

// Send delivers a message to the user and records the attempt. WhatsApp is
// used for E.164 numbers, SMS otherwise; users without a phone number get a
// stored in-app notification only.
func (s *NotificationService) Send(userID uuid.UUID, message string, meta models.JSONB) error {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return err
	}

	if meta == nil {
		meta = models.JSONB{}
	}

	if user.Phone == "" {
		return s.logNotification(userID, "push", message, meta, "sent", "")
	}

	channel := "sms"
	to := user.Phone
	if strings.HasPrefix(user.Phone, "+") {
		to = "whatsapp:" + user.Phone
		channel = "whatsapp"
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(message)
	if channel == "whatsapp" {
		params.SetFrom("whatsapp:" + os.Getenv("TWILIO_WHATSAPP_NUMBER"))
	} else {
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
	}

	resp, sendErr := s.client.Api.CreateMessage(params)
	status := "sent"
	errorMsg := ""
	if sendErr != nil {
		log.Printf("Failed to send message to %s: %v", user.Phone, sendErr)
		status = "failed"
		errorMsg = sendErr.Error()
	} else if resp.Sid != nil {
		log.Printf("Message sent to %s, SID: %s", user.Phone, *resp.Sid)
	}

	if err := s.logNotification(userID, channel, message, meta, status, errorMsg); err != nil {
		log.Printf("Failed to log notification for user %s: %v", userID, err)
	}

	return sendErr
}

func (s *NotificationService) logNotification(userID uuid.UUID, channel, message string, meta models.JSONB, status, errorMsg string) error {
	notification := models.Notification{
		UserID:       userID,
		Channel:      channel,
		Message:      message,
		Meta:         meta,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	return s.db.Create(&notification).Error
}
