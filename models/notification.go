// models/notification.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Channel      string    `gorm:"type:varchar(20)" json:"channel"` // whatsapp, sms, push
	Message      string    `gorm:"type:text" json:"message"`
	Meta         JSONB     `gorm:"type:jsonb;default:'{}'" json:"meta"`
	Status       string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMessage string    `gorm:"type:text" json:"-"`
	SentAt       time.Time `json:"sentAt"`

	gorm.Model `json:"-"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
