package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"

	PaymentStatusCompleted = "COMPLETED"
	PaymentStatusRefunded  = "REFUNDED"
)

// Payment is the bookkeeping record written alongside a booking. There is
// no gateway round trip; the record is created as COMPLETED.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"bookingId"`

	Amount float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Method string  `gorm:"type:varchar(20);not null;default:'cash'" json:"method"`
	Status string  `gorm:"type:varchar(20);not null;default:'COMPLETED'" json:"status"`

	CommissionPercent    float64 `gorm:"type:decimal(5,2);not null" json:"commissionPercent"`
	CommissionAmount     float64 `gorm:"type:decimal(10,2);not null" json:"commissionAmount"`
	TransactionReference *string `json:"transactionReference"`

	gorm.Model `json:"-"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
