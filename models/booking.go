package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCompleted = "COMPLETED"
	BookingStatusCancelled = "CANCELLED"
)

type Booking struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SpaID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"spaId"`
	ServiceID  uuid.UUID  `gorm:"type:uuid;index;not null" json:"serviceId"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	StaffID    *uuid.UUID `gorm:"type:uuid;index" json:"staffId"`

	ScheduledAt time.Time `gorm:"not null" json:"scheduledAt"`
	// Set only while a customer reschedule request awaits the owner's decision.
	RequestedScheduledAt *time.Time `json:"requestedScheduledAt"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`

	TotalPrice       float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	FinalPrice       float64 `gorm:"type:decimal(10,2);not null" json:"finalPrice"`
	CommissionAmount float64 `gorm:"type:decimal(10,2);default:0.0" json:"commissionAmount"`
	CouponCode       *string `json:"couponCode"`

	Spa      Spa     `gorm:"foreignKey:SpaID" json:"spa,omitempty"`
	Service  Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Customer User    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Staff    *Staff  `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
	Payment  Payment `gorm:"foreignKey:BookingID" json:"payment,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
