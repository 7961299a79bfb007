package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Coupon struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Code            string     `gorm:"uniqueIndex;not null" json:"code"`
	Description     string     `json:"description"`
	DiscountPercent float64    `gorm:"type:decimal(5,2);not null" json:"discountPercent"`
	IsActive        bool       `gorm:"default:true" json:"isActive"`
	ExpiresAt       *time.Time `json:"expiresAt"`

	// MaxRedemptions of 0 means unlimited. CurrentRedemptions only ever grows
	// and is incremented inside the booking transaction that consumes the code.
	MaxRedemptions     int `gorm:"default:0" json:"maxRedemptions"`
	CurrentRedemptions int `gorm:"default:0" json:"currentRedemptions"`

	gorm.Model `json:"-"`
}

func (c *Coupon) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}
