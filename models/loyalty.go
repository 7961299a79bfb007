package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	LoyaltyRankBronze   = "BRONZE"
	LoyaltyRankSilver   = "SILVER"
	LoyaltyRankGold     = "GOLD"
	LoyaltyRankPlatinum = "PLATINUM"
)

type Loyalty struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"userId"`
	Points int       `gorm:"default:0" json:"points"`
	Rank   string    `gorm:"type:varchar(20);not null;default:'BRONZE'" json:"rank"`

	gorm.Model `json:"-"`
}

func (l *Loyalty) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// LoyaltyHistory is an append-only ledger of point deltas.
type LoyaltyHistory struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Points int       `gorm:"not null" json:"points"`
	Reason string    `gorm:"not null" json:"reason"`

	gorm.Model `json:"-"`
}

func (h *LoyaltyHistory) BeforeCreate(tx *gorm.DB) (err error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return
}
