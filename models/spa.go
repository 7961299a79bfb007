package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Spa struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OwnerID     uuid.UUID `gorm:"type:uuid;index;not null" json:"ownerId"`
	Name        string    `gorm:"not null" json:"name"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Description string    `gorm:"type:text" json:"description"`

	OpeningHours JSONB `gorm:"type:jsonb;default:'{}'" json:"openingHours"`
	IsApproved   bool  `gorm:"default:false;index" json:"isApproved"`

	Owner    User      `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Services []Service `gorm:"foreignKey:SpaID" json:"services,omitempty"`
	Staff    []Staff   `gorm:"foreignKey:SpaID" json:"staff,omitempty"`

	gorm.Model `json:"-"`
}

func (s *Spa) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
