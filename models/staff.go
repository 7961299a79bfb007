package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Staff struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SpaID    uuid.UUID `gorm:"type:uuid;index;not null" json:"spaId"`
	Name     string    `gorm:"not null" json:"name"`
	Phone    string    `json:"phone"`
	IsActive bool      `gorm:"default:true" json:"isActive"`

	Shifts  []Shift   `gorm:"foreignKey:StaffID" json:"shifts,omitempty"`
	TimeOff []TimeOff `gorm:"foreignKey:StaffID" json:"timeOff,omitempty"`

	gorm.Model `json:"-"`
}

func (s *Staff) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// Shift is a recurring weekly availability window. StartTime and EndTime
// are stored as "HH:MM:SS" strings, same-day ranges only.
type Shift struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StaffID   uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`
	StartTime string    `gorm:"type:varchar(8);not null" json:"startTime"`
	EndTime   string    `gorm:"type:varchar(8);not null" json:"endTime"`

	ShiftDays []ShiftDay `gorm:"foreignKey:ShiftID" json:"shiftDays,omitempty"`

	gorm.Model `json:"-"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// ShiftDay ties a shift to one weekday (0 = Sunday .. 6 = Saturday).
type ShiftDay struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID uuid.UUID `gorm:"type:uuid;index;not null" json:"shiftId"`
	Weekday int       `gorm:"not null" json:"weekday"`

	gorm.Model `json:"-"`
}

func (s *ShiftDay) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// TimeOff removes availability for the inclusive [StartAt, EndAt] window
// regardless of shifts.
type TimeOff struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StaffID uuid.UUID `gorm:"type:uuid;index;not null" json:"staffId"`
	StartAt time.Time `gorm:"not null" json:"startAt"`
	EndAt   time.Time `gorm:"not null" json:"endAt"`
	Reason  string    `json:"reason"`

	gorm.Model `json:"-"`
}

func (t *TimeOff) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
