package services

import (
	"errors"
	"fmt"
	"time"

	"spabook-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IsStaffAvailable reports whether a staff member can take a booking at t.
// The staff must have a shift covering t's weekday and time of day, and must
// not be on time off. Shift hours are a half-open interval: a booking exactly
// at the shift's end time is rejected. Time-off windows are inclusive on both
// ends. Requires Shifts.ShiftDays and TimeOff to be loaded.
func IsStaffAvailable(staff models.Staff, t time.Time) bool {
	if len(staff.Shifts) == 0 {
		return false
	}

	weekday := int(t.Weekday())
	bookingTime := t.Format("15:04")

	hasShift := false
	for _, shift := range staff.Shifts {
		if len(shift.ShiftDays) == 0 {
			continue
		}
		onDay := false
		for _, day := range shift.ShiftDays {
			if day.Weekday == weekday {
				onDay = true
				break
			}
		}
		if !onDay {
			continue
		}

		// Shift boundaries are "HH:MM:SS", compared at minute precision
		if bookingTime >= clock(shift.StartTime) && bookingTime < clock(shift.EndTime) {
			hasShift = true
			break
		}
	}
	if !hasShift {
		return false
	}

	for _, off := range staff.TimeOff {
		if !t.Before(off.StartAt) && !t.After(off.EndAt) {
			return false
		}
	}

	return true
}

func clock(v string) string {
	if len(v) >= 5 {
		return v[:5]
	}
	return v
}

// SelectStaff resolves the staff member for a booking at t. An explicit
// staffID must belong to the spa, be active and pass the availability check.
// Without an explicit id, active staff are scanned in listing order and the
// first available one is assigned; nil means the booking proceeds unassigned.
func SelectStaff(tx *gorm.DB, spaID uuid.UUID, staffID *uuid.UUID, t time.Time) (*models.Staff, error) {
	if staffID != nil {
		var staff models.Staff
		err := tx.Preload("Shifts.ShiftDays").Preload("TimeOff").
			Where("spa_id = ? AND id = ? AND is_active = ?", spaID, *staffID, true).
			First(&staff).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: staff member not available", ErrNotFound)
			}
			return nil, err
		}
		if !IsStaffAvailable(staff, t) {
			return nil, fmt.Errorf("%w: staff member is not available at this time", ErrNotFound)
		}
		return &staff, nil
	}

	var allStaff []models.Staff
	if err := tx.Preload("Shifts.ShiftDays").Preload("TimeOff").
		Where("spa_id = ? AND is_active = ?", spaID, true).
		Order("created_at").
		Find(&allStaff).Error; err != nil {
		return nil, err
	}

	for i := range allStaff {
		if IsStaffAvailable(allStaff[i], t) {
			return &allStaff[i], nil
		}
	}
	return nil, nil
}
