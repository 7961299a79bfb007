package services

import (
	"testing"
	"time"

	"spabook-backend/models"

	"github.com/stretchr/testify/assert"
)

// 2025-01-01 is a Wednesday
func wednesday(hour, min int) time.Time {
	return time.Date(2025, 1, 1, hour, min, 0, 0, time.UTC)
}

func staffWithShift(startTime, endTime string, weekdays ...int) models.Staff {
	days := make([]models.ShiftDay, 0, len(weekdays))
	for _, w := range weekdays {
		days = append(days, models.ShiftDay{Weekday: w})
	}
	return models.Staff{
		IsActive: true,
		Shifts: []models.Shift{
			{StartTime: startTime, EndTime: endTime, ShiftDays: days},
		},
	}
}

func TestIsStaffAvailable_ShiftWindow(t *testing.T) {
	staff := staffWithShift("09:00:00", "17:00:00", 3) // Wednesday

	assert.True(t, IsStaffAvailable(staff, wednesday(9, 0)))
	assert.True(t, IsStaffAvailable(staff, wednesday(12, 30)))
	assert.True(t, IsStaffAvailable(staff, wednesday(16, 59)))

	// Half-open upper bound: a booking exactly at the shift end is rejected
	assert.False(t, IsStaffAvailable(staff, wednesday(17, 0)))
	assert.False(t, IsStaffAvailable(staff, wednesday(8, 59)))
}

func TestIsStaffAvailable_WrongWeekday(t *testing.T) {
	staff := staffWithShift("09:00:00", "17:00:00", 4) // Thursday only

	assert.False(t, IsStaffAvailable(staff, wednesday(10, 0)))
}

func TestIsStaffAvailable_NoShifts(t *testing.T) {
	staff := models.Staff{IsActive: true}

	assert.False(t, IsStaffAvailable(staff, wednesday(10, 0)))
}

func TestIsStaffAvailable_ShiftWithoutDays(t *testing.T) {
	staff := models.Staff{
		IsActive: true,
		Shifts:   []models.Shift{{StartTime: "09:00:00", EndTime: "17:00:00"}},
	}

	assert.False(t, IsStaffAvailable(staff, wednesday(10, 0)))
}

func TestIsStaffAvailable_MultipleShiftsOrSemantics(t *testing.T) {
	staff := models.Staff{
		IsActive: true,
		Shifts: []models.Shift{
			{StartTime: "09:00:00", EndTime: "12:00:00", ShiftDays: []models.ShiftDay{{Weekday: 3}}},
			{StartTime: "14:00:00", EndTime: "18:00:00", ShiftDays: []models.ShiftDay{{Weekday: 3}}},
		},
	}

	assert.True(t, IsStaffAvailable(staff, wednesday(10, 0)))
	assert.True(t, IsStaffAvailable(staff, wednesday(15, 0)))
	// Between the two shifts
	assert.False(t, IsStaffAvailable(staff, wednesday(13, 0)))
}

func TestIsStaffAvailable_TimeOffClosedInterval(t *testing.T) {
	staff := staffWithShift("09:00:00", "17:00:00", 3)
	staff.TimeOff = []models.TimeOff{
		{StartAt: wednesday(10, 0), EndAt: wednesday(12, 0)},
	}

	assert.True(t, IsStaffAvailable(staff, wednesday(9, 30)))
	// Both boundaries are inclusive
	assert.False(t, IsStaffAvailable(staff, wednesday(10, 0)))
	assert.False(t, IsStaffAvailable(staff, wednesday(11, 0)))
	assert.False(t, IsStaffAvailable(staff, wednesday(12, 0)))
	assert.True(t, IsStaffAvailable(staff, wednesday(12, 1)))
}

func TestIsStaffAvailable_TimeOffOverridesShift(t *testing.T) {
	staff := staffWithShift("09:00:00", "17:00:00", 3)
	staff.TimeOff = []models.TimeOff{
		{StartAt: wednesday(0, 0), EndAt: wednesday(23, 59)},
	}

	assert.False(t, IsStaffAvailable(staff, wednesday(10, 0)))
}

func TestIsStaffAvailable_MinuteTruncation(t *testing.T) {
	staff := staffWithShift("09:00:00", "17:00:00", 3)

	// Seconds are ignored; 16:59:59 still falls inside the window
	at := time.Date(2025, 1, 1, 16, 59, 59, 0, time.UTC)
	assert.True(t, IsStaffAvailable(staff, at))
}
