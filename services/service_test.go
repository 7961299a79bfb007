package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"spabook-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Spa{},
		&models.Service{},
		&models.Staff{},
		&models.Shift{},
		&models.ShiftDay{},
		&models.TimeOff{},
		&models.Coupon{},
		&models.Booking{},
		&models.Payment{},
		&models.Loyalty{},
		&models.LoyaltyHistory{},
		&models.SystemSetting{},
		&models.Notification{},
	))

	return db
}

type stubNotifier struct {
	sent []string
	err  error
}

func (s *stubNotifier) Send(userID uuid.UUID, message string, meta models.JSONB) error {
	s.sent = append(s.sent, message)
	return s.err
}

type world struct {
	owner    models.User
	customer models.User
	spa      models.Spa
	service  models.Service
	staff    models.Staff
}

// seedWorld creates an approved spa with one service (100.00) and one staff
// member on shift every day of the week.
func seedWorld(t *testing.T, db *gorm.DB) world {
	t.Helper()

	owner := models.User{Email: "owner@example.com", Password: "secret123", Name: "Owner", Role: models.RoleOwner, IsActive: true}
	require.NoError(t, db.Create(&owner).Error)

	customer := models.User{Email: "customer@example.com", Password: "secret123", Name: "Customer", Role: models.RoleCustomer, IsActive: true}
	require.NoError(t, db.Create(&customer).Error)

	spa := models.Spa{OwnerID: owner.ID, Name: "Lotus Spa", IsApproved: true, OpeningHours: models.JSONB{}}
	require.NoError(t, db.Create(&spa).Error)

	service := models.Service{SpaID: spa.ID, Name: "Thai Massage", Price: 100.00, Duration: 60, IsActive: true}
	require.NoError(t, db.Create(&service).Error)

	staff := models.Staff{SpaID: spa.ID, Name: "Anna", IsActive: true}
	require.NoError(t, db.Create(&staff).Error)

	shift := models.Shift{StaffID: staff.ID, StartTime: "00:00:00", EndTime: "23:59:00"}
	require.NoError(t, db.Create(&shift).Error)
	for weekday := 0; weekday <= 6; weekday++ {
		require.NoError(t, db.Create(&models.ShiftDay{ShiftID: shift.ID, Weekday: weekday}).Error)
	}

	return world{owner: owner, customer: customer, spa: spa, service: service, staff: staff}
}

// futureInstant returns noon two days from now, safely inside the seeded
// all-day shift regardless of when the test runs.
func futureInstant() time.Time {
	d := time.Now().AddDate(0, 0, 2)
	return time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)
}
