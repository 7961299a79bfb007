package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spabook-backend/config"
	"spabook-backend/models"
	"spabook-backend/routes"
	"spabook-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fixture struct {
	router   *gin.Engine
	db       *gorm.DB
	admin    models.User
	owner    models.User
	customer models.User
	spa      models.Spa
	service  models.Service
}

func token(t *testing.T, user models.User) string {
	t.Helper()
	tok, err := utils.GenerateToken(user.ID.String(), user.Role)
	require.NoError(t, err)
	return tok
}

// setup wires the real router against an in-memory database. Users are
// created without phone numbers so notifications stay on the in-app channel.
func setup(t *testing.T) fixture {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Spa{}, &models.Service{},
		&models.Staff{}, &models.Shift{}, &models.ShiftDay{}, &models.TimeOff{},
		&models.Coupon{}, &models.Booking{}, &models.Payment{},
		&models.Loyalty{}, &models.LoyaltyHistory{},
		&models.SystemSetting{}, &models.Notification{},
	))

	config.DB = db

	admin := models.User{Email: "admin@example.com", Password: "secret123", Name: "Admin", Role: models.RoleAdmin, IsActive: true}
	require.NoError(t, db.Create(&admin).Error)
	owner := models.User{Email: "owner@example.com", Password: "secret123", Name: "Owner", Role: models.RoleOwner, IsActive: true}
	require.NoError(t, db.Create(&owner).Error)
	customer := models.User{Email: "customer@example.com", Password: "secret123", Name: "Customer", Role: models.RoleCustomer, IsActive: true}
	require.NoError(t, db.Create(&customer).Error)

	spa := models.Spa{OwnerID: owner.ID, Name: "Lotus Spa", IsApproved: true, OpeningHours: models.JSONB{}}
	require.NoError(t, db.Create(&spa).Error)
	service := models.Service{SpaID: spa.ID, Name: "Thai Massage", Price: 100.00, Duration: 60, IsActive: true}
	require.NoError(t, db.Create(&service).Error)

	return fixture{
		router:   routes.SetupRouter(),
		db:       db,
		admin:    admin,
		owner:    owner,
		customer: customer,
		spa:      spa,
		service:  service,
	}
}

func (f fixture) request(t *testing.T, method, path, authToken string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func futureTimestamp() string {
	return time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
}

func TestCreateBookingEndpoint(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.db.Create(&models.Coupon{Code: "SAVE20", DiscountPercent: 20, IsActive: true}).Error)

	w := f.request(t, http.MethodPost, "/api/bookings", token(t, f.customer), gin.H{
		"spaId":         f.spa.ID,
		"serviceId":     f.service.ID,
		"scheduledAt":   futureTimestamp(),
		"couponCode":    "SAVE20",
		"paymentMethod": "cash",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var booking models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booking))
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Equal(t, 80.00, booking.FinalPrice)
	assert.Equal(t, f.customer.ID, booking.CustomerID)
}

func TestCreateBookingEndpoint_UnapprovedSpa(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.db.Model(&models.Spa{}).Where("id = ?", f.spa.ID).Update("is_approved", false).Error)

	w := f.request(t, http.MethodPost, "/api/bookings", token(t, f.customer), gin.H{
		"spaId":       f.spa.ID,
		"serviceId":   f.service.ID,
		"scheduledAt": futureTimestamp(),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateBookingEndpoint_BadTimestamp(t *testing.T) {
	f := setup(t)

	w := f.request(t, http.MethodPost, "/api/bookings", token(t, f.customer), gin.H{
		"spaId":       f.spa.ID,
		"serviceId":   f.service.ID,
		"scheduledAt": "tomorrow at noon",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingEndpoints_RequireAuth(t *testing.T) {
	f := setup(t)

	w := f.request(t, http.MethodGet, "/api/bookings/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListAllBookings_AdminOnly(t *testing.T) {
	f := setup(t)

	w := f.request(t, http.MethodGet, "/api/bookings", token(t, f.customer), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.request(t, http.MethodGet, "/api/bookings", token(t, f.admin), nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateBookingStatus_RoleAndValidation(t *testing.T) {
	f := setup(t)

	create := f.request(t, http.MethodPost, "/api/bookings", token(t, f.customer), gin.H{
		"spaId":       f.spa.ID,
		"serviceId":   f.service.ID,
		"scheduledAt": futureTimestamp(),
	})
	require.Equal(t, http.StatusCreated, create.Code, create.Body.String())

	var booking models.Booking
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &booking))
	path := "/api/bookings/" + booking.ID.String() + "/status"

	// Customers cannot drive the lifecycle
	w := f.request(t, http.MethodPatch, path, token(t, f.customer), gin.H{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Unknown status values are rejected by binding
	w = f.request(t, http.MethodPatch, path, token(t, f.owner), gin.H{"status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.request(t, http.MethodPatch, path, token(t, f.owner), gin.H{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, models.BookingStatusConfirmed, updated.Status)
}

func TestRescheduleEndpoint_CustomerRequestFlow(t *testing.T) {
	f := setup(t)

	create := f.request(t, http.MethodPost, "/api/bookings", token(t, f.customer), gin.H{
		"spaId":       f.spa.ID,
		"serviceId":   f.service.ID,
		"scheduledAt": futureTimestamp(),
	})
	require.Equal(t, http.StatusCreated, create.Code, create.Body.String())

	var booking models.Booking
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &booking))

	requested := time.Now().Add(72 * time.Hour).UTC().Format(time.RFC3339)
	w := f.request(t, http.MethodPatch, "/api/bookings/"+booking.ID.String()+"/reschedule",
		token(t, f.customer), gin.H{"scheduledAt": requested})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var afterRequest models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &afterRequest))
	assert.Equal(t, booking.ScheduledAt.Unix(), afterRequest.ScheduledAt.Unix())
	require.NotNil(t, afterRequest.RequestedScheduledAt)

	w = f.request(t, http.MethodPatch, "/api/bookings/"+booking.ID.String()+"/reschedule/respond",
		token(t, f.owner), gin.H{"approved": true})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var afterApproval models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &afterApproval))
	assert.Nil(t, afterApproval.RequestedScheduledAt)
	assert.Equal(t, requested, afterApproval.ScheduledAt.UTC().Format(time.RFC3339))
}

func TestRespondEndpoint_CustomerForbidden(t *testing.T) {
	f := setup(t)

	create := f.request(t, http.MethodPost, "/api/bookings", token(t, f.customer), gin.H{
		"spaId":       f.spa.ID,
		"serviceId":   f.service.ID,
		"scheduledAt": futureTimestamp(),
	})
	require.Equal(t, http.StatusCreated, create.Code, create.Body.String())

	var booking models.Booking
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &booking))

	w := f.request(t, http.MethodPatch, "/api/bookings/"+booking.ID.String()+"/reschedule/respond",
		token(t, f.customer), gin.H{"approved": true})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelEndpoint(t *testing.T) {
	f := setup(t)

	create := f.request(t, http.MethodPost, "/api/bookings", token(t, f.customer), gin.H{
		"spaId":       f.spa.ID,
		"serviceId":   f.service.ID,
		"scheduledAt": futureTimestamp(),
	})
	require.Equal(t, http.StatusCreated, create.Code, create.Body.String())

	var booking models.Booking
	require.NoError(t, json.Unmarshal(create.Body.Bytes(), &booking))

	w := f.request(t, http.MethodPatch, "/api/bookings/"+booking.ID.String()+"/cancel", token(t, f.customer), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cancelled models.Booking
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
	assert.Equal(t, models.BookingStatusCancelled, cancelled.Status)
}
