package services

import (
	"testing"
	"time"

	"spabook-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDiscount(t *testing.T) {
	assert.Equal(t, 80.00, ApplyDiscount(100.00, 20))
	assert.Equal(t, 100.00, ApplyDiscount(100.00, 0))
	assert.Equal(t, 33.33, ApplyDiscount(49.99, 33.33))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 12.00, Round2(80.00*15/100))
	assert.Equal(t, 0.1, Round2(0.1+1e-9))
}

func TestCommissionRate_Fallback(t *testing.T) {
	db := newTestDB(t)

	// No setting row: silent default
	assert.Equal(t, DefaultCommissionRate, CommissionRate(db))

	// Garbage value: silent default
	require.NoError(t, db.Create(&models.SystemSetting{Key: "commission_rate", Value: "abc"}).Error)
	assert.Equal(t, DefaultCommissionRate, CommissionRate(db))
}

func TestCommissionRate_FromSetting(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.SystemSetting{Key: "commission_rate", Value: "20"}).Error)

	assert.Equal(t, 20.0, CommissionRate(db))
}

func TestRedeemCoupon_Success(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Coupon{Code: "SAVE20", DiscountPercent: 20, IsActive: true}).Error)

	percent, err := redeemCoupon(db, "SAVE20")
	require.NoError(t, err)
	assert.Equal(t, 20.0, percent)

	var coupon models.Coupon
	require.NoError(t, db.Where("code = ?", "SAVE20").First(&coupon).Error)
	assert.Equal(t, 1, coupon.CurrentRedemptions)
}

func TestRedeemCoupon_Missing(t *testing.T) {
	db := newTestDB(t)

	_, err := redeemCoupon(db, "NOPE")
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestRedeemCoupon_Inactive(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Coupon{Code: "OLD", DiscountPercent: 10, IsActive: false}).Error)

	_, err := redeemCoupon(db, "OLD")
	assert.ErrorIs(t, err, ErrInvalidCoupon)
}

func TestRedeemCoupon_Expired(t *testing.T) {
	db := newTestDB(t)
	expired := time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(&models.Coupon{Code: "LATE", DiscountPercent: 10, IsActive: true, ExpiresAt: &expired}).Error)

	_, err := redeemCoupon(db, "LATE")
	assert.ErrorIs(t, err, ErrCouponExpired)
}

func TestRedeemCoupon_CapNeverExceeded(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Coupon{Code: "CAP2", DiscountPercent: 10, IsActive: true, MaxRedemptions: 2}).Error)

	_, err := redeemCoupon(db, "CAP2")
	require.NoError(t, err)
	_, err = redeemCoupon(db, "CAP2")
	require.NoError(t, err)

	_, err = redeemCoupon(db, "CAP2")
	assert.ErrorIs(t, err, ErrCouponLimitReached)

	var coupon models.Coupon
	require.NoError(t, db.Where("code = ?", "CAP2").First(&coupon).Error)
	assert.Equal(t, 2, coupon.CurrentRedemptions)
}

func TestRedeemCoupon_ZeroCapIsUnlimited(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Coupon{Code: "FREE", DiscountPercent: 5, IsActive: true, MaxRedemptions: 0}).Error)

	for i := 0; i < 5; i++ {
		_, err := redeemCoupon(db, "FREE")
		require.NoError(t, err)
	}

	var coupon models.Coupon
	require.NoError(t, db.Where("code = ?", "FREE").First(&coupon).Error)
	assert.Equal(t, 5, coupon.CurrentRedemptions)
}
