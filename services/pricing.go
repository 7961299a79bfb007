package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"spabook-backend/models"

	"gorm.io/gorm"
)

// DefaultCommissionRate is the platform's cut in percent, used whenever the
// commission_rate system setting is missing or unreadable.
const DefaultCommissionRate = 15.0

// Round2 rounds a money amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyDiscount returns the final price after a percentage discount.
func ApplyDiscount(amount, percent float64) float64 {
	if percent == 0 {
		return Round2(amount)
	}
	return Round2(amount * (100 - percent) / 100)
}

// CommissionRate reads the commission_rate system setting. Lookup or parse
// failures never propagate; the default is substituted silently.
func CommissionRate(db *gorm.DB) float64 {
	var setting models.SystemSetting
	if err := db.Where("key = ?", "commission_rate").First(&setting).Error; err != nil {
		return DefaultCommissionRate
	}
	rate, err := strconv.ParseFloat(setting.Value, 64)
	if err != nil {
		return DefaultCommissionRate
	}
	return rate
}

// redeemCoupon validates the coupon and consumes one redemption inside the
// caller's transaction, returning the discount percent. The counter update
// is guarded in SQL so concurrent transactions cannot push it past the cap.
func redeemCoupon(tx *gorm.DB, code string) (float64, error) {
	var coupon models.Coupon
	if err := tx.Where("code = ?", code).First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrInvalidCoupon
		}
		return 0, err
	}
	if !coupon.IsActive {
		return 0, ErrInvalidCoupon
	}

	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(time.Now()) {
		return 0, ErrCouponExpired
	}

	if coupon.MaxRedemptions > 0 && coupon.CurrentRedemptions >= coupon.MaxRedemptions {
		return 0, ErrCouponLimitReached
	}

	result := tx.Model(&models.Coupon{}).
		Where("id = ? AND (max_redemptions = 0 OR current_redemptions < max_redemptions)", coupon.ID).
		Update("current_redemptions", gorm.Expr("current_redemptions + ?", 1))
	if result.Error != nil {
		return 0, fmt.Errorf("redeem coupon: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return 0, ErrCouponLimitReached
	}

	return coupon.DiscountPercent, nil
}
