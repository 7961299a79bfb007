package services

import "errors"

// Sentinel errors returned by the booking and loyalty services. Controllers
// map these onto HTTP status codes.
var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")
	ErrForbidden  = errors.New("forbidden")

	ErrInvalidCoupon      = errors.New("coupon is not available")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrCouponLimitReached = errors.New("coupon redemption limit reached")
)
