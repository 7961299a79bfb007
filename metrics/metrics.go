package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingsCreated counts successfully committed bookings
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spabook_bookings_created_total",
		Help: "Total number of bookings created",
	})

	// BookingsCompleted counts transitions into the COMPLETED status
	BookingsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spabook_bookings_completed_total",
		Help: "Total number of bookings completed",
	})

	// BookingsCancelled counts cancellations
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spabook_bookings_cancelled_total",
		Help: "Total number of bookings cancelled",
	})

	// CouponRedemptions counts coupons consumed by committed bookings
	CouponRedemptions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spabook_coupon_redemptions_total",
		Help: "Total number of coupon redemptions",
	})
)
