package controllers

import (
	"net/http"
	"time"

	"spabook-backend/config"
	"spabook-backend/models"
	"spabook-backend/utils"

	"github.com/gin-gonic/gin"
)

type AdminMetrics struct {
	TotalUsers     int64            `json:"totalUsers"`
	TotalBookings  int64            `json:"totalBookings"`
	TotalSpas      int64            `json:"totalSpas"`
	TotalRevenue   float64          `json:"totalRevenue"`
	NewCustomers   int64            `json:"newCustomers"`
	MonthlyRevenue []MonthlyRevenue `json:"monthlyRevenue"`
}

type MonthlyRevenue struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Bookings int64   `json:"bookings"`
}

// GetAdminMetrics returns platform-wide totals and a six month revenue series
func GetAdminMetrics(c *gin.Context) {
	var metrics AdminMetrics

	config.DB.Model(&models.User{}).Count(&metrics.TotalUsers)
	config.DB.Model(&models.Booking{}).Count(&metrics.TotalBookings)
	config.DB.Model(&models.Spa{}).Where("is_approved = ?", true).Count(&metrics.TotalSpas)

	var totalRevenue *float64
	if err := config.DB.Model(&models.Payment{}).
		Where("status = ?", models.PaymentStatusCompleted).
		Select("SUM(amount)").
		Scan(&totalRevenue).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to calculate revenue")
		return
	}
	if totalRevenue != nil {
		metrics.TotalRevenue = *totalRevenue
	}

	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.User{}).
		Where("role = ? AND created_at >= ?", models.RoleCustomer, firstOfMonth).
		Count(&metrics.NewCustomers)

	// Last 6 months, oldest first
	metrics.MonthlyRevenue = make([]MonthlyRevenue, 0, 6)
	for i := 5; i >= 0; i-- {
		monthStart := firstOfMonth.AddDate(0, -i, 0)
		monthEnd := monthStart.AddDate(0, 1, 0)

		var bookings int64
		config.DB.Model(&models.Booking{}).
			Where("created_at >= ? AND created_at < ?", monthStart, monthEnd).
			Count(&bookings)

		var revenue *float64
		config.DB.Model(&models.Payment{}).
			Where("status = ? AND created_at >= ? AND created_at < ?",
				models.PaymentStatusCompleted, monthStart, monthEnd).
			Select("SUM(amount)").
			Scan(&revenue)

		entry := MonthlyRevenue{Month: monthStart.Format("2006-01"), Bookings: bookings}
		if revenue != nil {
			entry.Revenue = *revenue
		}
		metrics.MonthlyRevenue = append(metrics.MonthlyRevenue, entry)
	}

	c.JSON(http.StatusOK, metrics)
}
