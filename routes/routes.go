package routes

import (
	"spabook-backend/config"
	"spabook-backend/controllers"
	"spabook-backend/models"
	"spabook-backend/services"
	"spabook-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	notifier := services.NewNotificationService(config.DB)
	controllers.InitBookingService(services.NewBookingService(config.DB, notifier))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Booking routes
		bookings := api.Group("/bookings")
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", utils.RequireRoles(models.RoleAdmin), controllers.GetBookings)
			bookings.GET("/me", controllers.GetMyBookings)
			bookings.GET("/owner", utils.RequireRoles(models.RoleOwner), controllers.GetOwnerBookings)
			bookings.GET("/available-staff/:spaId", controllers.GetAvailableStaff)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PATCH("/:id/reschedule", controllers.RescheduleBooking)
			bookings.PATCH("/:id/reschedule/respond", utils.RequireRoles(models.RoleOwner, models.RoleAdmin), controllers.RespondToReschedule)
			bookings.PATCH("/:id/cancel", controllers.CancelBooking)
			bookings.PATCH("/:id/status", utils.RequireRoles(models.RoleOwner, models.RoleAdmin), controllers.UpdateBookingStatus)
		}

		// Spa routes
		spas := api.Group("/spas")
		{
			spas.GET("", controllers.GetSpas)
			spas.POST("", utils.RequireRoles(models.RoleOwner), controllers.CreateSpa)
			spas.GET("/me", utils.RequireRoles(models.RoleOwner), controllers.GetMySpas)
			spas.GET("/:id", controllers.GetSpa)
			spas.PATCH("/:id/approve", utils.RequireRoles(models.RoleAdmin), controllers.ApproveSpa)
			spas.GET("/:id/services", controllers.GetSpaServices)
			spas.POST("/:id/services", utils.RequireRoles(models.RoleOwner, models.RoleAdmin), controllers.CreateService)
			spas.GET("/:id/staff", controllers.GetSpaStaff)
			spas.POST("/:id/staff", utils.RequireRoles(models.RoleOwner, models.RoleAdmin), controllers.CreateStaff)
		}

		// Service routes
		svc := api.Group("/services", utils.RequireRoles(models.RoleOwner, models.RoleAdmin))
		{
			svc.PUT("/:id", controllers.UpdateService)
			svc.DELETE("/:id", controllers.DeleteService)
		}

		// Staff routes
		staff := api.Group("/staff", utils.RequireRoles(models.RoleOwner, models.RoleAdmin))
		{
			staff.PUT("/:id", controllers.UpdateStaff)
			staff.DELETE("/:id", controllers.DeleteStaff)
			staff.PUT("/:id/shifts", controllers.UpdateStaffShifts)
			staff.POST("/:id/time-off", controllers.CreateTimeOff)
		}
		api.DELETE("/time-off/:id", utils.RequireRoles(models.RoleOwner, models.RoleAdmin), controllers.DeleteTimeOff)

		// Coupon routes
		coupons := api.Group("/coupons", utils.RequireRoles(models.RoleAdmin))
		{
			coupons.POST("", controllers.CreateCoupon)
			coupons.GET("", controllers.GetCoupons)
			coupons.PUT("/:id", controllers.UpdateCoupon)
			coupons.DELETE("/:id", controllers.DeleteCoupon)
		}

		// Loyalty routes
		loyalty := api.Group("/loyalty")
		{
			loyalty.GET("/me", controllers.GetMyLoyalty)
			loyalty.GET("/me/history", controllers.GetMyLoyaltyHistory)
			loyalty.POST("/:userId/points", utils.RequireRoles(models.RoleAdmin), controllers.AddLoyaltyPoints)
		}

		// Admin routes
		api.GET("/admin/metrics", utils.RequireRoles(models.RoleAdmin), controllers.GetAdminMetrics)
	}

	return r
}
