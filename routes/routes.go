package routes

import (
	"time"

	"bookiteasy/handlers"
	"bookiteasy/middleware"
	"bookiteasy/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes sets up availability and the booking lifecycle.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(false))
		protected.GET("/available-slots", hb.Booking.GetAvailableSlots)
		protected.POST("", hb.Booking.CreateBooking)
		protected.GET("/:id", hb.Booking.GetBooking)
		protected.PUT("/:id", hb.Booking.UpdateBooking)
		protected.PUT("/:id/cancel", hb.Booking.CancelBooking)
	}
}

// RegisterBusinessRoutes sets up business management and the public catalogue.
func RegisterBusinessRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/businesses")
	{
		// Public catalogue.
		api.GET("/list", hb.Business.ListBusinesses)
		api.GET("/:businessId", hb.Business.GetBusiness)
		api.GET("/:businessId/working-hours", hb.Business.GetWorkingHours)
		api.GET("/:businessId/employees", hb.Business.ListEmployees)
		api.GET("/:businessId/employees/:id/working-hours", hb.Business.GetEmployeeHours)
		api.GET("/:businessId/services", hb.Business.ListServices)
		api.GET("/:businessId/services/:id", hb.Business.GetService)
		api.GET("/:businessId/images", hb.Business.ListImages)
		api.GET("/:businessId/reviews", hb.Business.ListReviews)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthMiddleware(false))
		protected.POST("", middleware.RequireRole(models.RoleOwner, models.RoleAdmin), hb.Business.RegisterBusiness)
		protected.GET("", hb.Business.GetOwnBusiness)
		protected.PUT("/:businessId", hb.Business.UpdateBusiness)
		protected.PUT("/:businessId/toggle-publish", hb.Business.TogglePublish)
		protected.PUT("/:businessId/working-hours", hb.Business.SetWorkingHours)
		protected.GET("/:businessId/bookings", hb.Booking.ListBusinessBookings)

		protected.POST("/:businessId/employees", hb.Business.AddEmployee)
		protected.PUT("/:businessId/employees/:id", hb.Business.UpdateEmployee)
		protected.DELETE("/:businessId/employees/:id", hb.Business.DeleteEmployee)
		protected.POST("/:businessId/employees/:id/upload-avatar", hb.Business.UploadEmployeeAvatar)
		protected.PUT("/:businessId/employees/:id/working-hours", hb.Business.SetEmployeeHours)

		protected.POST("/:businessId/services", hb.Business.AddService)
		protected.PUT("/:businessId/services/:id", hb.Business.UpdateService)
		protected.DELETE("/:businessId/services/:id", hb.Business.DeleteService)

		protected.POST("/:businessId/upload-image", hb.Business.UploadImage)
		protected.PUT("/:businessId/set-primary-image/:imageId", hb.Business.SetPrimaryImage)
		protected.DELETE("/:businessId/delete-image/:imageId", hb.Business.DeleteImage)

		protected.POST("/:businessId/reviews", hb.Business.AddReview)
		protected.GET("/:businessId/reviews/exists", hb.Business.HasReviewed)
		protected.GET("/:businessId/reviews/has-access", hb.Booking.HasReviewAccess)
	}
}

// RegisterUserRoutes sets up the caller's profile, favorites, bookings and reviews.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthMiddleware(false))
		api.GET("/me", hb.User.GetProfile)
		api.PUT("/me", hb.User.UpdateProfile)
		api.POST("/avatar", hb.User.UploadAvatar)
		api.DELETE("/avatar", hb.User.DeleteAvatar)
		api.GET("/favorites", hb.User.ListFavorites)
		api.PATCH("/favorites", hb.User.SetFavorite)
		api.GET("/favorites/:businessId/exists", hb.User.IsFavorite)
		api.GET("/bookings", hb.Booking.ListUserBookings)
		api.GET("/reviews", hb.User.ListReviews)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.Health)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterBookingRoutes(r, hb)
	RegisterBusinessRoutes(r, hb)
	RegisterUserRoutes(r, hb)
}
