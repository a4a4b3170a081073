package bookings

import (
	"railbook/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// SetupBookingRoutes configures all booking-related routes
func SetupBookingRoutes(rg *gin.RouterGroup, controller *Controller, auth gin.HandlerFunc) {
	if auth == nil {
		auth = middleware.JWTAuth()
	}

	bookings := rg.Group("/bookings")
	bookings.Use(auth)
	{
		bookings.POST("", controller.BookTicket)               // POST /api/v1/bookings
		bookings.GET("", controller.GetUserBookings)           // GET /api/v1/bookings
		bookings.GET("/:pnr", controller.GetBooking)           // GET /api/v1/bookings/:pnr
		bookings.POST("/:pnr/cancel", controller.CancelTicket) // POST /api/v1/bookings/:pnr/cancel
	}
}

// Route definitions for reference:
//
// POST   /api/v1/bookings              - Book a ticket (optional Idempotency-Key header)
// Request body: { "train_id": 1, "travel_date": "2025-06-01", "booking_class": "AC 2-Tier",
//                 "passengers": [{ "passenger_name": "Asha", "age": 34, "gender": "Female" }] }
//
// GET    /api/v1/bookings              - Caller's bookings in booking order, cancelled included
// GET    /api/v1/bookings/:pnr         - One booking, owner only
// POST   /api/v1/bookings/:pnr/cancel  - Cancel; repeating it succeeds
