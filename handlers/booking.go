package handlers

import (
	"net/http"

	"bookiteasy/models"
	"bookiteasy/services/booking"
	"bookiteasy/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes availability and the booking lifecycle.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(service booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

// GetAvailableSlots handles GET /api/bookings/available-slots?serviceId=&dateTime=.
func (h *BookingHandler) GetAvailableSlots(c *gin.Context) {
	serviceID := c.Query("serviceId")
	rawDate := c.Query("dateTime")
	if serviceID == "" || rawDate == "" {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "serviceId and dateTime are required")
		return
	}
	date, err := parseDateTime(rawDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "dateTime must be RFC 3339 or YYYY-MM-DD")
		return
	}

	slots, err := h.Service.GetAvailableSlots(c.Request.Context(), serviceID, date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.AvailableSlots{ServiceID: serviceID, Date: h.Service.SlotDate(date), Slots: slots})
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), identity(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Booking created", zap.String("bookingID", b.ID))
	c.JSON(http.StatusCreated, b)
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	detail, err := h.Service.GetBooking(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateBooking handles PUT /api/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	var req models.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	b, err := h.Service.UpdateBooking(c.Request.Context(), identity(c), c.Param("id"), req.DateTime)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelBooking handles PUT /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), identity(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListUserBookings handles GET /api/users/bookings.
func (h *BookingHandler) ListUserBookings(c *gin.Context) {
	list, err := h.Service.ListUserBookings(c.Request.Context(), identity(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// ListBusinessBookings handles GET /api/businesses/:businessId/bookings.
func (h *BookingHandler) ListBusinessBookings(c *gin.Context) {
	list, err := h.Service.ListBusinessBookings(c.Request.Context(), identity(c), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": list})
}

// HasReviewAccess handles GET /api/businesses/:businessId/reviews/has-access.
func (h *BookingHandler) HasReviewAccess(c *gin.Context) {
	ok, err := h.Service.HasCompletedBooking(c.Request.Context(), identity(c), c.Param("businessId"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hasAccess": ok})
}
