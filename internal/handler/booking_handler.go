package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/application"
	"github.com/rideon-rentals/service-rental/internal/common/response"
)

// CancelBookingRequest carries the cancellation reason.
type CancelBookingRequest struct {
	Reason string `json:"reason"`
}

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	booking    *application.BookingService
	settlement *application.SettlementService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(booking *application.BookingService, settlement *application.SettlementService) *BookingHandler {
	return &BookingHandler{booking: booking, settlement: settlement}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/api/v1/availability", h.CheckAvailability)

	bookings := r.Group("/api/v1/bookings")
	{
		bookings.POST("", h.CreateBooking)
		bookings.GET("", h.ListCustomerBookings)
		bookings.GET("/number/:number", h.GetBookingByNumber)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.POST("/:id/confirm", h.ConfirmBooking)
		bookings.POST("/:id/cancel", h.CancelBooking)
		bookings.POST("/:id/initiate", h.InitiateTrip)
		bookings.GET("/:id/trip", h.GetTripInitiation)
		bookings.POST("/:id/extend", h.ExtendBooking)
		bookings.POST("/:id/payments", h.CollectPayment)
		bookings.POST("/:id/close", h.CloseBooking)
		bookings.GET("/:id/return", h.GetReturn)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.booking.CreateBooking(c.Request.Context(), req.CustomerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// CheckAvailability handles GET /api/v1/availability.
func (h *BookingHandler) CheckAvailability(c *gin.Context) {
	vehicleID, err := uuid.Parse(c.Query("vehicle_id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}
	startAt, endAt, ok := parsePeriod(c)
	if !ok {
		return
	}

	result, err := h.booking.CheckAvailability(c.Request.Context(), vehicleID, startAt, endAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListCustomerBookings handles GET /api/v1/bookings?customer_id=...
func (h *BookingHandler) ListCustomerBookings(c *gin.Context) {
	customerID, err := uuid.Parse(c.Query("customer_id"))
	if err != nil {
		response.BadRequest(c, "invalid customer ID")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.booking.GetCustomerBookings(c.Request.Context(), customerID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	result, err := h.booking.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBookingByNumber handles GET /api/v1/bookings/number/:number.
func (h *BookingHandler) GetBookingByNumber(c *gin.Context) {
	result, err := h.booking.GetBookingByNumber(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateBooking handles PATCH /api/v1/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.booking.UpdateBooking(c.Request.Context(), bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ConfirmBooking handles POST /api/v1/bookings/:id/confirm.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	result, err := h.booking.ConfirmBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CancelBooking handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req CancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.booking.CancelBooking(c.Request.Context(), bookingID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// InitiateTrip handles POST /api/v1/bookings/:id/initiate.
func (h *BookingHandler) InitiateTrip(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req application.InitiateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.booking.InitiateTrip(c.Request.Context(), bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetTripInitiation handles GET /api/v1/bookings/:id/trip.
func (h *BookingHandler) GetTripInitiation(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	result, err := h.booking.GetTripInitiation(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ExtendBooking handles POST /api/v1/bookings/:id/extend.
func (h *BookingHandler) ExtendBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req application.ExtendBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.booking.ExtendBooking(c.Request.Context(), bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CollectPayment handles POST /api/v1/bookings/:id/payments.
func (h *BookingHandler) CollectPayment(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req application.CollectPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.booking.CollectPayment(c.Request.Context(), bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CloseBooking handles POST /api/v1/bookings/:id/close.
func (h *BookingHandler) CloseBooking(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	var req application.CloseBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.settlement.CloseBooking(c.Request.Context(), bookingID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetReturn handles GET /api/v1/bookings/:id/return.
func (h *BookingHandler) GetReturn(c *gin.Context) {
	bookingID, ok := parseBookingID(c)
	if !ok {
		return
	}

	result, err := h.settlement.GetReturn(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// --- Helpers ---

func parseBookingID(c *gin.Context) (uuid.UUID, bool) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return uuid.Nil, false
	}
	return bookingID, true
}

func parsePeriod(c *gin.Context) (time.Time, time.Time, bool) {
	startAt, err := time.Parse(time.RFC3339, c.Query("start_at"))
	if err != nil {
		response.BadRequest(c, "invalid start_at, expected RFC3339")
		return time.Time{}, time.Time{}, false
	}
	endAt, err := time.Parse(time.RFC3339, c.Query("end_at"))
	if err != nil {
		response.BadRequest(c, "invalid end_at, expected RFC3339")
		return time.Time{}, time.Time{}, false
	}
	return startAt, endAt, true
}

func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
