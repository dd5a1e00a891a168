package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rideon-rentals/service-rental/internal/application"
	"github.com/rideon-rentals/service-rental/internal/common/response"
)

// AdminHandler serves the back-office listing and stats endpoints.
type AdminHandler struct {
	booking    *application.BookingService
	settlement *application.SettlementService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(booking *application.BookingService, settlement *application.SettlementService) *AdminHandler {
	return &AdminHandler{booking: booking, settlement: settlement}
}

// RegisterRoutes registers all admin routes on the given router group.
func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/api/v1/admin")
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/bookings/stats", h.GetStats)
		admin.GET("/returns", h.ListReturns)
	}
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.booking.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetStats handles GET /api/v1/admin/bookings/stats.
func (h *AdminHandler) GetStats(c *gin.Context) {
	result, err := h.booking.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListReturns handles GET /api/v1/admin/returns.
func (h *AdminHandler) ListReturns(c *gin.Context) {
	page, limit := parsePagination(c)

	result, err := h.settlement.ListReturns(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}
