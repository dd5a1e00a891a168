package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/application"
	"github.com/rideon-rentals/service-rental/internal/common/response"
)

// SetMaintenanceRequest toggles a vehicle's maintenance state.
type SetMaintenanceRequest struct {
	UnderMaintenance bool `json:"under_maintenance"`
}

// FleetHandler handles HTTP requests for the vehicle registry.
type FleetHandler struct {
	service *application.FleetService
}

// NewFleetHandler creates a new FleetHandler.
func NewFleetHandler(service *application.FleetService) *FleetHandler {
	return &FleetHandler{service: service}
}

// RegisterRoutes registers all fleet routes on the given router group.
func (h *FleetHandler) RegisterRoutes(r *gin.RouterGroup) {
	vehicles := r.Group("/api/v1/vehicles")
	{
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.GET("/:id", h.GetVehicle)
		vehicles.GET("/:id/quote", h.QuotePrice)
		vehicles.PUT("/:id/rates", h.UpdateRates)
		vehicles.POST("/:id/maintenance", h.SetMaintenance)
		vehicles.POST("/:id/retire", h.RetireVehicle)
	}
}

// CreateVehicle handles POST /api/v1/vehicles.
func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	var req application.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListVehicles handles GET /api/v1/vehicles.
func (h *FleetHandler) ListVehicles(c *gin.Context) {
	page, limit := parsePagination(c)
	activeOnly := c.Query("active") == "true"

	result, err := h.service.ListVehicles(c.Request.Context(), page, limit, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetVehicle handles GET /api/v1/vehicles/:id.
func (h *FleetHandler) GetVehicle(c *gin.Context) {
	vehicleID, ok := parseVehicleID(c)
	if !ok {
		return
	}

	result, err := h.service.GetVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// QuotePrice handles GET /api/v1/vehicles/:id/quote.
func (h *FleetHandler) QuotePrice(c *gin.Context) {
	vehicleID, ok := parseVehicleID(c)
	if !ok {
		return
	}
	startAt, endAt, ok := parsePeriod(c)
	if !ok {
		return
	}

	result, err := h.service.QuotePrice(c.Request.Context(), vehicleID, startAt, endAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateRates handles PUT /api/v1/vehicles/:id/rates.
func (h *FleetHandler) UpdateRates(c *gin.Context) {
	vehicleID, ok := parseVehicleID(c)
	if !ok {
		return
	}

	var req application.UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateRates(c.Request.Context(), vehicleID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// SetMaintenance handles POST /api/v1/vehicles/:id/maintenance.
func (h *FleetHandler) SetMaintenance(c *gin.Context) {
	vehicleID, ok := parseVehicleID(c)
	if !ok {
		return
	}

	var req SetMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.SetMaintenance(c.Request.Context(), vehicleID, req.UnderMaintenance)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// RetireVehicle handles POST /api/v1/vehicles/:id/retire.
func (h *FleetHandler) RetireVehicle(c *gin.Context) {
	vehicleID, ok := parseVehicleID(c)
	if !ok {
		return
	}

	result, err := h.service.RetireVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func parseVehicleID(c *gin.Context) (uuid.UUID, bool) {
	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return uuid.Nil, false
	}
	return vehicleID, true
}
