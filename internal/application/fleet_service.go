package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"github.com/rideon-rentals/service-rental/internal/domain/fleet"
	"go.uber.org/zap"
)

// CreateVehicleRequest holds the data needed to register a vehicle.
type CreateVehicleRequest struct {
	Name            string  `json:"name" binding:"required"`
	VehicleType     string  `json:"vehicle_type" binding:"required"`
	Location        string  `json:"location"`
	HourlyRate      float64 `json:"hourly_rate" binding:"required"`
	Rate7Day        float64 `json:"rate_7_day"`
	Rate15Day       float64 `json:"rate_15_day"`
	Rate30Day       float64 `json:"rate_30_day"`
	MinBookingHours int64   `json:"min_booking_hours"`
	Description     string  `json:"description"`
	ZeroDeposit     bool    `json:"zero_deposit"`
}

// UpdateRatesRequest revises a vehicle's rate schedule.
type UpdateRatesRequest struct {
	HourlyRate float64 `json:"hourly_rate" binding:"required"`
	Rate7Day   float64 `json:"rate_7_day"`
	Rate15Day  float64 `json:"rate_15_day"`
	Rate30Day  float64 `json:"rate_30_day"`
}

// VehicleDTO is the response representation of a fleet vehicle.
type VehicleDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	VehicleType     string    `json:"vehicle_type"`
	Location        string    `json:"location,omitempty"`
	HourlyRate      int64     `json:"hourly_rate"`
	Rate7Day        int64     `json:"rate_7_day"`
	Rate15Day       int64     `json:"rate_15_day"`
	Rate30Day       int64     `json:"rate_30_day"`
	MinBookingHours int64     `json:"min_booking_hours"`
	IsAvailable     bool      `json:"is_available"`
	Status          string    `json:"status"`
	Description     string    `json:"description,omitempty"`
	ZeroDeposit     bool      `json:"zero_deposit"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// QuoteDTO is the response for a price quote.
type QuoteDTO struct {
	VehicleID  uuid.UUID `json:"vehicle_id"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Hours      int64     `json:"hours"`
	TotalPrice int64     `json:"total_price"`
}

// FleetService manages the vehicle registry and serves price quotes.
type FleetService struct {
	repo   fleet.VehicleRepository
	logger *zap.Logger
}

// NewFleetService creates a new FleetService.
func NewFleetService(repo fleet.VehicleRepository, logger *zap.Logger) *FleetService {
	return &FleetService{repo: repo, logger: logger}
}

// CreateVehicle registers a new vehicle in the fleet.
func (s *FleetService) CreateVehicle(ctx context.Context, req CreateVehicleRequest) (*VehicleDTO, error) {
	rates := bookingDomain.RateSchedule{
		HourlyRate: bookingDomain.RateFromFloat(req.HourlyRate),
		Rate7Day:   bookingDomain.RateFromFloat(req.Rate7Day),
		Rate15Day:  bookingDomain.RateFromFloat(req.Rate15Day),
		Rate30Day:  bookingDomain.RateFromFloat(req.Rate30Day),
	}

	v, err := fleet.NewVehicle(
		req.Name,
		fleet.VehicleType(req.VehicleType),
		req.Location,
		rates,
		req.MinBookingHours,
		req.Description,
		req.ZeroDeposit,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, v); err != nil {
		return nil, err
	}

	result := toVehicleDTO(v)
	return &result, nil
}

// UpdateRates revises a vehicle's rate schedule.
func (s *FleetService) UpdateRates(ctx context.Context, vehicleID uuid.UUID, req UpdateRatesRequest) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	rates := bookingDomain.RateSchedule{
		HourlyRate: bookingDomain.RateFromFloat(req.HourlyRate),
		Rate7Day:   bookingDomain.RateFromFloat(req.Rate7Day),
		Rate15Day:  bookingDomain.RateFromFloat(req.Rate15Day),
		Rate30Day:  bookingDomain.RateFromFloat(req.Rate30Day),
	}
	if err := v.UpdateRates(rates); err != nil {
		return nil, err
	}

	v.IncrementVersion()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	result := toVehicleDTO(v)
	return &result, nil
}

// SetMaintenance moves a vehicle into or out of maintenance.
func (s *FleetService) SetMaintenance(ctx context.Context, vehicleID uuid.UUID, underMaintenance bool) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if underMaintenance {
		err = v.EnterMaintenance()
	} else {
		err = v.Reactivate()
	}
	if err != nil {
		return nil, err
	}

	v.IncrementVersion()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	result := toVehicleDTO(v)
	return &result, nil
}

// RetireVehicle permanently removes a vehicle from service.
func (s *FleetService) RetireVehicle(ctx context.Context, vehicleID uuid.UUID) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	v.Retire()
	v.IncrementVersion()
	if err := s.repo.Update(ctx, v); err != nil {
		return nil, err
	}

	result := toVehicleDTO(v)
	return &result, nil
}

// GetVehicle retrieves a single vehicle by ID.
func (s *FleetService) GetVehicle(ctx context.Context, vehicleID uuid.UUID) (*VehicleDTO, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	result := toVehicleDTO(v)
	return &result, nil
}

// ListVehicles retrieves vehicles with pagination. When activeOnly is set,
// retired and maintenance vehicles are filtered out.
func (s *FleetService) ListVehicles(ctx context.Context, page, limit int, activeOnly bool) (*domain.PaginatedResult[VehicleDTO], error) {
	var (
		vehicles []*fleet.Vehicle
		total    int64
		err      error
	)
	if activeOnly {
		vehicles, total, err = s.repo.ListActive(ctx, page, limit)
	} else {
		vehicles, total, err = s.repo.ListAll(ctx, page, limit)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = toVehicleDTO(v)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// QuotePrice prices a rental period for a vehicle without creating anything.
func (s *FleetService) QuotePrice(ctx context.Context, vehicleID uuid.UUID, startAt, endAt time.Time) (*QuoteDTO, error) {
	v, err := s.repo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	total, err := bookingDomain.Quote(v.Rates(), startAt, endAt)
	if err != nil {
		return nil, err
	}

	return &QuoteDTO{
		VehicleID:  v.ID(),
		StartAt:    startAt,
		EndAt:      endAt,
		Hours:      bookingDomain.DurationHours(startAt, endAt),
		TotalPrice: total,
	}, nil
}

// --- Helpers ---

func toVehicleDTO(v *fleet.Vehicle) VehicleDTO {
	rates := v.Rates()
	return VehicleDTO{
		ID:              v.ID(),
		Name:            v.Name(),
		VehicleType:     string(v.Type()),
		Location:        v.Location(),
		HourlyRate:      rates.HourlyRate,
		Rate7Day:        rates.Rate7Day,
		Rate15Day:       rates.Rate15Day,
		Rate30Day:       rates.Rate30Day,
		MinBookingHours: v.MinBookingHours(),
		IsAvailable:     v.IsAvailable(),
		Status:          string(v.Status()),
		Description:     v.Description(),
		ZeroDeposit:     v.ZeroDeposit(),
		CreatedAt:       v.CreatedAt(),
		UpdatedAt:       v.UpdatedAt(),
	}
}
