package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"github.com/rideon-rentals/service-rental/internal/domain/fleet"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VehicleModel is the GORM model for the vehicles table.
type VehicleModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null;size:255"`
	VehicleType     string    `gorm:"not null;size:30"`
	Location        string    `gorm:"size:255"`
	HourlyRate      int64     `gorm:"not null"`
	Rate7Day        int64     `gorm:"not null;default:0"`
	Rate15Day       int64     `gorm:"not null;default:0"`
	Rate30Day       int64     `gorm:"not null;default:0"`
	MinBookingHours int64     `gorm:"not null;default:0"`
	IsAvailable     bool      `gorm:"not null;default:true;index"`
	Status          string    `gorm:"not null;size:30;index"`
	Description     string    `gorm:"size:1000"`
	ZeroDeposit     bool      `gorm:"not null;default:false"`
	Version         int64     `gorm:"not null;default:1"`
	CreatedAt       time.Time `gorm:"not null"`
	UpdatedAt       time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (VehicleModel) TableName() string {
	return "vehicles"
}

// GormVehicleRepository is the GORM-based implementation of the fleet
// repository. It also serves the booking core's narrow VehicleStore view.
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository.
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByID retrieves a vehicle by its unique identifier.
func (r *GormVehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*fleet.Vehicle, error) {
	var model VehicleModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Vehicle", id.String())
		}
		return nil, fmt.Errorf("failed to find vehicle by ID: %w", err)
	}
	return toDomainVehicle(&model), nil
}

// ListAll retrieves all vehicles with pagination.
func (r *GormVehicleRepository) ListAll(ctx context.Context, page, limit int) ([]*fleet.Vehicle, int64, error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&VehicleModel{}), page, limit)
}

// ListActive retrieves active vehicles with pagination.
func (r *GormVehicleRepository) ListActive(ctx context.Context, page, limit int) ([]*fleet.Vehicle, int64, error) {
	q := r.db.WithContext(ctx).Model(&VehicleModel{}).Where("status = ?", string(fleet.StatusActive))
	return r.list(ctx, q, page, limit)
}

func (r *GormVehicleRepository) list(ctx context.Context, q *gorm.DB, page, limit int) ([]*fleet.Vehicle, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	var models []VehicleModel
	offset := (page - 1) * limit
	if err := q.Order("created_at DESC").Offset(offset).Limit(limit).Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}

	vehicles := make([]*fleet.Vehicle, len(models))
	for i, m := range models {
		vehicles[i] = toDomainVehicle(&m)
	}
	return vehicles, total, nil
}

// Save persists a new vehicle.
func (r *GormVehicleRepository) Save(ctx context.Context, v *fleet.Vehicle) error {
	model := toVehicleModel(v)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save vehicle: %w", err)
	}
	return nil
}

// Update persists changes to an existing vehicle with optimistic locking.
func (r *GormVehicleRepository) Update(ctx context.Context, v *fleet.Vehicle) error {
	model := toVehicleModel(v)

	expectedVersion := v.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&VehicleModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"name":              model.Name,
			"vehicle_type":      model.VehicleType,
			"location":          model.Location,
			"hourly_rate":       model.HourlyRate,
			"rate7_day":         model.Rate7Day,
			"rate15_day":        model.Rate15Day,
			"rate30_day":        model.Rate30Day,
			"min_booking_hours": model.MinBookingHours,
			"is_available":      model.IsAvailable,
			"status":            model.Status,
			"description":       model.Description,
			"zero_deposit":      model.ZeroDeposit,
			"version":           model.Version,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update vehicle: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("vehicle was modified by another transaction")
	}
	return nil
}

// Snapshot reads the rental-relevant fields of a vehicle.
func (r *GormVehicleRepository) Snapshot(ctx context.Context, vehicleID uuid.UUID) (bookingDomain.VehicleSnapshot, error) {
	return r.snapshot(r.db.WithContext(ctx), vehicleID)
}

// SnapshotForUpdate reads the vehicle with its row locked FOR UPDATE, so
// concurrent booking creations for the same vehicle serialize.
func (r *GormVehicleRepository) SnapshotForUpdate(ctx context.Context, vehicleID uuid.UUID) (bookingDomain.VehicleSnapshot, error) {
	q := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"})
	return r.snapshot(q, vehicleID)
}

func (r *GormVehicleRepository) snapshot(q *gorm.DB, vehicleID uuid.UUID) (bookingDomain.VehicleSnapshot, error) {
	var model VehicleModel
	if err := q.Where("id = ?", vehicleID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return bookingDomain.VehicleSnapshot{}, domain.NewNotFoundError("Vehicle", vehicleID.String())
		}
		if isLockTimeout(err) {
			return bookingDomain.VehicleSnapshot{}, domain.NewConflictError("vehicle temporarily unavailable for booking")
		}
		return bookingDomain.VehicleSnapshot{}, fmt.Errorf("failed to read vehicle snapshot: %w", err)
	}

	return bookingDomain.VehicleSnapshot{
		ID:   model.ID,
		Name: model.Name,
		Rates: bookingDomain.RateSchedule{
			HourlyRate: model.HourlyRate,
			Rate7Day:   model.Rate7Day,
			Rate15Day:  model.Rate15Day,
			Rate30Day:  model.Rate30Day,
		},
		MinBookingHours: model.MinBookingHours,
		ZeroDeposit:     model.ZeroDeposit,
		IsAvailable:     model.IsAvailable,
		Active:          model.Status == string(fleet.StatusActive),
	}, nil
}

// SetAvailability flips the vehicle's is_available flag. An absent vehicle
// row is a no-op: the flip rides along in lifecycle and settlement
// transactions, and a missing row must not roll back an otherwise valid
// close-out.
func (r *GormVehicleRepository) SetAvailability(ctx context.Context, vehicleID uuid.UUID, available bool) error {
	result := r.db.WithContext(ctx).
		Model(&VehicleModel{}).
		Where("id = ?", vehicleID).
		Updates(map[string]interface{}{
			"is_available": available,
			"updated_at":   time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to set vehicle availability: %w", result.Error)
	}
	return nil
}

// --- Conversion Helpers ---

func toVehicleModel(v *fleet.Vehicle) *VehicleModel {
	rates := v.Rates()
	return &VehicleModel{
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
		Version:         v.Version(),
		CreatedAt:       v.CreatedAt(),
		UpdatedAt:       v.UpdatedAt(),
	}
}

func toDomainVehicle(m *VehicleModel) *fleet.Vehicle {
	return fleet.Reconstruct(
		m.ID,
		m.Name,
		fleet.VehicleType(m.VehicleType),
		m.Location,
		bookingDomain.RateSchedule{
			HourlyRate: m.HourlyRate,
			Rate7Day:   m.Rate7Day,
			Rate15Day:  m.Rate15Day,
			Rate30Day:  m.Rate30Day,
		},
		m.MinBookingHours,
		m.IsAvailable,
		fleet.VehicleStatus(m.Status),
		m.Description,
		m.ZeroDeposit,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
