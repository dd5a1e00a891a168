package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"gorm.io/gorm"
)

// VehicleReturnModel is the GORM model for the vehicle_returns table. The
// unique index on booking_id makes the second settlement attempt for a
// booking fail at insert time.
type VehicleReturnModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID         uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	ConditionNotes    string    `gorm:"size:1000"`
	OdometerReading   int64     `gorm:"not null;default:0"`
	FuelLevel         string    `gorm:"size:30"`
	AdditionalCharges int64     `gorm:"not null;default:0"`
	DepositRefund     int64     `gorm:"not null;default:0"`
	ProcessedBy       uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (VehicleReturnModel) TableName() string {
	return "vehicle_returns"
}

// GormReturnRepository is the GORM-based implementation of ReturnRepository.
type GormReturnRepository struct {
	db *gorm.DB
}

// NewGormReturnRepository creates a new GormReturnRepository.
func NewGormReturnRepository(db *gorm.DB) *GormReturnRepository {
	return &GormReturnRepository{db: db}
}

// Create inserts the return record.
func (r *GormReturnRepository) Create(ctx context.Context, ret *bookingDomain.VehicleReturn) error {
	model := toReturnModel(ret)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.NewConflictError("booking has already been settled")
		}
		return fmt.Errorf("failed to create vehicle return: %w", err)
	}
	return nil
}

// FindByBookingID retrieves the return record for a booking.
func (r *GormReturnRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*bookingDomain.VehicleReturn, error) {
	var model VehicleReturnModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("VehicleReturn", bookingID.String())
		}
		return nil, fmt.Errorf("failed to find vehicle return: %w", err)
	}
	return toDomainReturn(&model), nil
}

// ListAll retrieves return records with pagination (admin).
func (r *GormReturnRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.VehicleReturn, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&VehicleReturnModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicle returns: %w", err)
	}

	var models []VehicleReturnModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicle returns: %w", err)
	}

	returns := make([]*bookingDomain.VehicleReturn, len(models))
	for i, m := range models {
		returns[i] = toDomainReturn(&m)
	}
	return returns, total, nil
}

// --- Conversion Helpers ---

func toReturnModel(ret *bookingDomain.VehicleReturn) *VehicleReturnModel {
	return &VehicleReturnModel{
		ID:                ret.ID,
		BookingID:         ret.BookingID,
		ConditionNotes:    ret.ConditionNotes,
		OdometerReading:   ret.OdometerReading,
		FuelLevel:         ret.FuelLevel,
		AdditionalCharges: ret.AdditionalCharges,
		DepositRefund:     ret.DepositRefund,
		ProcessedBy:       ret.ProcessedBy,
		CreatedAt:         ret.CreatedAt,
	}
}

func toDomainReturn(m *VehicleReturnModel) *bookingDomain.VehicleReturn {
	return &bookingDomain.VehicleReturn{
		ID:                m.ID,
		BookingID:         m.BookingID,
		ConditionNotes:    m.ConditionNotes,
		OdometerReading:   m.OdometerReading,
		FuelLevel:         m.FuelLevel,
		AdditionalCharges: m.AdditionalCharges,
		DepositRefund:     m.DepositRefund,
		ProcessedBy:       m.ProcessedBy,
		CreatedAt:         m.CreatedAt,
	}
}
