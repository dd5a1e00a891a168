package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BookingNumber   string     `gorm:"uniqueIndex;not null;size:20"`
	CustomerID      uuid.UUID  `gorm:"type:uuid;index;not null"`
	VehicleID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_bookings_vehicle_period,priority:1"`
	StartAt         time.Time  `gorm:"not null;index:idx_bookings_vehicle_period,priority:2"`
	EndAt           time.Time  `gorm:"not null;index:idx_bookings_vehicle_period,priority:3"`
	Status          string     `gorm:"not null;size:30;index"`
	TotalPrice      int64      `gorm:"not null"`
	PaidAmount      int64      `gorm:"not null;default:0"`
	PendingAmount   int64      `gorm:"not null;default:0"`
	PaymentStatus   string     `gorm:"not null;size:30"`
	PaymentMethod   string     `gorm:"size:30"`
	PickupLocation  string     `gorm:"size:255"`
	DropoffLocation string     `gorm:"size:255"`
	Notes           string     `gorm:"size:1000"`
	CancelNote      string     `gorm:"size:500"`
	CancelledAt     *time.Time `gorm:""`
	Version         int64      `gorm:"not null;default:1"`
	CreatedAt       time.Time  `gorm:"not null"`
	UpdatedAt       time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of BookingRepository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByIDForUpdate retrieves a booking with its row locked FOR UPDATE. The
// surrounding transaction sets lock_timeout, so a lock that cannot be
// acquired in time surfaces here as a conflict instead of blocking.
func (r *GormBookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		if isLockTimeout(err) {
			return nil, domain.NewConflictError("booking temporarily unavailable for modification")
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByNumber retrieves a booking by its booking number.
func (r *GormBookingRepository) FindByNumber(ctx context.Context, number string) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("booking_number = ?", number).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", number)
		}
		return nil, fmt.Errorf("failed to find booking by number: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByCustomerID retrieves bookings for a customer with pagination.
func (r *GormBookingRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("customer_id = ?", customerID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count customer bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find customer bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// ListAll retrieves all bookings with pagination (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.Status] = sc.Count
	}
	return counts, nil
}

// CountActiveOverlapping counts non-cancelled bookings for the vehicle whose
// interval overlaps the given one: existing.start < end AND existing.end > start.
func (r *GormBookingRepository) CountActiveOverlapping(ctx context.Context, vehicleID uuid.UUID, period bookingDomain.Interval, exclude *uuid.UUID) (int64, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("vehicle_id = ?", vehicleID).
		Where("status NOT IN ?", []string{"cancelled", "failed"}).
		Where("start_at < ? AND end_at > ?", period.End, period.Start)

	if exclude != nil {
		q = q.Where("id <> ?", *exclude)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count overlapping bookings: %w", err)
	}
	return count, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)

	// IncrementVersion was called before Update, so the row must still hold
	// the previous version.
	expectedVersion := b.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"vehicle_id":       model.VehicleID,
			"start_at":         model.StartAt,
			"end_at":           model.EndAt,
			"status":           model.Status,
			"total_price":      model.TotalPrice,
			"paid_amount":      model.PaidAmount,
			"pending_amount":   model.PendingAmount,
			"payment_status":   model.PaymentStatus,
			"payment_method":   model.PaymentMethod,
			"pickup_location":  model.PickupLocation,
			"dropoff_location": model.DropoffLocation,
			"notes":            model.Notes,
			"cancel_note":      model.CancelNote,
			"cancelled_at":     model.CancelledAt,
			"version":          model.Version,
			"updated_at":       model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion Helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:              b.ID(),
		BookingNumber:   b.BookingNumber(),
		CustomerID:      b.CustomerID(),
		VehicleID:       b.VehicleID(),
		StartAt:         b.Period().Start,
		EndAt:           b.Period().End,
		Status:          string(b.Status()),
		TotalPrice:      b.TotalPrice(),
		PaidAmount:      b.PaidAmount(),
		PendingAmount:   b.PendingAmount(),
		PaymentStatus:   string(b.PaymentStatus()),
		PaymentMethod:   b.PaymentMethod(),
		PickupLocation:  b.PickupLocation(),
		DropoffLocation: b.DropoffLocation(),
		Notes:           b.Notes(),
		CancelNote:      b.CancelNote(),
		CancelledAt:     b.CancelledAt(),
		Version:         b.Version(),
		CreatedAt:       b.CreatedAt(),
		UpdatedAt:       b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseBookingStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.BookingNumber,
		m.CustomerID,
		m.VehicleID,
		bookingDomain.Interval{Start: m.StartAt, End: m.EndAt},
		status,
		m.TotalPrice,
		m.PaidAmount,
		m.PendingAmount,
		bookingDomain.PaymentStatus(m.PaymentStatus),
		m.PaymentMethod,
		m.PickupLocation,
		m.DropoffLocation,
		m.Notes,
		m.CancelNote,
		m.CancelledAt,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		b, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = b
	}
	return bookings, total, nil
}
