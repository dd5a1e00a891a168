package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"gorm.io/gorm"
)

// PaymentModel is the GORM model for the payments ledger table.
type PaymentModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`
	Amount    int64     `gorm:"not null"`
	Method    string    `gorm:"not null;size:30"`
	Status    string    `gorm:"not null;size:30"`
	Reference string    `gorm:"size:255"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PaymentModel) TableName() string {
	return "payments"
}

// GormPaymentRepository is the GORM-based implementation of the append-only
// payment ledger.
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository.
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// Append inserts a new ledger entry.
func (r *GormPaymentRepository) Append(ctx context.Context, entry *bookingDomain.PaymentEntry) error {
	model := PaymentModel{
		ID:        entry.ID,
		BookingID: entry.BookingID,
		Amount:    entry.Amount,
		Method:    entry.Method,
		Status:    entry.Status,
		Reference: entry.Reference,
		CreatedAt: entry.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to append payment entry: %w", err)
	}
	return nil
}

// ListByBookingID returns a booking's ledger entries, oldest first.
func (r *GormPaymentRepository) ListByBookingID(ctx context.Context, bookingID uuid.UUID) ([]bookingDomain.PaymentEntry, error) {
	var models []PaymentModel
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment entries: %w", err)
	}

	entries := make([]bookingDomain.PaymentEntry, len(models))
	for i, m := range models {
		entries[i] = bookingDomain.PaymentEntry{
			ID:        m.ID,
			BookingID: m.BookingID,
			Amount:    m.Amount,
			Method:    m.Method,
			Status:    m.Status,
			Reference: m.Reference,
			CreatedAt: m.CreatedAt,
		}
	}
	return entries, nil
}

// SumByBookingID returns the signed sum of a booking's ledger entries.
func (r *GormPaymentRepository) SumByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	var sum int64
	err := r.db.WithContext(ctx).
		Model(&PaymentModel{}).
		Where("booking_id = ?", bookingID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum payment entries: %w", err)
	}
	return sum, nil
}
