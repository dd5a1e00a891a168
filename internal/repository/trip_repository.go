package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	bookingDomain "github.com/rideon-rentals/service-rental/internal/domain/booking"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TripInitiationModel is the GORM model for the trip_initiations table.
// Customer snapshot and documents are stored as JSONB.
type TripInitiationModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookingID          uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Customer           []byte    `gorm:"type:jsonb;not null"`
	VehicleNumber      string    `gorm:"size:30"`
	Documents          []byte    `gorm:"type:jsonb"`
	ChecklistCompleted bool      `gorm:"not null;default:false"`
	TermsAccepted      bool      `gorm:"not null;default:false"`
	Notes              string    `gorm:"size:1000"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (TripInitiationModel) TableName() string {
	return "trip_initiations"
}

// GormTripRepository is the GORM-based implementation of
// TripInitiationRepository.
type GormTripRepository struct {
	db *gorm.DB
}

// NewGormTripRepository creates a new GormTripRepository.
func NewGormTripRepository(db *gorm.DB) *GormTripRepository {
	return &GormTripRepository{db: db}
}

// Upsert inserts or replaces the handover record for a booking.
func (r *GormTripRepository) Upsert(ctx context.Context, trip *bookingDomain.TripInitiation) error {
	model, err := toTripModel(trip)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "booking_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"customer", "vehicle_number", "documents",
				"checklist_completed", "terms_accepted", "notes", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert trip initiation: %w", err)
	}
	return nil
}

// FindByBookingID retrieves the handover record for a booking.
func (r *GormTripRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*bookingDomain.TripInitiation, error) {
	var model TripInitiationModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("TripInitiation", bookingID.String())
		}
		return nil, fmt.Errorf("failed to find trip initiation: %w", err)
	}
	return toDomainTrip(&model)
}

// --- Conversion Helpers ---

func toTripModel(trip *bookingDomain.TripInitiation) (*TripInitiationModel, error) {
	customer, err := json.Marshal(trip.Customer)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal customer snapshot: %w", err)
	}
	documents, err := json.Marshal(trip.Documents)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal handover documents: %w", err)
	}

	return &TripInitiationModel{
		ID:                 trip.ID,
		BookingID:          trip.BookingID,
		Customer:           customer,
		VehicleNumber:      trip.VehicleNumber,
		Documents:          documents,
		ChecklistCompleted: trip.ChecklistCompleted,
		TermsAccepted:      trip.TermsAccepted,
		Notes:              trip.Notes,
		CreatedAt:          trip.CreatedAt,
		UpdatedAt:          trip.UpdatedAt,
	}, nil
}

func toDomainTrip(m *TripInitiationModel) (*bookingDomain.TripInitiation, error) {
	var customer bookingDomain.CustomerSnapshot
	if err := json.Unmarshal(m.Customer, &customer); err != nil {
		return nil, fmt.Errorf("failed to unmarshal customer snapshot: %w", err)
	}
	var documents []bookingDomain.DocumentRecord
	if len(m.Documents) > 0 {
		if err := json.Unmarshal(m.Documents, &documents); err != nil {
			return nil, fmt.Errorf("failed to unmarshal handover documents: %w", err)
		}
	}

	return &bookingDomain.TripInitiation{
		ID:                 m.ID,
		BookingID:          m.BookingID,
		Customer:           customer,
		VehicleNumber:      m.VehicleNumber,
		Documents:          documents,
		ChecklistCompleted: m.ChecklistCompleted,
		TermsAccepted:      m.TermsAccepted,
		Notes:              m.Notes,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}
