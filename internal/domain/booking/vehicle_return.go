package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
)

// VehicleReturn records the close-out inspection of a rental. Exactly one is
// created per booking, inside the settlement transaction, and it is immutable
// afterward.
type VehicleReturn struct {
	ID                uuid.UUID `json:"id"`
	BookingID         uuid.UUID `json:"booking_id"`
	ConditionNotes    string    `json:"condition_notes"`
	OdometerReading   int64     `json:"odometer_reading"`
	FuelLevel         string    `json:"fuel_level"`
	AdditionalCharges int64     `json:"additional_charges"`
	DepositRefund     int64     `json:"deposit_refund"`
	ProcessedBy       uuid.UUID `json:"processed_by"`
	CreatedAt         time.Time `json:"created_at"`
}

// ReturnDetails is the input for closing a booking.
type ReturnDetails struct {
	ConditionNotes    string
	OdometerReading   int64
	FuelLevel         string
	AdditionalCharges int64
	DepositRefund     int64
	ProcessedBy       uuid.UUID
}

// NewVehicleReturn validates the return details and builds the record.
func NewVehicleReturn(bookingID uuid.UUID, details ReturnDetails) (*VehicleReturn, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if details.ProcessedBy == uuid.Nil {
		return nil, domain.NewValidationError("processing actor is required")
	}
	if details.OdometerReading < 0 {
		return nil, domain.NewValidationError("odometer reading must not be negative")
	}
	if details.AdditionalCharges < 0 {
		return nil, domain.NewValidationError("additional charges must not be negative")
	}
	if details.DepositRefund < 0 {
		return nil, domain.NewValidationError("deposit refund must not be negative")
	}

	return &VehicleReturn{
		ID:                uuid.New(),
		BookingID:         bookingID,
		ConditionNotes:    details.ConditionNotes,
		OdometerReading:   details.OdometerReading,
		FuelLevel:         details.FuelLevel,
		AdditionalCharges: details.AdditionalCharges,
		DepositRefund:     details.DepositRefund,
		ProcessedBy:       details.ProcessedBy,
		CreatedAt:         time.Now().UTC(),
	}, nil
}
