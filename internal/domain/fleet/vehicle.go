package fleet

import (
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	"github.com/rideon-rentals/service-rental/internal/domain/booking"
)

// VehicleType identifies the class of rental vehicle.
type VehicleType string

const (
	TypeBike    VehicleType = "bike"
	TypeScooter VehicleType = "scooter"
)

// IsValid returns true if the type is recognized.
func (t VehicleType) IsValid() bool {
	return t == TypeBike || t == TypeScooter
}

// VehicleStatus is the fleet lifecycle state of a vehicle.
type VehicleStatus string

const (
	StatusActive      VehicleStatus = "active"
	StatusMaintenance VehicleStatus = "maintenance"
	StatusRetired     VehicleStatus = "retired"
)

// Vehicle is the aggregate root for a fleet vehicle. Its is_available flag is
// mutated only by booking lifecycle and settlement transactions, never by
// fleet management directly.
type Vehicle struct {
	id              uuid.UUID
	name            string
	vehicleType     VehicleType
	location        string
	rates           booking.RateSchedule
	minBookingHours int64
	isAvailable     bool
	status          VehicleStatus
	description     string
	zeroDeposit     bool
	version         int64
	createdAt       time.Time
	updatedAt       time.Time
}

// NewVehicle creates an active, available vehicle with validated fields.
func NewVehicle(
	name string,
	vehicleType VehicleType,
	location string,
	rates booking.RateSchedule,
	minBookingHours int64,
	description string,
	zeroDeposit bool,
) (*Vehicle, error) {
	if name == "" {
		return nil, domain.NewValidationError("vehicle name is required")
	}
	if !vehicleType.IsValid() {
		return nil, domain.NewValidationError("invalid vehicle type: " + string(vehicleType))
	}
	if rates.HourlyRate <= 0 {
		return nil, domain.NewValidationError("hourly rate must be positive")
	}
	if minBookingHours < 0 {
		return nil, domain.NewValidationError("minimum booking hours must not be negative")
	}

	now := time.Now().UTC()
	return &Vehicle{
		id:              uuid.New(),
		name:            name,
		vehicleType:     vehicleType,
		location:        location,
		rates:           rates,
		minBookingHours: minBookingHours,
		isAvailable:     true,
		status:          StatusActive,
		description:     description,
		zeroDeposit:     zeroDeposit,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Vehicle from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name string,
	vehicleType VehicleType,
	location string,
	rates booking.RateSchedule,
	minBookingHours int64,
	isAvailable bool,
	status VehicleStatus,
	description string,
	zeroDeposit bool,
	version int64,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:              id,
		name:            name,
		vehicleType:     vehicleType,
		location:        location,
		rates:           rates,
		minBookingHours: minBookingHours,
		isAvailable:     isAvailable,
		status:          status,
		description:     description,
		zeroDeposit:     zeroDeposit,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the vehicle's unique identifier.
func (v *Vehicle) ID() uuid.UUID { return v.id }

// Name returns the display name.
func (v *Vehicle) Name() string { return v.name }

// Type returns the vehicle class.
func (v *Vehicle) Type() VehicleType { return v.vehicleType }

// Location returns the pickup location of the vehicle.
func (v *Vehicle) Location() string { return v.location }

// Rates returns the vehicle's rate schedule.
func (v *Vehicle) Rates() booking.RateSchedule { return v.rates }

// MinBookingHours returns the minimum rental duration.
func (v *Vehicle) MinBookingHours() int64 { return v.minBookingHours }

// IsAvailable returns the availability flag.
func (v *Vehicle) IsAvailable() bool { return v.isAvailable }

// Status returns the fleet lifecycle state.
func (v *Vehicle) Status() VehicleStatus { return v.status }

// Description returns the listing description.
func (v *Vehicle) Description() string { return v.description }

// ZeroDeposit returns true if the vehicle rents without a security deposit.
func (v *Vehicle) ZeroDeposit() bool { return v.zeroDeposit }

// Version returns the entity version for optimistic locking.
func (v *Vehicle) Version() int64 { return v.version }

// CreatedAt returns the creation timestamp.
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

// UpdateRates replaces the rate schedule.
func (v *Vehicle) UpdateRates(rates booking.RateSchedule) error {
	if rates.HourlyRate <= 0 {
		return domain.NewValidationError("hourly rate must be positive")
	}
	v.rates = rates
	v.touch()
	return nil
}

// EnterMaintenance takes the vehicle off the fleet for servicing.
func (v *Vehicle) EnterMaintenance() error {
	if v.status == StatusRetired {
		return domain.NewConflictError("vehicle is retired")
	}
	v.status = StatusMaintenance
	v.touch()
	return nil
}

// Reactivate returns a serviced vehicle to the active fleet.
func (v *Vehicle) Reactivate() error {
	if v.status == StatusRetired {
		return domain.NewConflictError("vehicle is retired")
	}
	v.status = StatusActive
	v.touch()
	return nil
}

// Retire permanently removes the vehicle from the fleet.
func (v *Vehicle) Retire() {
	v.status = StatusRetired
	v.isAvailable = false
	v.touch()
}

// IncrementVersion bumps the version for optimistic locking.
func (v *Vehicle) IncrementVersion() {
	v.version++
	v.touch()
}

func (v *Vehicle) touch() {
	v.updatedAt = time.Now().UTC()
}
