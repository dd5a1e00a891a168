package booking

import (
	"context"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByIDForUpdate retrieves a booking with its row locked for the
	// duration of the surrounding transaction. The lock wait is bounded; a
	// timeout surfaces as a conflict error, never an indefinite block.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByNumber retrieves a booking by its human-readable booking number.
	FindByNumber(ctx context.Context, number string) (*Booking, error)

	// FindByCustomerID retrieves bookings for a customer with pagination.
	FindByCustomerID(ctx context.Context, customerID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// CountActiveOverlapping counts non-cancelled bookings for the vehicle
	// whose interval overlaps the given one under half-open semantics.
	// exclude, when non-nil, removes that booking from consideration.
	CountActiveOverlapping(ctx context.Context, vehicleID uuid.UUID, period Interval, exclude *uuid.UUID) (int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, b *Booking) error
}

// PaymentRepository is the append-only payment ledger.
type PaymentRepository interface {
	// Append inserts a new ledger entry. Entries are never updated or deleted.
	Append(ctx context.Context, entry *PaymentEntry) error

	// ListByBookingID returns a booking's ledger entries, oldest first.
	ListByBookingID(ctx context.Context, bookingID uuid.UUID) ([]PaymentEntry, error)

	// SumByBookingID returns the signed sum of a booking's ledger entries.
	SumByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

// ReturnRepository persists vehicle return records.
type ReturnRepository interface {
	// Create inserts the return record. A second insert for the same booking
	// fails on the unique booking index.
	Create(ctx context.Context, ret *VehicleReturn) error

	// FindByBookingID retrieves the return record for a booking.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*VehicleReturn, error)

	// ListAll retrieves return records with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*VehicleReturn, int64, error)
}

// TripInitiationRepository persists trip handover records.
type TripInitiationRepository interface {
	// Upsert inserts or replaces the handover record for a booking.
	Upsert(ctx context.Context, trip *TripInitiation) error

	// FindByBookingID retrieves the handover record for a booking.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*TripInitiation, error)
}

// VehicleSnapshot is the slice of a fleet vehicle the booking workflows read.
type VehicleSnapshot struct {
	ID              uuid.UUID
	Name            string
	Rates           RateSchedule
	MinBookingHours int64
	ZeroDeposit     bool
	IsAvailable     bool
	Active          bool
}

// VehicleStore is the booking core's narrow view of the fleet. The
// availability flag may only be written through this interface, from within
// lifecycle or settlement transactions.
type VehicleStore interface {
	// Snapshot reads the rental-relevant fields of a vehicle.
	Snapshot(ctx context.Context, vehicleID uuid.UUID) (VehicleSnapshot, error)

	// SnapshotForUpdate reads the vehicle with its row locked for the
	// duration of the surrounding transaction. Creation and extension lock
	// the vehicle so concurrent availability checks serialize.
	SnapshotForUpdate(ctx context.Context, vehicleID uuid.UUID) (VehicleSnapshot, error)

	// SetAvailability flips the vehicle's is_available flag.
	SetAvailability(ctx context.Context, vehicleID uuid.UUID, available bool) error
}

// TxRepositories bundles the repositories bound to one open transaction.
type TxRepositories struct {
	Bookings BookingRepository
	Payments PaymentRepository
	Returns  ReturnRepository
	Trips    TripInitiationRepository
	Vehicles VehicleStore
}

// UnitOfWork runs a function inside a single database transaction. The
// repositories passed to fn share that transaction; an error rolls everything
// back so partial application is never observable.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos TxRepositories) error) error
}

// Notifier dispatches best-effort notifications about completed transitions.
// Implementations return immediately and never surface failures to the
// booking workflow; delivery errors are logged at the boundary.
type Notifier interface {
	Notify(ctx context.Context, eventKind string, payload interface{})
}
