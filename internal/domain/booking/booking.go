package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// Booking is the aggregate root for a vehicle rental. PaymentEntry and
// VehicleReturn records are created under its transaction boundary and never
// mutated outside it. The ledger invariant paidAmount + pendingAmount ==
// totalPrice holds after every mutation.
type Booking struct {
	id            uuid.UUID
	bookingNumber string
	customerID    uuid.UUID
	vehicleID     uuid.UUID
	period        Interval
	status        BookingStatus

	totalPrice    int64
	paidAmount    int64
	pendingAmount int64
	paymentStatus PaymentStatus
	paymentMethod string

	pickupLocation  string
	dropoffLocation string
	notes           string
	cancelNote      string
	cancelledAt     *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// generateBookingNumber creates a booking number in the format "RB-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "RB-" + string(result), nil
}

// NewBooking creates a pending Booking with the full price outstanding.
func NewBooking(
	customerID, vehicleID uuid.UUID,
	period Interval,
	totalPrice int64,
	pickupLocation, dropoffLocation, notes string,
) (*Booking, error) {
	if customerID == uuid.Nil {
		return nil, domain.NewValidationError("customer ID is required")
	}
	if vehicleID == uuid.Nil {
		return nil, domain.NewValidationError("vehicle ID is required")
	}
	if !period.End.After(period.Start) {
		return nil, domain.NewValidationError("rental end must be after start")
	}
	if totalPrice < 0 {
		return nil, domain.NewValidationError("total price must not be negative")
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Booking{
		id:              uuid.New(),
		bookingNumber:   bookingNumber,
		customerID:      customerID,
		vehicleID:       vehicleID,
		period:          period,
		status:          StatusPending,
		totalPrice:      totalPrice,
		paidAmount:      0,
		pendingAmount:   totalPrice,
		paymentStatus:   PaymentPending,
		pickupLocation:  pickupLocation,
		dropoffLocation: dropoffLocation,
		notes:           notes,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	bookingNumber string,
	customerID, vehicleID uuid.UUID,
	period Interval,
	status BookingStatus,
	totalPrice, paidAmount, pendingAmount int64,
	paymentStatus PaymentStatus,
	paymentMethod string,
	pickupLocation, dropoffLocation, notes, cancelNote string,
	cancelledAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		bookingNumber:   bookingNumber,
		customerID:      customerID,
		vehicleID:       vehicleID,
		period:          period,
		status:          status,
		totalPrice:      totalPrice,
		paidAmount:      paidAmount,
		pendingAmount:   pendingAmount,
		paymentStatus:   paymentStatus,
		paymentMethod:   paymentMethod,
		pickupLocation:  pickupLocation,
		dropoffLocation: dropoffLocation,
		notes:           notes,
		cancelNote:      cancelNote,
		cancelledAt:     cancelledAt,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// BookingNumber returns the human-readable booking number.
func (b *Booking) BookingNumber() string { return b.bookingNumber }

// CustomerID returns the renting customer's user ID.
func (b *Booking) CustomerID() uuid.UUID { return b.customerID }

// VehicleID returns the reserved vehicle's ID.
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }

// Period returns the rental interval [start, end).
func (b *Booking) Period() Interval { return b.period }

// Status returns the current booking status.
func (b *Booking) Status() BookingStatus { return b.status }

// TotalPrice returns the agreed rental price in paise.
func (b *Booking) TotalPrice() int64 { return b.totalPrice }

// PaidAmount returns the cached sum of the booking's ledger entries.
func (b *Booking) PaidAmount() int64 { return b.paidAmount }

// PendingAmount returns the outstanding balance.
func (b *Booking) PendingAmount() int64 { return b.pendingAmount }

// PaymentStatus returns the settlement state of the ledger.
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }

// PaymentMethod returns the method of the most recent payment, or "".
func (b *Booking) PaymentMethod() string { return b.paymentMethod }

// PickupLocation returns where the vehicle is handed over.
func (b *Booking) PickupLocation() string { return b.pickupLocation }

// DropoffLocation returns where the vehicle is returned.
func (b *Booking) DropoffLocation() string { return b.dropoffLocation }

// Notes returns any additional notes for the booking.
func (b *Booking) Notes() string { return b.notes }

// CancelNote returns the cancellation reason.
func (b *Booking) CancelNote() string { return b.cancelNote }

// CancelledAt returns the time the booking was cancelled.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// SettlementMethod returns the method auto-settlement ledger entries use:
// the booking's recorded payment method, falling back to cash.
func (b *Booking) SettlementMethod() string {
	if b.paymentMethod != "" {
		return b.paymentMethod
	}
	return MethodCash
}

// --- Behavior ---

// Confirm transitions the booking from pending to confirmed.
func (b *Booking) Confirm() error {
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.touch()
	return nil
}

// Initiate transitions the booking from confirmed to initiated (trip started).
func (b *Booking) Initiate() error {
	if !b.status.CanTransitionTo(StatusInitiated) {
		return domain.NewInvalidStateError(string(b.status), string(StatusInitiated))
	}
	b.status = StatusInitiated
	b.touch()
	return nil
}

// Complete transitions the booking to completed and normalizes the ledger.
// It returns the amount that still needs a settlement ledger entry (0 when
// the ledger was already clear). A booking must never sit in completed with
// a balance showing, so the pending amount is folded into paid here and the
// payment status forced to completed either way.
func (b *Booking) Complete() (int64, error) {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return 0, domain.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	settled := b.pendingAmount
	if settled > 0 {
		b.paidAmount = b.totalPrice
		b.pendingAmount = 0
	}
	b.status = StatusCompleted
	b.paymentStatus = PaymentCompleted
	b.touch()
	return settled, nil
}

// Cancel transitions the booking to cancelled if it is not in a terminal state.
func (b *Booking) Cancel(reason string) error {
	if !b.status.CanTransitionTo(StatusCancelled) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	now := time.Now().UTC()
	b.status = StatusCancelled
	b.cancelNote = reason
	b.cancelledAt = &now
	b.touch()
	return nil
}

// Reschedule moves the rental interval. Availability for the new interval
// must be re-checked by the caller inside the same transaction.
func (b *Booking) Reschedule(period Interval) error {
	if b.status.IsTerminal() {
		return domain.NewConflictError("cannot reschedule a closed booking")
	}
	if !period.End.After(period.Start) {
		return domain.NewValidationError("rental end must be after start")
	}
	b.period = period
	b.touch()
	return nil
}

// ReassignVehicle moves the booking to a different vehicle. Availability for
// the new vehicle must be re-checked by the caller inside the same transaction.
func (b *Booking) ReassignVehicle(vehicleID uuid.UUID) error {
	if b.status.IsTerminal() {
		return domain.NewConflictError("cannot reassign a closed booking")
	}
	if vehicleID == uuid.Nil {
		return domain.NewValidationError("vehicle ID is required")
	}
	b.vehicleID = vehicleID
	b.touch()
	return nil
}

// SetPickupLocation updates the handover location.
func (b *Booking) SetPickupLocation(location string) {
	b.pickupLocation = location
	b.touch()
}

// SetDropoffLocation updates the return location.
func (b *Booking) SetDropoffLocation(location string) {
	b.dropoffLocation = location
	b.touch()
}

// SetTotalPrice revises the agreed price and recomputes the outstanding
// balance from what has already been paid.
func (b *Booking) SetTotalPrice(totalPrice int64) error {
	if totalPrice < 0 {
		return domain.NewValidationError("total price must not be negative")
	}
	b.totalPrice = totalPrice
	b.pendingAmount = totalPrice - b.paidAmount
	b.refreshPaymentStatus()
	b.touch()
	return nil
}

// RecordPayment applies an incoming payment to the ledger projection. The
// amount must be positive and must not exceed the outstanding balance.
func (b *Booking) RecordPayment(amount int64, method string) error {
	if amount <= 0 {
		return domain.NewValidationError("payment amount must be positive")
	}
	if amount > b.pendingAmount {
		return domain.NewValidationError("payment amount exceeds pending amount")
	}
	b.paidAmount += amount
	b.pendingAmount -= amount
	if method != "" {
		b.paymentMethod = method
	}
	b.refreshPaymentStatus()
	b.touch()
	return nil
}

// LedgerBalanced reports whether the cached ledger projection is consistent.
func (b *Booking) LedgerBalanced() bool {
	return b.paidAmount+b.pendingAmount == b.totalPrice
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.touch()
}

func (b *Booking) refreshPaymentStatus() {
	switch {
	case b.pendingAmount <= 0:
		b.paymentStatus = PaymentCompleted
	case b.paidAmount > 0:
		b.paymentStatus = PaymentPartiallyPaid
	default:
		b.paymentStatus = PaymentPending
	}
}

func (b *Booking) touch() {
	b.updatedAt = time.Now().UTC()
}
