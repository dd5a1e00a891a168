// Package events names the Kafka topics the rental service talks on and the
// event payloads that cross them. It imports nothing above the domain so
// every layer can depend on it.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Kafka topics owned by or consumed by the rental service.
const (
	TopicBookingEvents = "rental.booking.events"
	TopicPaymentEvents = "rental.payment.events"
)

// Event kinds published on rental.booking.events.
const (
	BookingCreated   = "booking.created"
	BookingConfirmed = "booking.confirmed"
	BookingInitiated = "booking.trip_initiated"
	BookingExtended  = "booking.extended"
	BookingUpdated   = "booking.updated"
	BookingCompleted = "booking.completed"
	BookingCancelled = "booking.cancelled"
	PaymentRecorded  = "booking.payment_recorded"
	VehicleReturned  = "booking.vehicle_returned"
)

// Event kinds consumed from rental.payment.events.
const (
	PaymentCaptured = "payment.captured"
)

// BookingEvent is the common payload for booking lifecycle notifications.
type BookingEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	CustomerID    uuid.UUID `json:"customer_id"`
	VehicleID     uuid.UUID `json:"vehicle_id"`
	Status        string    `json:"status"`
	StartAt       time.Time `json:"start_at"`
	EndAt         time.Time `json:"end_at"`
	TotalPrice    int64     `json:"total_price"`
	PendingAmount int64     `json:"pending_amount"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// PaymentRecordedEvent announces a new ledger entry.
type PaymentRecordedEvent struct {
	BookingID     uuid.UUID `json:"booking_id"`
	BookingNumber string    `json:"booking_number"`
	Amount        int64     `json:"amount"`
	Method        string    `json:"method"`
	Refund        bool      `json:"refund"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// VehicleReturnedEvent announces a completed settlement.
type VehicleReturnedEvent struct {
	BookingID         uuid.UUID `json:"booking_id"`
	BookingNumber     string    `json:"booking_number"`
	VehicleID         uuid.UUID `json:"vehicle_id"`
	AdditionalCharges int64     `json:"additional_charges"`
	DepositRefund     int64     `json:"deposit_refund"`
	ProcessedBy       uuid.UUID `json:"processed_by"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// PaymentCapturedEvent arrives from the payment gateway when an online
// payment settles.
type PaymentCapturedEvent struct {
	PaymentID  uuid.UUID `json:"payment_id"`
	BookingID  uuid.UUID `json:"booking_id"`
	Amount     int64     `json:"amount"`
	Method     string    `json:"method"`
	Reference  string    `json:"reference"`
	OccurredAt time.Time `json:"occurred_at"`
}
