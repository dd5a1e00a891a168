package booking

import (
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
)

// Payment methods recorded on ledger entries.
const (
	MethodCash   = "cash"
	MethodOnline = "online"
	MethodCard   = "card"
	MethodUPI    = "upi"
)

// Ledger entry statuses.
const (
	EntryCompleted = "completed"
	EntryRefund    = "refund"
)

// PaymentEntry is one row in a booking's append-only payment ledger. The
// amount is signed: negative entries are outgoing cash (refunds). The sum of
// a booking's entries is the authoritative paid amount; the booking's cached
// paid_amount column is kept in sync within the same transaction that
// appends an entry.
type PaymentEntry struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Method    string    `json:"method"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

// NewPaymentEntry builds a completed incoming payment entry.
func NewPaymentEntry(bookingID uuid.UUID, amount int64, method, reference string) (*PaymentEntry, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("payment amount must be positive")
	}
	if method == "" {
		method = MethodCash
	}
	return &PaymentEntry{
		ID:        uuid.New(),
		BookingID: bookingID,
		Amount:    amount,
		Method:    method,
		Status:    EntryCompleted,
		Reference: reference,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// NewRefundEntry builds a negative outgoing entry (deposit refund or similar).
// The amount argument is the positive sum being paid out.
func NewRefundEntry(bookingID uuid.UUID, amount int64, method, reference string) (*PaymentEntry, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if amount <= 0 {
		return nil, domain.NewValidationError("refund amount must be positive")
	}
	if method == "" {
		method = MethodCash
	}
	return &PaymentEntry{
		ID:        uuid.New(),
		BookingID: bookingID,
		Amount:    -amount,
		Method:    method,
		Status:    EntryRefund,
		Reference: reference,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsRefund reports whether the entry is an outgoing payment.
func (e *PaymentEntry) IsRefund() bool {
	return e.Amount < 0
}
