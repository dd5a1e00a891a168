package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPeriod(t *testing.T) Interval {
	t.Helper()
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	iv, err := NewInterval(start, start.Add(48*time.Hour))
	require.NoError(t, err)
	return iv
}

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	bk, err := NewBooking(uuid.New(), uuid.New(), testPeriod(t), 120000, "Koramangala", "Koramangala", "")
	require.NoError(t, err)
	return bk
}

func TestNewBooking(t *testing.T) {
	bk := newTestBooking(t)

	assert.Equal(t, StatusPending, bk.Status())
	assert.Equal(t, int64(120000), bk.TotalPrice())
	assert.Equal(t, int64(0), bk.PaidAmount())
	assert.Equal(t, int64(120000), bk.PendingAmount())
	assert.Equal(t, PaymentPending, bk.PaymentStatus())
	assert.True(t, bk.LedgerBalanced())
	assert.Len(t, bk.BookingNumber(), 9)
	assert.Equal(t, "RB-", bk.BookingNumber()[:3])
}

func TestNewBooking_Validation(t *testing.T) {
	period := testPeriod(t)

	_, err := NewBooking(uuid.Nil, uuid.New(), period, 1000, "", "", "")
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.Nil, period, 1000, "", "", "")
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.New(), period, -1, "", "", "")
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.New(), Interval{Start: period.End, End: period.Start}, 1000, "", "", "")
	assert.Error(t, err)
}

func TestBooking_HappyPathLifecycle(t *testing.T) {
	bk := newTestBooking(t)

	require.NoError(t, bk.Confirm())
	assert.Equal(t, StatusConfirmed, bk.Status())
	assert.True(t, bk.Status().HoldsVehicle())

	require.NoError(t, bk.Initiate())
	assert.Equal(t, StatusInitiated, bk.Status())
	assert.True(t, bk.Status().HoldsVehicle())

	settled, err := bk.Complete()
	require.NoError(t, err)
	assert.Equal(t, int64(120000), settled)
	assert.Equal(t, StatusCompleted, bk.Status())
	assert.True(t, bk.Status().IsTerminal())
	assert.False(t, bk.Status().HoldsVehicle())
}

func TestBooking_InvalidTransitions(t *testing.T) {
	bk := newTestBooking(t)

	// Pending cannot be initiated or completed directly.
	assert.Error(t, bk.Initiate())
	_, err := bk.Complete()
	assert.Error(t, err)

	require.NoError(t, bk.Confirm())
	// Confirmed cannot be confirmed again or completed directly.
	assert.Error(t, bk.Confirm())
	_, err = bk.Complete()
	assert.Error(t, err)

	require.NoError(t, bk.Initiate())
	_, err = bk.Complete()
	require.NoError(t, err)

	// Terminal states reject everything, including cancellation.
	assert.Error(t, bk.Confirm())
	assert.Error(t, bk.Cancel("too late"))
}

func TestBooking_CancelFromAnyNonTerminalState(t *testing.T) {
	for _, setup := range []func(*Booking){
		func(bk *Booking) {},
		func(bk *Booking) { _ = bk.Confirm() },
		func(bk *Booking) { _ = bk.Confirm(); _ = bk.Initiate() },
	} {
		bk := newTestBooking(t)
		setup(bk)

		require.NoError(t, bk.Cancel("customer request"))
		assert.Equal(t, StatusCancelled, bk.Status())
		assert.Equal(t, "customer request", bk.CancelNote())
		assert.NotNil(t, bk.CancelledAt())
	}
}

func TestBooking_CompleteSettlesLedger(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Confirm())
	require.NoError(t, bk.RecordPayment(50000, MethodUPI))
	require.NoError(t, bk.Initiate())

	assert.Equal(t, PaymentPartiallyPaid, bk.PaymentStatus())

	settled, err := bk.Complete()
	require.NoError(t, err)
	assert.Equal(t, int64(70000), settled)
	assert.Equal(t, int64(120000), bk.PaidAmount())
	assert.Equal(t, int64(0), bk.PendingAmount())
	assert.Equal(t, PaymentCompleted, bk.PaymentStatus())
	assert.True(t, bk.LedgerBalanced())
}

func TestBooking_CompleteWithClearLedger(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Confirm())
	require.NoError(t, bk.RecordPayment(120000, MethodCard))
	require.NoError(t, bk.Initiate())

	settled, err := bk.Complete()
	require.NoError(t, err)
	assert.Equal(t, int64(0), settled)
	assert.Equal(t, PaymentCompleted, bk.PaymentStatus())
}

func TestBooking_RecordPayment(t *testing.T) {
	bk := newTestBooking(t)

	assert.Error(t, bk.RecordPayment(0, MethodCash))
	assert.Error(t, bk.RecordPayment(-100, MethodCash))
	assert.Error(t, bk.RecordPayment(120001, MethodCash))

	require.NoError(t, bk.RecordPayment(120000, MethodOnline))
	assert.Equal(t, PaymentCompleted, bk.PaymentStatus())
	assert.Equal(t, MethodOnline, bk.SettlementMethod())
	assert.True(t, bk.LedgerBalanced())
}

func TestBooking_SettlementMethodDefaultsToCash(t *testing.T) {
	bk := newTestBooking(t)
	assert.Equal(t, MethodCash, bk.SettlementMethod())
}

func TestBooking_SetTotalPriceRebalances(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.RecordPayment(50000, MethodCash))

	require.NoError(t, bk.SetTotalPrice(200000))
	assert.Equal(t, int64(50000), bk.PaidAmount())
	assert.Equal(t, int64(150000), bk.PendingAmount())
	assert.Equal(t, PaymentPartiallyPaid, bk.PaymentStatus())
	assert.True(t, bk.LedgerBalanced())
}

func TestBooking_RescheduleRejectedWhenTerminal(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Cancel("changed plans"))

	period := testPeriod(t)
	assert.Error(t, bk.Reschedule(period))
	assert.Error(t, bk.ReassignVehicle(uuid.New()))
}

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusInitiated))
	assert.False(t, StatusPending.CanTransitionTo(StatusCompleted))

	assert.True(t, StatusConfirmed.CanTransitionTo(StatusInitiated))
	assert.False(t, StatusConfirmed.CanTransitionTo(StatusCompleted))

	assert.True(t, StatusInitiated.CanTransitionTo(StatusCompleted))
	assert.True(t, StatusInitiated.CanTransitionTo(StatusCancelled))

	for _, terminal := range []BookingStatus{StatusCompleted, StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, target := range []BookingStatus{StatusPending, StatusConfirmed, StatusInitiated, StatusCompleted, StatusCancelled} {
			assert.False(t, terminal.CanTransitionTo(target))
		}
	}
}

func TestPaymentEntries(t *testing.T) {
	bookingID := uuid.New()

	entry, err := NewPaymentEntry(bookingID, 50000, MethodUPI, "txn-123")
	require.NoError(t, err)
	assert.Equal(t, int64(50000), entry.Amount)
	assert.False(t, entry.IsRefund())

	refund, err := NewRefundEntry(bookingID, 20000, MethodCash, "deposit refund")
	require.NoError(t, err)
	assert.Equal(t, int64(-20000), refund.Amount)
	assert.True(t, refund.IsRefund())
	assert.Equal(t, EntryRefund, refund.Status)

	_, err = NewPaymentEntry(bookingID, 0, MethodCash, "")
	assert.Error(t, err)
	_, err = NewRefundEntry(bookingID, -5, MethodCash, "")
	assert.Error(t, err)
}
