//go:build integration

package main_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rideon-rentals/service-rental/internal/application"
	"github.com/rideon-rentals/service-rental/internal/common/domain"
	rentalEvents "github.com/rideon-rentals/service-rental/internal/events"
	"github.com/rideon-rentals/service-rental/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentClose_OneSucceeds verifies that two staff members closing the
// same booking at once resolve to exactly one settlement: the loser hits the
// row lock or the unique return index and gets a conflict.
func TestConcurrentClose_OneSucceeds(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()
	defer func() { _ = stack.Consumer.Close() }()

	vehicleID := seedVehicle(t, stack)
	dto := seedInitiatedBooking(t, stack, vehicleID)

	req := application.CloseBookingRequest{
		ConditionNotes:   "all good",
		OdometerReading:  1200,
		FuelLevel:        "full",
		CollectionMethod: "cash",
		ProcessedBy:      uuid.New(),
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = stack.Settlement.CloseBooking(context.Background(), dto.ID, req)
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case domain.IsConflict(err):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one close should succeed")
	assert.Equal(t, 1, conflicts, "the other close should conflict")

	// One return record, one settlement entry, booking completed.
	var returnCount int64
	require.NoError(t, infra.DB.Model(&repository.VehicleReturnModel{}).
		Where("booking_id = ?", dto.ID).Count(&returnCount).Error)
	assert.Equal(t, int64(1), returnCount)

	var paymentCount int64
	require.NoError(t, infra.DB.Model(&repository.PaymentModel{}).
		Where("booking_id = ?", dto.ID).Count(&paymentCount).Error)
	assert.Equal(t, int64(1), paymentCount)

	model := waitForBookingStatus(t, infra.DB, dto.ID, "completed", 5*time.Second)
	assert.Equal(t, model.TotalPrice, model.PaidAmount)
	assert.Equal(t, int64(0), model.PendingAmount)

	// Vehicle is available again.
	var vehicle repository.VehicleModel
	require.NoError(t, infra.DB.Where("id = ?", vehicleID).First(&vehicle).Error)
	assert.True(t, vehicle.IsAvailable)

	// Releasing a vehicle that no longer has a row is a no-op, not an error
	// that would roll back a close-out.
	vehicleRepo := repository.NewGormVehicleRepository(infra.DB)
	assert.NoError(t, vehicleRepo.SetAvailability(context.Background(), uuid.New(), true))
}

// TestPaymentCaptured_AppliesToLedger verifies that a captured payment event
// published by the gateway lands in the booking's ledger.
func TestPaymentCaptured_AppliesToLedger(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()
	defer func() { _ = stack.Consumer.Close() }()

	vehicleID := seedVehicle(t, stack)
	dto := seedInitiatedBooking(t, stack, vehicleID)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	evt := rentalEvents.PaymentCapturedEvent{
		PaymentID:  uuid.New(),
		BookingID:  dto.ID,
		Amount:     dto.TotalPrice,
		Method:     "online",
		Reference:  "gw-txn-42",
		OccurredAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, rentalEvents.TopicPaymentEvents,
		"service-payment", rentalEvents.PaymentCaptured, evt)

	// Assert: the booking's ledger projection catches up.
	require.Eventually(t, func() bool {
		var model repository.BookingModel
		if err := infra.DB.Where("id = ?", dto.ID).First(&model).Error; err != nil {
			return false
		}
		return model.PaidAmount == dto.TotalPrice && model.PaymentStatus == "completed"
	}, 15*time.Second, 200*time.Millisecond, "captured payment was not applied")

	var entry repository.PaymentModel
	require.NoError(t, infra.DB.Where("booking_id = ?", dto.ID).First(&entry).Error)
	assert.Equal(t, dto.TotalPrice, entry.Amount)
	assert.Equal(t, "online", entry.Method)
	assert.Equal(t, "gw-txn-42", entry.Reference)

	// Assert: a payment_recorded notification went out on booking events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, rentalEvents.TopicBookingEvents,
		rentalEvents.PaymentRecorded, 15*time.Second)

	var recorded rentalEvents.PaymentRecordedEvent
	require.NoError(t, ce.ParseData(&recorded))
	assert.Equal(t, dto.ID, recorded.BookingID)
	assert.Equal(t, dto.TotalPrice, recorded.Amount)
	assert.False(t, recorded.Refund)
}

// TestOverlapRace_OneBookingWins verifies that two customers racing for the
// same vehicle and period end up with one booking.
func TestOverlapRace_OneBookingWins(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.Cleanup()
	defer func() { _ = stack.Consumer.Close() }()

	vehicleID := seedVehicle(t, stack)
	start := time.Now().UTC().Add(time.Hour).Truncate(time.Hour)

	req := application.CreateBookingRequest{
		CustomerID: uuid.New(),
		VehicleID:  vehicleID,
		StartAt:    start,
		EndAt:      start.Add(24 * time.Hour),
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := req
			r.CustomerID = uuid.New()
			_, errs[i] = stack.Booking.CreateBooking(context.Background(), r.CustomerID, r)
		}(i)
	}
	wg.Wait()

	// The vehicle row lock serializes the two transactions, so exactly one
	// creation succeeds and the loser sees the overlap.
	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.True(t, domain.IsConflict(err), "loser should get a conflict, got: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)

	var bookingCount int64
	require.NoError(t, infra.DB.Model(&repository.BookingModel{}).
		Where("vehicle_id = ?", vehicleID).Count(&bookingCount).Error)
	assert.Equal(t, int64(1), bookingCount)
}
