package fleet

import (
	"testing"

	"github.com/rideon-rentals/service-rental/internal/domain/booking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRates() booking.RateSchedule {
	return booking.RateSchedule{HourlyRate: 5000, Rate7Day: 500000}
}

func TestNewVehicle(t *testing.T) {
	v, err := NewVehicle("Honda Activa", TypeScooter, "Indiranagar", testRates(), 12, "125cc scooter", false)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, v.Status())
	assert.True(t, v.IsAvailable())
	assert.Equal(t, int64(12), v.MinBookingHours())
}

func TestNewVehicle_Validation(t *testing.T) {
	_, err := NewVehicle("", TypeScooter, "", testRates(), 0, "", false)
	assert.Error(t, err)

	_, err = NewVehicle("Honda Activa", VehicleType("truck"), "", testRates(), 0, "", false)
	assert.Error(t, err)

	_, err = NewVehicle("Honda Activa", TypeScooter, "", booking.RateSchedule{}, 0, "", false)
	assert.Error(t, err)

	_, err = NewVehicle("Honda Activa", TypeScooter, "", testRates(), -1, "", false)
	assert.Error(t, err)
}

func TestVehicle_MaintenanceCycle(t *testing.T) {
	v, err := NewVehicle("Honda Activa", TypeScooter, "", testRates(), 0, "", false)
	require.NoError(t, err)

	require.NoError(t, v.EnterMaintenance())
	assert.Equal(t, StatusMaintenance, v.Status())

	require.NoError(t, v.Reactivate())
	assert.Equal(t, StatusActive, v.Status())
}

func TestVehicle_RetireIsFinal(t *testing.T) {
	v, err := NewVehicle("Honda Activa", TypeScooter, "", testRates(), 0, "", false)
	require.NoError(t, err)

	v.Retire()
	assert.Equal(t, StatusRetired, v.Status())
	assert.False(t, v.IsAvailable())

	assert.Error(t, v.Reactivate())
	assert.Error(t, v.EnterMaintenance())
}

func TestVehicle_UpdateRates(t *testing.T) {
	v, err := NewVehicle("Honda Activa", TypeScooter, "", testRates(), 0, "", false)
	require.NoError(t, err)

	assert.Error(t, v.UpdateRates(booking.RateSchedule{HourlyRate: 0}))

	newRates := booking.RateSchedule{HourlyRate: 6000, Rate30Day: 1500000}
	require.NoError(t, v.UpdateRates(newRates))
	assert.Equal(t, newRates, v.Rates())
}
