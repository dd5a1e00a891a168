package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInterval(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	_, err := NewInterval(start, start)
	assert.Error(t, err)

	_, err = NewInterval(start, start.Add(-time.Hour))
	assert.Error(t, err)

	iv, err := NewInterval(start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), iv.Hours())
}

func TestInterval_Overlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	at := func(h int) time.Time { return base.Add(time.Duration(h) * time.Hour) }

	a := Interval{Start: at(10), End: at(20)}

	// Plain overlap in both directions.
	assert.True(t, a.Overlaps(Interval{Start: at(15), End: at(25)}))
	assert.True(t, a.Overlaps(Interval{Start: at(5), End: at(15)}))

	// Containment either way.
	assert.True(t, a.Overlaps(Interval{Start: at(12), End: at(18)}))
	assert.True(t, a.Overlaps(Interval{Start: at(5), End: at(25)}))

	// Half-open: a booking ending exactly when another starts does not clash.
	assert.False(t, a.Overlaps(Interval{Start: at(20), End: at(30)}))
	assert.False(t, a.Overlaps(Interval{Start: at(0), End: at(10)}))

	// Disjoint.
	assert.False(t, a.Overlaps(Interval{Start: at(25), End: at(30)}))
}
