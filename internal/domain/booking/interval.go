package booking

import (
	"time"

	"github.com/rideon-rentals/service-rental/internal/common/domain"
)

// Interval is a half-open rental period [Start, End). The end instant is
// excluded so back-to-back bookings on the same vehicle do not conflict.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval validates and builds an Interval.
func NewInterval(start, end time.Time) (Interval, error) {
	if start.IsZero() || end.IsZero() {
		return Interval{}, domain.NewValidationError("start and end instants are required")
	}
	if !end.After(start) {
		return Interval{}, domain.NewValidationError("end must be after start")
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether the two half-open intervals intersect:
// other.Start < i.End && other.End > i.Start.
func (i Interval) Overlaps(other Interval) bool {
	return other.Start.Before(i.End) && other.End.After(i.Start)
}

// Hours returns the billable duration in whole hours.
func (i Interval) Hours() int64 {
	return DurationHours(i.Start, i.End)
}
