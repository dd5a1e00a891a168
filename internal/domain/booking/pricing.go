package booking

import (
	"math"
	"time"

	"github.com/rideon-rentals/service-rental/internal/common/domain"
)

// RateSchedule holds a vehicle's rental rates in paise. A tier rate of zero
// means the tier is not offered for that vehicle.
type RateSchedule struct {
	HourlyRate int64 `json:"hourly_rate"`
	Rate7Day   int64 `json:"rate_7_day"`
	Rate15Day  int64 `json:"rate_15_day"`
	Rate30Day  int64 `json:"rate_30_day"`
}

// pricingTier is one flat-rate block. The grace window absorbs whole-day
// rounding just past the boundary so a 30.5-day stay still gets the flat
// 30-day rate instead of an extra partial tier.
type pricingTier struct {
	days      int64
	graceDays int64
}

// Tiers are resolved longest first; each applies only when its rate is set.
var pricingTiers = []pricingTier{
	{days: 30, graceDays: 31},
	{days: 15, graceDays: 16},
	{days: 7, graceDays: 8},
}

// sanitized returns a copy with negative rates treated as unconfigured.
func (s RateSchedule) sanitized() RateSchedule {
	if s.HourlyRate < 0 {
		s.HourlyRate = 0
	}
	if s.Rate7Day < 0 {
		s.Rate7Day = 0
	}
	if s.Rate15Day < 0 {
		s.Rate15Day = 0
	}
	if s.Rate30Day < 0 {
		s.Rate30Day = 0
	}
	return s
}

// tierRate returns the configured rate for a tier size, or 0.
func (s RateSchedule) tierRate(days int64) int64 {
	switch days {
	case 30:
		return s.Rate30Day
	case 15:
		return s.Rate15Day
	case 7:
		return s.Rate7Day
	}
	return 0
}

// RateFromFloat converts a rupee amount from an external source into paise.
// Non-finite or negative values normalize to 0 (tier not configured).
func RateFromFloat(f float64) int64 {
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	return int64(math.Round(f * 100))
}

// DurationHours returns the billable duration in whole hours, rounding any
// partial hour up.
func DurationHours(start, end time.Time) int64 {
	d := end.Sub(start)
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	return hours
}

// Quote computes the total rental price in paise for the interval
// [start, end) under the tiered, minimum-duration pricing scheme.
//
// Long stays decompose into full flat-rate blocks (longest tier first) plus a
// remainder that is re-priced by the same rules, so a 45-day stay combines
// one 30-day block with a 15-day tier without a combinatorial rate table.
// The weekday/weekend minimum for the hourly base case is evaluated once,
// from the weekday of the original start instant.
func Quote(schedule RateSchedule, start, end time.Time) (int64, error) {
	if !end.After(start) {
		return 0, domain.NewValidationError("rental end must be after start")
	}

	s := schedule.sanitized()
	weekend := startsOnWeekend(start)
	remaining := DurationHours(start, end)

	var total int64
	for remaining > 0 {
		tierApplied := false
		for _, tier := range pricingTiers {
			rate := s.tierRate(tier.days)
			if rate <= 0 || remaining < tier.days*24 {
				continue
			}
			if remaining <= tier.graceDays*24 {
				total += rate
				remaining = 0
			} else {
				blockHours := tier.days * 24
				total += (remaining / blockHours) * rate
				remaining = remaining % blockHours
			}
			tierApplied = true
			break
		}
		if !tierApplied {
			total += hourlyCharge(s.HourlyRate, remaining, weekend)
			remaining = 0
		}
	}
	return total, nil
}

// hourlyCharge prices a sub-tier duration at the hourly rate with the
// day-of-week minimum: 24 billed hours for weekend starts, 12 for weekday
// bookings at or under 12 hours.
func hourlyCharge(hourlyRate, hours int64, weekend bool) int64 {
	if weekend {
		if hours < 24 {
			hours = 24
		}
		return hours * hourlyRate
	}
	if hours <= 12 {
		return 12 * hourlyRate
	}
	return hours * hourlyRate
}

func startsOnWeekend(start time.Time) bool {
	wd := start.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
