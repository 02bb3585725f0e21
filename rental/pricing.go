package rental

import (
	"math"
	"time"
)

// Pricing is the derived duration and total for a rental window.
type Pricing struct {
	DurationDays int
	TotalPrice   float64
}

// ComputePricing derives the rental duration and total price. Duration is
// the day count between the two dates rounded up, clamped at zero so a
// range the validator should have rejected can never produce a negative
// duration here. A zero-day rental prices at zero, which is a valid result.
// No rounding is applied to the total; currency formatting is the caller's
// concern. Pure and O(1), callers recompute on every input change.
func ComputePricing(pickUp, dropOff time.Time, pricePerDay float64) Pricing {
	diff := dropOff.Sub(pickUp)
	if diff < 0 {
		diff = 0
	}
	days := int(math.Ceil(diff.Hours() / 24))
	return Pricing{
		DurationDays: days,
		TotalPrice:   pricePerDay * float64(days),
	}
}
