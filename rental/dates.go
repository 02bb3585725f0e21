package rental

import (
	"errors"
	"time"
)

var (
	ErrPastPickup    = errors.New("pick-up date must be today or later")
	ErrInvertedRange = errors.New("drop-off date must not be before the pick-up date")
)

// now is swapped out in tests.
var now = time.Now

// truncateToDay drops the time-of-day so comparisons are date-only.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ValidateDates checks a pick-up/drop-off pair. Pick-up must be today or
// later (date-only comparison) and must not come after drop-off. Equal dates
// are fine; zero-day rentals are allowed. Each call starts from a clean
// slate, earlier failures are not accumulated.
func ValidateDates(pickUp, dropOff time.Time) error {
	today := truncateToDay(now())
	if truncateToDay(pickUp).Before(today) {
		return ErrPastPickup
	}
	if pickUp.After(dropOff) {
		return ErrInvertedRange
	}
	return nil
}
