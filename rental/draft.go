package rental

import (
	"errors"
	"strings"

	"rentiva/models"
)

var (
	ErrEmptyLocation    = errors.New("pickup location is required")
	ErrMissingVehicleID = errors.New("vehicle ID not found")
)

// ResolveVehicleID picks the bookable identifier off a vehicle record.
// Search results carry an explicit vehicleId, plain listings carry _id, and
// booking rows embed the vehicle as a nested reference. First non-empty
// wins, in that order.
func ResolveVehicleID(v models.Vehicle) string {
	if v.VehicleID != "" {
		return v.VehicleID
	}
	if v.ID != "" {
		return v.ID
	}
	if v.Vehicle != nil && v.Vehicle.ID != "" {
		return v.Vehicle.ID
	}
	return ""
}

// BuildDraft assembles the reservation draft handed to checkout: the chosen
// vehicle, the validated date range, the derived pricing and the pickup
// location. The returned draft is a value; there is no way to edit it short
// of building a new one.
func BuildDraft(v models.Vehicle, dates models.DateRange, pickupLocation string) (models.ReservationDraft, error) {
	if strings.TrimSpace(pickupLocation) == "" {
		return models.ReservationDraft{}, ErrEmptyLocation
	}

	id := ResolveVehicleID(v)
	if id == "" {
		return models.ReservationDraft{}, ErrMissingVehicleID
	}

	pricing := ComputePricing(dates.PickUp, dates.DropOff, v.PricePerDay)
	return models.ReservationDraft{
		VehicleID:      id,
		Brand:          v.Brand,
		Model:          v.Model,
		Year:           v.Year,
		Image:          v.Image,
		PricePerDay:    v.PricePerDay,
		PickUpDate:     dates.PickUp,
		DropOffDate:    dates.DropOff,
		DurationDays:   pricing.DurationDays,
		TotalPrice:     pricing.TotalPrice,
		PickupLocation: pickupLocation,
	}, nil
}
