package models

import "time"

// PaymentMethod is the enumerated set accepted at checkout.
type PaymentMethod string

const (
	PaymentStripe PaymentMethod = "stripe"
	PaymentCash   PaymentMethod = "cash"
)

// Booking lifecycle statuses as the server reports them.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
)

// Payment statuses tracked on a booking.
const (
	PaymentUnpaid     = "unpaid"
	PaymentProcessing = "processing"
	PaymentPaid       = "paid"
	PaymentFailed     = "failed"
)

// Vehicle is a rental listing as returned by the vehicles endpoints.
// Immutable once fetched; checkout never writes to it. Search results carry
// the requested rental dates alongside the vehicle (see api.SearchByBrand).
// ID resolution for booking checks VehicleID, then ID, then the nested
// Vehicle reference, first non-empty wins.
type Vehicle struct {
	ID          string    `json:"_id,omitempty"`
	VehicleID   string    `json:"vehicleId,omitempty"`
	Vehicle     *Vehicle  `json:"vehicle,omitempty"`
	Brand       string    `json:"brand"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	Image       string    `json:"image,omitempty"`
	PricePerDay float64   `json:"price_per_day"`
	Available   bool      `json:"available"`
	Ratings     []float64 `json:"ratings,omitempty"`
	PickUpDate  string    `json:"pickUpDate,omitempty"`
	DropOffDate string    `json:"dropOffDate,omitempty"`
}

// DateRange is a validated pick-up/drop-off pair.
type DateRange struct {
	PickUp  time.Time
	DropOff time.Time
}

// ReservationDraft is the computed bundle handed from vehicle selection to
// checkout. Built once by rental.BuildDraft and passed by value; edits mean
// building a new draft.
type ReservationDraft struct {
	VehicleID      string
	Brand          string
	Model          string
	Year           int
	Image          string
	PricePerDay    float64
	PickUpDate     time.Time
	DropOffDate    time.Time
	DurationDays   int
	TotalPrice     float64
	PickupLocation string
}

// Booking is a reservation record as returned by the bookings endpoints.
type Booking struct {
	ID             string   `json:"_id"`
	VehicleID      string   `json:"vehicle_id"`
	Vehicle        *Vehicle `json:"vehicle,omitempty"`
	UserID         string   `json:"user_id,omitempty"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	TotalPrice     float64  `json:"total_price"`
	PickupLocation string   `json:"pickupLocation"`
	PaymentMethod  string   `json:"payment_method"`
	PaymentStatus  string   `json:"payment_status,omitempty"`
	Status         string   `json:"status"`
	HasReview      bool     `json:"hasReview,omitempty"`
	CreatedAt      int64    `json:"createdAt,omitempty"`
}

// VehicleSummary is the slice of vehicle data forwarded to the success
// screen next to the server booking record.
type VehicleSummary struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Image string `json:"image,omitempty"`
}

// Notification is one entry in the unread list.
type Notification struct {
	ID        string `json:"_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	IsRead    bool   `json:"isRead"`
}

// Review is a rating + comment attached to a completed booking.
type Review struct {
	BookingID string  `json:"bookingId,omitempty"`
	Rating    float64 `json:"rating"`
	Comment   string  `json:"comment"`
}

// Summary returns the vehicle fields carried on a draft, for the
// confirmation checkpoint and the success screen.
func (d ReservationDraft) Summary() VehicleSummary {
	return VehicleSummary{Brand: d.Brand, Model: d.Model, Year: d.Year, Image: d.Image}
}
