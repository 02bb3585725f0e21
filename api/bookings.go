package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"rentiva/models"
)

// CreateBookingRequest is the booking-creation payload. Dates are ISO-8601.
type CreateBookingRequest struct {
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalPrice     float64 `json:"total_price"`
	PickupLocation string  `json:"pickupLocation"`
	PaymentMethod  string  `json:"payment_method"`
}

// CreateBooking submits one reservation for the given vehicle. Each call
// carries a fresh idempotency key so a retried submit cannot double-book if
// the first attempt actually landed.
func (c *Client) CreateBooking(ctx context.Context, vehicleID string, req CreateBookingRequest) (*models.Booking, error) {
	var booking models.Booking
	headers := map[string]string{"Idempotency-Key": uuid.NewString()}
	path := "/bookings/" + url.PathEscape(vehicleID)
	if err := c.do(ctx, http.MethodPost, path, req, &booking, headers); err != nil {
		return nil, err
	}
	return &booking, nil
}

// UserBookings fetches the session user's booking history.
func (c *Client) UserBookings(ctx context.Context) ([]models.Booking, error) {
	var resp struct {
		Bookings []models.Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, "/bookings/bookUser", nil, &resp, nil); err != nil {
		return nil, err
	}
	return resp.Bookings, nil
}

// CancelBooking flips a pending booking to cancelled.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) error {
	body := map[string]string{"status": models.BookingCancelled}
	return c.do(ctx, http.MethodPut, "/bookings/"+url.PathEscape(bookingID), body, nil, nil)
}

// FilterByStatus narrows a booking list to one status; "all" passes
// everything through.
func FilterByStatus(bookings []models.Booking, status string) []models.Booking {
	if status == "" || status == "all" {
		return bookings
	}
	var out []models.Booking
	for _, b := range bookings {
		if b.Status == status {
			out = append(out, b)
		}
	}
	return out
}
