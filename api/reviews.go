package api

import (
	"context"
	"net/http"
	"net/url"

	"rentiva/models"
)

// SubmitReview posts a rating and comment against a booking.
func (c *Client) SubmitReview(ctx context.Context, bookingID string, review models.Review) error {
	return c.do(ctx, http.MethodPost, "/review/"+url.PathEscape(bookingID), review, nil, nil)
}
