package api

import (
	"context"
	"net/http"
	"net/url"
)

// PaymentSession is the redirect target for an online payment.
type PaymentSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url,omitempty"`
}

// CreatePaymentSession opens a checkout session for a confirmed booking.
// The caller hands the session ID to the payment provider's redirect.
func (c *Client) CreatePaymentSession(ctx context.Context, bookingID string) (*PaymentSession, error) {
	var sess PaymentSession
	path := "/payment/create-checkout-session/" + url.PathEscape(bookingID)
	if err := c.do(ctx, http.MethodPost, path, struct{}{}, &sess, nil); err != nil {
		return nil, err
	}
	return &sess, nil
}

// UpdatePaymentStatus records the outcome of a payment attempt.
func (c *Client) UpdatePaymentStatus(ctx context.Context, bookingID, status string) error {
	body := map[string]string{"payment_status": status}
	path := "/payment/" + url.PathEscape(bookingID) + "/payment-status"
	return c.do(ctx, http.MethodPut, path, body, nil, nil)
}
