// Package api is the HTTP client for the rental platform collaborators:
// vehicles, bookings, payments, reviews, notifications and login. All
// traffic is JSON; dates travel as ISO-8601 strings and are parsed before
// they reach the rental pipeline.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"rentiva/session"
)

// DateLayout is the wire format for rental dates.
const DateLayout = "2006-01-02"

// Error is a non-success response from the platform. Message carries the
// server-provided text when the body had one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client talks to the platform API on behalf of one session. Requests are
// throttled client-side so a misbehaving loop cannot hammer the backend.
type Client struct {
	baseURL string
	http    *http.Client
	sess    *session.Session
	limiter *rate.Limiter
}

// NewClient builds a client for the given base URL and session. A nil
// session is allowed for the unauthenticated endpoints.
func NewClient(baseURL string, timeout time.Duration, sess *session.Session) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		sess:    sess,
		// 10 rps with a small burst is plenty for an interactive client.
		limiter: rate.NewLimiter(10, 5),
	}
}

// SetSession swaps the credential attached to subsequent requests.
// Called at login and logout.
func (c *Client) SetSession(sess *session.Session) {
	c.sess = sess
}

// do runs one JSON request. body may be nil; out may be nil when the caller
// does not care about the response payload. Non-2xx statuses come back as
// *Error with the server message extracted when present.
func (c *Client) do(ctx context.Context, method, path string, body, out any, headers map[string]string) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.sess != nil && c.sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.sess.Token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Message: serverMessage(resp.Body)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// serverMessage pulls a human-readable message out of an error body.
// The platform answers with {"message": ...} or {"error": ...}.
func serverMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
