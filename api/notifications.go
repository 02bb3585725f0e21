package api

import (
	"context"
	"net/http"
	"net/url"

	"rentiva/models"
)

// UnreadNotifications fetches the unread list for the session user.
func (c *Client) UnreadNotifications(ctx context.Context) ([]models.Notification, error) {
	var items []models.Notification
	if err := c.do(ctx, http.MethodGet, "/notification/unread/user", nil, &items, nil); err != nil {
		return nil, err
	}
	return items, nil
}

// UnreadCount fetches the authoritative unread counter.
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var resp struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/notification/unread/count/user", nil, &resp, nil); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// MarkAllRead marks every unread notification read server-side.
func (c *Client) MarkAllRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notification/mark-all-read/user", struct{}{}, nil, nil)
}

// MarkRead marks one notification read server-side.
func (c *Client) MarkRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/notification/"+url.PathEscape(id)+"/read", struct{}{}, nil, nil)
}
