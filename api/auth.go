package api

import (
	"context"
	"net/http"

	"rentiva/session"
)

// Login exchanges credentials for a bearer token and builds the session
// from it. The returned session is also attached to this client.
func (c *Client) Login(ctx context.Context, username, password string) (*session.Session, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/auth/login", body, &resp, nil); err != nil {
		return nil, err
	}

	sess, err := session.FromToken(resp.Token)
	if err != nil {
		return nil, err
	}
	c.SetSession(sess)
	return sess, nil
}

// Logout clears the attached session. Purely client-side; the token simply
// stops being sent.
func (c *Client) Logout() {
	if c.sess != nil {
		c.sess.Clear()
	}
	c.sess = nil
}
