package client

import (
	"context"
	"net/http"

	"newsdesk/webclient/models"
)

// Profile returns the authenticated user's onboarding profile.
func (c *Client) Profile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.do(ctx, http.MethodGet, "/profile/me", nil, &p)
	return p, err
}

// SaveProfile upserts the authenticated user's onboarding profile.
func (c *Client) SaveProfile(ctx context.Context, p models.Profile) error {
	return c.do(ctx, http.MethodPost, "/profile/me", p, nil)
}
