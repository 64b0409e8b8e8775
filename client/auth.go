package client

import (
	"context"
	"net/http"

	"newsdesk/webclient/models"
)

// Register creates an account. The caller still has to log in afterwards.
func (c *Client) Register(ctx context.Context, email, password, username string) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/auth/register", models.RegisterRequest{
		Email:    email,
		Password: password,
		Username: username,
	}, &user)
	return user, err
}

// Login exchanges credentials for an access token. The token is not
// installed on the client; callers decide whether to adopt it.
func (c *Client) Login(ctx context.Context, email, password string) (models.Token, error) {
	var token models.Token
	err := c.do(ctx, http.MethodPost, "/auth/login", models.LoginRequest{
		Email:    email,
		Password: password,
	}, &token)
	return token, err
}

// Me returns the authenticated user.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user)
	return user, err
}

// Remember exchanges the current token for a longer-lived one.
func (c *Client) Remember(ctx context.Context) (models.Token, error) {
	var token models.Token
	err := c.do(ctx, http.MethodPost, "/auth/remember", nil, &token)
	return token, err
}
