package client

import (
	"context"
	"fmt"
	"net/http"

	"newsdesk/webclient/models"
)

// Bookmarks lists the authenticated user's bookmarked articles, most
// recently bookmarked first.
func (c *Client) Bookmarks(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := c.do(ctx, http.MethodGet, "/bookmarks", nil, &articles)
	return articles, err
}

// HasBookmark reports whether the article is bookmarked server-side.
func (c *Client) HasBookmark(ctx context.Context, articleID int) (bool, error) {
	var out struct {
		Bookmarked bool `json:"bookmarked"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/bookmarks/has/%d", articleID), nil, &out)
	return out.Bookmarked, err
}

// SetBookmark adds or removes the article's bookmark. The server state is
// only trusted when the call succeeds; callers must not flip UI state on
// error.
func (c *Client) SetBookmark(ctx context.Context, articleID int, on bool) error {
	method := http.MethodPost
	if !on {
		method = http.MethodDelete
	}
	return c.do(ctx, method, fmt.Sprintf("/bookmarks/%d", articleID), nil, nil)
}
