package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"newsdesk/webclient/models"
)

// Articles fetches the feed. limit caps the result size when positive;
// order selects the server-side sort (e.g. "published_desc").
func (c *Client) Articles(ctx context.Context, limit int, order string) ([]models.Article, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", limit))
	}
	if order != "" {
		q.Set("order", order)
	}
	path := "/articles"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var articles []models.Article
	err := c.do(ctx, http.MethodGet, path, nil, &articles)
	return articles, err
}
