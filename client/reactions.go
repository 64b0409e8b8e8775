package client

import (
	"context"
	"fmt"
	"net/http"

	"newsdesk/webclient/models"
)

// ReactionKind values accepted by the reactions endpoints.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction returns the user's current reaction for the article: "like",
// "dislike" or empty for none.
func (c *Client) Reaction(ctx context.Context, articleID int) (string, error) {
	var out struct {
		Reaction *string `json:"reaction"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/reactions/%d", articleID), nil, &out)
	if err != nil || out.Reaction == nil {
		return "", err
	}
	return *out.Reaction, nil
}

// ToggleLike toggles the like reaction. Liking a liked article clears
// it; liking a disliked one switches the kind.
func (c *Client) ToggleLike(ctx context.Context, articleID int) (models.ReactionState, error) {
	var state models.ReactionState
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/reactions/like/%d", articleID), nil, &state)
	return state, err
}

// ToggleDislike toggles the dislike reaction, symmetric to ToggleLike.
func (c *Client) ToggleDislike(ctx context.Context, articleID int) (models.ReactionState, error) {
	var state models.ReactionState
	err := c.do(ctx, http.MethodPost, fmt.Sprintf("/reactions/dislike/%d", articleID), nil, &state)
	return state, err
}

// ClearReaction removes any reaction for the article.
func (c *Client) ClearReaction(ctx context.Context, articleID int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reactions/%d", articleID), nil, nil)
}
