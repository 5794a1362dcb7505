package api

import (
	"context"
	"net/http"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// PublicStats returns the aggregate counters shown to everyone.
func (c *Client) PublicStats(ctx context.Context) (*model.PublicStats, error) {
	var out model.PublicStats
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/stats/",
		fallback: "Failed to load stats",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
