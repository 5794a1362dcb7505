package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// Analyze sends a message for scam risk analysis. The message is trimmed.
// The session token is attached when present so the check lands in the
// user's history.
func (c *Client) Analyze(ctx context.Context, message string) (*model.AnalyzeResult, error) {
	var out model.AnalyzeResult
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/analyze/",
		auth:     authOptional,
		fallback: "Analysis failed",
		jsonBody: map[string]string{"message": strings.TrimSpace(message)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckLink sends a URL for a safety check. The URL is trimmed.
func (c *Client) CheckLink(ctx context.Context, rawURL string) (*model.LinkCheckResult, error) {
	var out model.LinkCheckResult
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/link/check/",
		auth:     authOptional,
		fallback: "Link check failed",
		jsonBody: map[string]string{"url": strings.TrimSpace(rawURL)},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
