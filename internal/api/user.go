package api

import (
	"context"
	"net/http"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// Profile returns the signed-in user's profile.
func (c *Client) Profile(ctx context.Context) (*model.UserProfile, error) {
	var out model.UserProfile
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/user/profile/",
		auth:     authRequired,
		fallback: "Failed to load profile",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile changes the non-nil fields of upd.
func (c *Client) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.UserProfile, error) {
	var out model.UserProfile
	err := c.do(ctx, request{
		method:   http.MethodPut,
		path:     "/user/profile/",
		auth:     authRequired,
		fallback: "Update failed",
		jsonBody: upd,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount deletes the signed-in user's account on the server.
// Local data is not touched; see session.Store.Purge.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, request{
		method:   http.MethodDelete,
		path:     "/user/profile/",
		auth:     authRequired,
		fallback: "Delete failed",
	}, nil)
}

// UserStats returns the signed-in user's usage counters.
func (c *Client) UserStats(ctx context.Context) (*model.UserStats, error) {
	var out model.UserStats
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/user/stats/",
		auth:     authRequired,
		fallback: "Failed to load stats",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MessageHistory returns a page of analyzed messages.
func (c *Client) MessageHistory(ctx context.Context, page, limit int) (*model.ScanHistory, error) {
	return c.scanHistory(ctx, "/message/history/", page, limit)
}

// LinkHistory returns a page of checked links.
func (c *Client) LinkHistory(ctx context.Context, page, limit int) (*model.ScanHistory, error) {
	return c.scanHistory(ctx, "/link/history/", page, limit)
}

func (c *Client) scanHistory(ctx context.Context, path string, page, limit int) (*model.ScanHistory, error) {
	var out model.ScanHistory
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     path,
		query:    pageQuery(page, limit),
		auth:     authRequired,
		fallback: "Failed to load history",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MyReports returns a page of the user's scam reports.
func (c *Client) MyReports(ctx context.Context, page, limit int) (*model.ReportHistory, error) {
	var out model.ReportHistory
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/report/my-reports/",
		query:    pageQuery(page, limit),
		auth:     authRequired,
		fallback: "Failed to load reports",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
