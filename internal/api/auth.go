package api

import (
	"context"
	"net/http"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// Register creates an account. The returned session is not persisted.
func (c *Client) Register(ctx context.Context, username, email, password string) (*model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/register/",
		fallback: "Registration failed",
		jsonBody: map[string]string{
			"username": username,
			"email":    email,
			"password": password,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a session. The returned session is not persisted.
func (c *Client) Login(ctx context.Context, username, password string) (*model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/login/",
		fallback: "Login failed",
		jsonBody: map[string]string{
			"username": username,
			"password": password,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the user the current session belongs to.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.MeResponse
	err := c.do(ctx, request{
		method:   http.MethodGet,
		path:     "/auth/me/",
		auth:     authRequired,
		fallback: "Session invalid",
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out.User, nil
}

// RequestRecovery asks the backend to email a recovery code.
func (c *Client) RequestRecovery(ctx context.Context, email string) (*model.MessageResponse, error) {
	var out model.MessageResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/recovery/request/",
		fallback: "Request failed",
		jsonBody: map[string]string{"email": email},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyRecovery sets a new password using an emailed recovery code.
func (c *Client) VerifyRecovery(ctx context.Context, email, code, newPassword string) (*model.MessageResponse, error) {
	var out model.MessageResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/recovery/verify/",
		fallback: "Verification failed",
		jsonBody: map[string]string{
			"email":        email,
			"code":         code,
			"new_password": newPassword,
		},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword changes the signed-in user's password.
// Unlike the other calls it fails with ErrErrorPage, ErrInvalidResponse or a
// "Request failed (<status>)" StatusError when the response is not JSON.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) (*model.MessageResponse, error) {
	var out model.MessageResponse
	err := c.do(ctx, request{
		method:   http.MethodPost,
		path:     "/auth/change-password/",
		auth:     authRequired,
		fallback: "Failed to change password",
		jsonBody: map[string]string{
			"old_password": oldPassword,
			"new_password": newPassword,
		},
		expectJSON: true,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
