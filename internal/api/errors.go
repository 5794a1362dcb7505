package api

import (
	"errors"
	"fmt"
)

// Client errors. Messages are shown to users verbatim.
//
//nolint:staticcheck // user-facing messages
var (
	// ErrUnreachable is returned when a request could not be completed,
	// for example because the backend is down or DNS failed.
	ErrUnreachable = errors.New("Cannot reach server. Ensure the backend is running (e.g. py manage.py runserver).")

	// ErrLoginRequired is returned by endpoints that need a session when none exists.
	ErrLoginRequired = errors.New("Login required")

	// ErrErrorPage is returned by ChangePassword when the server answered with HTML.
	ErrErrorPage = errors.New("Server returned an error page. Check that the backend is running and SCAMSHIELD_API_URL points to it.")

	// ErrInvalidResponse is returned by ChangePassword for a 2xx response that is not JSON.
	ErrInvalidResponse = errors.New("Invalid response from server")

	// ErrInvalidProxyAddress is returned when the SOCKS5 proxy address is not host:port.
	ErrInvalidProxyAddress = errors.New("invalid proxy address format: expected host:port")
)

// TransportError wraps the low-level cause of ErrUnreachable.
// Its message is always the fixed ErrUnreachable text; the cause stays
// available to errors.Is and errors.As.
type TransportError struct {
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return ErrUnreachable.Error()
}

// Unwrap returns both ErrUnreachable and the underlying cause.
func (e *TransportError) Unwrap() []error {
	return []error{ErrUnreachable, e.Err}
}

// StatusError is returned for a response with a non-2xx status.
type StatusError struct {
	// Status is the HTTP status code.
	Status int
	// Message is the server's "error" string, or Fallback when it sent none.
	Message string
	// Fallback is the endpoint's fixed failure message.
	Fallback string
}

// Error returns Message.
func (e *StatusError) Error() string {
	return e.Message
}

// FromServer reports whether Message came from the server.
func (e *StatusError) FromServer() bool {
	return e.Message != e.Fallback
}

// newStatusError picks the server message when it is a non-empty string.
func newStatusError(status int, serverMsg, fallback string) *StatusError {
	msg := serverMsg
	if msg == "" {
		msg = fallback
	}
	return &StatusError{Status: status, Message: msg, Fallback: fallback}
}

// requestFailed is the ChangePassword message for a non-JSON failure response.
func requestFailed(status int) *StatusError {
	msg := fmt.Sprintf("Request failed (%d)", status)
	return &StatusError{Status: status, Message: msg, Fallback: msg}
}
