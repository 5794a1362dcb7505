package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// staticSessions always returns the same session, or none.
type staticSessions struct {
	sess model.Session
	ok   bool
}

func (s staticSessions) Get(context.Context) (model.Session, bool) {
	return s.sess, s.ok
}

func signedIn() staticSessions {
	return staticSessions{
		sess: model.Session{Token: "tok123", User: model.User{ID: 1, Username: "u", Email: "e@x.io"}},
		ok:   true,
	}
}

func signedOut() staticSessions {
	return staticSessions{}
}

// countingTransport counts round trips and fails them.
type countingTransport struct {
	calls atomic.Int32
}

func (c *countingTransport) RoundTrip(*http.Request) (*http.Response, error) {
	c.calls.Add(1)
	return nil, http.ErrHandlerTimeout
}

// newTestClient starts a server running handler and returns a client for it.
func newTestClient(t *testing.T, sessions Sessions, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL, sessions, WithHTTPClient(srv.Client()))
}

// writeJSON writes v with the given status.
func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("failed to write response: %v", err)
	}
}
