package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/subha54820/Scam-Shield/internal/api"
)

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["username"] != "alice" || body["email"] != "alice@example.com" || body["password"] != "supersecret" {
			t.Errorf("unexpected register body: %v", body)
		}
		writeJSON(t, w, http.StatusCreated, map[string]any{
			"token": "tok-test",
			"user":  map[string]any{"id": 7, "username": "alice", "email": "alice@example.com"},
		})
	})
	mux.HandleFunc("GET /api/auth/me/", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(t, w, r) {
			return
		}
		writeJSON(t, w, http.StatusOK, map[string]any{
			"user": map[string]any{"id": 7, "username": "alice", "email": "alice@example.com"},
		})
	})
	env := newTestEnv(t, mux)

	stdout, _, err := env.run("supersecret\n", "signup", "-u", "alice", "-e", "alice@example.com", "--password-stdin")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if !strings.Contains(stdout, "Signed in as alice <alice@example.com> (id 7)") {
		t.Errorf("unexpected signup output: %q", stdout)
	}

	if stdout, _, err = env.run("", "whoami"); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(stdout, "alice") {
		t.Errorf("unexpected whoami output: %q", stdout)
	}

	if stdout, _, err = env.run("", "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if strings.TrimSpace(stdout) != "Logged out" {
		t.Errorf("unexpected logout output: %q", stdout)
	}

	_, _, err = env.run("", "whoami")
	if !errors.Is(err, api.ErrLoginRequired) {
		t.Errorf("whoami after logout: got %v, want %v", err, api.ErrLoginRequired)
	}
}

func TestSignupValidation(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(http.ResponseWriter, *http.Request) {
		calls.Add(1)
	})
	env := newTestEnv(t, mux)

	_, _, err := env.run("supersecret\n", "signup", "-u", "al", "-e", "nope", "--password-stdin")
	if err == nil {
		t.Fatal("expected validation error")
	}
	want := "username: Username must be at least 3 characters; email: Enter a valid email address"
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}

	_, _, err = env.run("short\n", "signup", "-u", "alice", "-e", "alice@example.com", "--password-stdin")
	if err == nil || err.Error() != "Password must be at least 8 characters" {
		t.Errorf("error = %v, want password length error", err)
	}

	if n := calls.Load(); n != 0 {
		t.Errorf("backend was called %d times", n)
	}
}

func TestLoginServerError(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login/", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "Invalid credentials"})
	})
	env := newTestEnv(t, mux)

	_, _, err := env.run("wrongpassword\n", "login", "-u", "alice", "--password-stdin")
	if err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("error = %v, want %q", err, "Invalid credentials")
	}

	// A failed login leaves no session behind.
	_, _, err = env.run("", "whoami")
	if !errors.Is(err, api.ErrLoginRequired) {
		t.Errorf("whoami: got %v, want %v", err, api.ErrLoginRequired)
	}
}

func TestRecoverVerifyValidation(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, http.NewServeMux())

	_, _, err := env.run("newpassword\n", "recover", "verify", "-e", "alice@example.com", "--code", "12a456", "--password-stdin")
	if err == nil || err.Error() != "code: Code must be 6 digits" {
		t.Errorf("error = %v, want code error", err)
	}
}

func TestPasswordChangeRequiresLogin(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t, http.NewServeMux())

	_, _, err := env.run("old\nnew\n", "password", "change")
	if !errors.Is(err, api.ErrLoginRequired) {
		t.Errorf("got %v, want %v", err, api.ErrLoginRequired)
	}
}

func TestPasswordChange(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/change-password/", func(w http.ResponseWriter, r *http.Request) {
		if !requireToken(t, w, r) {
			return
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("failed to decode body: %v", err)
		}
		if body["old_password"] != "oldpassword" || body["new_password"] != "newpassword" {
			t.Errorf("unexpected body: %v", body)
		}
		writeJSON(t, w, http.StatusOK, map[string]string{"message": "Password updated"})
	})
	env := newTestEnv(t, mux)
	env.signIn(7)

	stdout, _, err := env.run("oldpassword\nnewpassword\n", "password", "change")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(stdout) != "Password updated" {
		t.Errorf("unexpected output: %q", stdout)
	}
}
