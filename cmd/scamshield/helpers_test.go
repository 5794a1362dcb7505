package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/session"
	"github.com/subha54820/Scam-Shield/internal/storage"
)

// testEnv runs the CLI against a fake backend with its own data directory.
type testEnv struct {
	t          *testing.T
	server     *httptest.Server
	dataDir    string
	configPath string
}

func newTestEnv(t *testing.T, mux *http.ServeMux) *testEnv {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("output: text\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	return &testEnv{
		t:          t,
		server:     srv,
		dataDir:    filepath.Join(dir, "data"),
		configPath: configPath,
	}
}

// run executes scamshield with args and stdin and returns what it printed.
func (e *testEnv) run(stdin string, args ...string) (string, string, error) {
	e.t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(append(args,
		"--api-url", e.server.URL,
		"--data-dir", e.dataDir,
		"--config", e.configPath,
	))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// signIn stores a session as if login had succeeded.
func (e *testEnv) signIn(userID int64) {
	e.t.Helper()

	db, err := storage.Open(e.dataDir, storage.DefaultOptions())
	if err != nil {
		e.t.Fatalf("failed to open storage: %v", err)
	}
	defer db.Close()

	sess := model.Session{
		Token: "tok-test",
		User:  model.User{ID: userID, Username: "alice", Email: "alice@example.com"},
	}
	if err := session.NewStore(db).Set(context.Background(), sess); err != nil {
		e.t.Fatalf("failed to store session: %v", err)
	}
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

// requireToken fails the request unless it carries the test session token.
func requireToken(t *testing.T, w http.ResponseWriter, r *http.Request) bool {
	t.Helper()

	if got := r.Header.Get("Authorization"); got != "Token tok-test" {
		t.Errorf("Authorization = %q, want %q", got, "Token tok-test")
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{"error": "Not authenticated"})
		return false
	}
	return true
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}
