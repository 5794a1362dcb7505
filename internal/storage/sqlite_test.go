package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *SQLite {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return db
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if db.Path() != filepath.Join(dbDir, DBFileName) {
			t.Errorf("Path() = %q", db.Path())
		}
		if _, err := os.Stat(db.Path()); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false returns error when database does not exist", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "nonexistent-db")

		_, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if !errors.Is(err, ErrDatabaseNotFound) {
			t.Fatalf("Open() error = %v, want ErrDatabaseNotFound", err)
		}
		if _, statErr := os.Stat(dbDir); !os.IsNotExist(statErr) {
			t.Error("database directory should not have been created when CreateIfNotExists=false")
		}
	})

	t.Run("data persists across reopen", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		dbDir := filepath.Join(t.TempDir(), "existing-db")

		db1, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		if err := db1.Set(ctx, "userCredentials", `{"token":"t"}`); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
		_ = db1.Close()

		db2, err := Open(dbDir, Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db2.Close()

		v, err := db2.Get(ctx, "userCredentials")
		if err != nil || v != `{"token":"t"}` {
			t.Errorf("Get() = %q, %v", v, err)
		}
	})
}

// TestDefaultOptions tests the default options values.
func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	if !opts.CreateIfNotExists {
		t.Error("expected CreateIfNotExists to be true by default")
	}
	if !opts.EnableWAL {
		t.Error("expected EnableWAL to be true by default")
	}
}

func TestSQLiteKV(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}

	if err := db.Set(ctx, "rememberedDevice", "true"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := db.Set(ctx, "rememberedDevice", "false"); err != nil {
		t.Fatalf("Set() overwrite error = %v", err)
	}
	if v, _ := db.Get(ctx, "rememberedDevice"); v != "false" {
		t.Errorf("Get() = %q, want overwritten value", v)
	}

	for _, k := range []string{"scamshield_profile_phone_1", "scamshield_notifications_1", "userCredentials"} {
		if err := db.Set(ctx, k, "x"); err != nil {
			t.Fatalf("Set(%q) error = %v", k, err)
		}
	}

	keys, err := db.Keys(ctx, "scamshield_")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	want := []string{"scamshield_notifications_1", "scamshield_profile_phone_1"}
	if !slices.Equal(keys, want) {
		t.Errorf("Keys() = %v, want %v", keys, want)
	}

	if err := db.Delete(ctx, append(keys, "userCredentials", "missing")...); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	all, err := db.Keys(ctx, "")
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if !slices.Equal(all, []string{"rememberedDevice"}) {
		t.Errorf("remaining keys = %v", all)
	}

	if err := db.Set(ctx, "", "x"); !errors.Is(err, ErrEmptyKey) {
		t.Errorf("Set(\"\") error = %v, want ErrEmptyKey", err)
	}
}

func TestChecks(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	msg := &CheckRecord{Kind: CheckMessage, Input: "You won a lottery, send OTP", RiskLevel: "LIKELY_SCAM", Score: 0.9, ResultJSON: "{}"}
	link := &CheckRecord{Kind: CheckLink, Input: "https://example.com", RiskLevel: "SAFE", Score: 0.1, ResultJSON: "{}"}

	for _, rec := range []*CheckRecord{msg, link} {
		if err := db.SaveCheck(ctx, rec); err != nil {
			t.Fatalf("SaveCheck() error = %v", err)
		}
	}
	if msg.InputHash == "" {
		t.Error("SaveCheck should fill InputHash")
	}

	// Same input, new verdict: updated, not duplicated.
	again := &CheckRecord{Kind: CheckMessage, Input: "  You won a lottery, send OTP  ", RiskLevel: "SUSPICIOUS", Score: 0.5, ResultJSON: "{}"}
	if err := db.SaveCheck(ctx, again); err != nil {
		t.Fatalf("SaveCheck() error = %v", err)
	}

	messages, err := db.ListChecks(ctx, CheckMessage, 0)
	if err != nil {
		t.Fatalf("ListChecks() error = %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("len(messages) = %d, want 1", len(messages))
	}
	if messages[0].RiskLevel != "SUSPICIOUS" {
		t.Errorf("RiskLevel = %q, want updated verdict", messages[0].RiskLevel)
	}
	if messages[0].Timestamp.IsZero() {
		t.Error("Timestamp should be parsed")
	}

	all, err := db.ListChecks(ctx, "", 1)
	if err != nil {
		t.Fatalf("ListChecks() error = %v", err)
	}
	if len(all) != 1 {
		t.Errorf("limit not applied: got %d", len(all))
	}

	if err := db.ClearChecks(ctx); err != nil {
		t.Fatalf("ClearChecks() error = %v", err)
	}
	all, err = db.ListChecks(ctx, "", 0)
	if err != nil || len(all) != 0 {
		t.Errorf("after clear: %d records, err %v", len(all), err)
	}
}

func TestHashInput(t *testing.T) {
	t.Parallel()

	a := HashInput(CheckMessage, "hello")
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64", len(a))
	}
	if a != HashInput(CheckMessage, " hello\n") {
		t.Error("hash should ignore surrounding white space")
	}
	if a == HashInput(CheckLink, "hello") {
		t.Error("hash should depend on kind")
	}
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		want  time.Time
	}{
		{"2026-01-02 03:04:05", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2026-01-02T03:04:05Z", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"garbage", time.Time{}},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()
			if got := parseTimestamp(tc.input); !got.Equal(tc.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}
