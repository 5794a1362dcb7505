package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/storage"
)

// Storage keys.
const (
	// CredentialsKey holds the serialized session.
	CredentialsKey = "userCredentials"

	// RememberedDeviceKey is set to "true" when the user asked to be remembered.
	RememberedDeviceKey = "rememberedDevice"

	// KeyPrefix is shared by every per-user preference key.
	KeyPrefix = "scamshield_"
)

// Store reads and writes the session over a storage.KV.
// It is safe for concurrent use when the underlying KV is.
type Store struct {
	kv     storage.KV
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage and decoding failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore returns a Store backed by kv.
func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// record mirrors model.Session with a nullable user so that a record with
// "user": null can be told apart from one with an empty user object.
type record struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// Get returns the current session. The second result is false when there is
// no session, including when the stored record cannot be read or is incomplete.
func (s *Store) Get(ctx context.Context) (model.Session, bool) {
	raw, err := s.kv.Get(ctx, CredentialsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read session", "error", err)
		}
		return model.Session{}, false
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		s.logger.Debug("ignoring unparseable session record", "error", err)
		return model.Session{}, false
	}
	if rec.Token == "" || rec.User == nil {
		s.logger.Debug("ignoring incomplete session record")
		return model.Session{}, false
	}

	return model.Session{Token: rec.Token, User: *rec.User}, true
}

// Set replaces the stored session.
func (s *Store) Set(ctx context.Context, sess model.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.kv.Set(ctx, CredentialsKey, string(data)); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the session and the remembered-device flag.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, CredentialsKey, RememberedDeviceKey); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// SetRememberedDevice stores the flag when remember is true and removes it otherwise.
func (s *Store) SetRememberedDevice(ctx context.Context, remember bool) error {
	var err error
	if remember {
		err = s.kv.Set(ctx, RememberedDeviceKey, "true")
	} else {
		err = s.kv.Delete(ctx, RememberedDeviceKey)
	}
	if err != nil {
		return fmt.Errorf("failed to update remembered device: %w", err)
	}
	return nil
}

// RememberedDevice reports whether the remembered-device flag is set.
func (s *Store) RememberedDevice(ctx context.Context) bool {
	v, err := s.kv.Get(ctx, RememberedDeviceKey)
	return err == nil && v == "true"
}

// Purge removes every "scamshield_" key and the session. It is used after the
// account has been deleted on the server.
func (s *Store) Purge(ctx context.Context) error {
	keys, err := s.kv.Keys(ctx, KeyPrefix)
	if err != nil {
		return fmt.Errorf("failed to list local data: %w", err)
	}
	keys = append(keys, CredentialsKey, RememberedDeviceKey)
	if err := s.kv.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("failed to remove local data: %w", err)
	}
	return nil
}

// userKey builds a per-user preference key such as "scamshield_profile_phone_42".
func userKey(name string, userID int64) string {
	return KeyPrefix + name + "_" + strconv.FormatInt(userID, 10)
}
