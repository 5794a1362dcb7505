package session

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/subha54820/Scam-Shield/internal/validation"
)

const (
	phoneKeyName         = "profile_phone"
	notificationsKeyName = "notifications"
)

// Notifications are the per-user notification switches.
type Notifications struct {
	EmailHighRisk bool `json:"emailHighRisk"`
	QuizReminders bool `json:"quizReminders"`
}

// DefaultNotifications returns the switches used when nothing is stored.
func DefaultNotifications() Notifications {
	return Notifications{EmailHighRisk: true, QuizReminders: false}
}

// NotificationsUpdate changes only the non-nil switches.
type NotificationsUpdate struct {
	EmailHighRisk *bool
	QuizReminders *bool
}

// Phone returns the locally stored phone number for the user, or "".
func (s *Store) Phone(ctx context.Context, userID int64) string {
	v, err := s.kv.Get(ctx, userKey(phoneKeyName, userID))
	if err != nil {
		return ""
	}
	return v
}

// SetPhone stores the phone number for the user after keeping only its digits
// (at most validation.DefaultPhoneMaxLength). It returns the stored value.
func (s *Store) SetPhone(ctx context.Context, userID int64, phone string) (string, error) {
	digits := validation.RestrictPhone(phone, validation.DefaultPhoneMaxLength)
	if err := s.kv.Set(ctx, userKey(phoneKeyName, userID), digits); err != nil {
		return "", fmt.Errorf("failed to save phone: %w", err)
	}
	return digits, nil
}

// Notifications returns the user's notification switches. Missing or
// unreadable records yield the defaults. emailHighRisk is on unless stored as
// false; quizReminders is off unless stored as true.
func (s *Store) Notifications(ctx context.Context, userID int64) Notifications {
	prefs := DefaultNotifications()

	raw, err := s.kv.Get(ctx, userKey(notificationsKeyName, userID))
	if err != nil || raw == "" {
		return prefs
	}

	var stored map[string]any
	if err := json.Unmarshal([]byte(raw), &stored); err != nil || stored == nil {
		s.logger.Debug("ignoring unparseable notification preferences", "error", err)
		return prefs
	}
	if v, ok := stored["emailHighRisk"].(bool); ok && !v {
		prefs.EmailHighRisk = false
	}
	if v, ok := stored["quizReminders"].(bool); ok && v {
		prefs.QuizReminders = true
	}
	return prefs
}

// UpdateNotifications merges upd into the current switches and stores the result.
func (s *Store) UpdateNotifications(ctx context.Context, userID int64, upd NotificationsUpdate) (Notifications, error) {
	prefs := s.Notifications(ctx, userID)
	if upd.EmailHighRisk != nil {
		prefs.EmailHighRisk = *upd.EmailHighRisk
	}
	if upd.QuizReminders != nil {
		prefs.QuizReminders = *upd.QuizReminders
	}

	data, err := json.Marshal(prefs)
	if err != nil {
		return Notifications{}, fmt.Errorf("failed to encode notification preferences: %w", err)
	}
	if err := s.kv.Set(ctx, userKey(notificationsKeyName, userID), string(data)); err != nil {
		return Notifications{}, fmt.Errorf("failed to save notification preferences: %w", err)
	}
	return prefs, nil
}
