package storage

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
)

// CheckKind identifies what was checked.
type CheckKind string

const (
	// CheckMessage is a message sent for analysis.
	CheckMessage CheckKind = "message"
	// CheckLink is a URL sent for a link check.
	CheckLink CheckKind = "link"
)

// CheckRecord is one entry of the local check history.
// The backend keeps its own history for signed-in users; this one works
// offline and without an account.
type CheckRecord struct {
	ID        int64
	Kind      CheckKind
	Input     string
	InputHash string
	RiskLevel string
	Score     float64
	// ResultJSON is the raw backend response.
	ResultJSON string
	Timestamp  time.Time
}

// HashInput returns the hex SHA3-256 of the trimmed input, used to dedupe
// repeated checks of the same text.
func HashInput(kind CheckKind, input string) string {
	sum := sha3.Sum256([]byte(string(kind) + "\x00" + strings.TrimSpace(input)))
	return hex.EncodeToString(sum[:])
}

// SaveCheck inserts a check or, when the same input was checked before,
// replaces its verdict and moves it to the top of the history.
func (s *SQLite) SaveCheck(ctx context.Context, rec *CheckRecord) error {
	if rec.InputHash == "" {
		rec.InputHash = HashInput(rec.Kind, rec.Input)
	}

	query := `
	INSERT INTO checks (kind, input, input_hash, risk_level, score, result_json)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(kind, input_hash) DO UPDATE SET
		risk_level = excluded.risk_level,
		score = excluded.score,
		result_json = excluded.result_json,
		timestamp = CURRENT_TIMESTAMP
	`

	_, err := s.db.ExecContext(ctx, query,
		string(rec.Kind),
		rec.Input,
		rec.InputHash,
		rec.RiskLevel,
		rec.Score,
		rec.ResultJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save check: %w", err)
	}
	return nil
}

// ListChecks returns the most recent checks, newest first.
// An empty kind lists every kind; limit <= 0 means no limit.
func (s *SQLite) ListChecks(ctx context.Context, kind CheckKind, limit int) ([]CheckRecord, error) {
	query := `
	SELECT id, kind, input, input_hash, risk_level, score, result_json, timestamp
	FROM checks
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if kind != "" {
		query += " AND kind = ?"
		args = append(args, string(kind))
	}
	query += " ORDER BY timestamp DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query checks: %w", err)
	}
	defer rows.Close()

	var results []CheckRecord
	for rows.Next() {
		var (
			rec       CheckRecord
			kindStr   string
			timestamp string
		)
		if err := rows.Scan(
			&rec.ID,
			&kindStr,
			&rec.Input,
			&rec.InputHash,
			&rec.RiskLevel,
			&rec.Score,
			&rec.ResultJSON,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan check: %w", err)
		}
		rec.Kind = CheckKind(kindStr)
		rec.Timestamp = parseTimestamp(timestamp)
		results = append(results, rec)
	}

	return results, rows.Err()
}

// ClearChecks deletes the whole local history.
func (s *SQLite) ClearChecks(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM checks`); err != nil {
		return fmt.Errorf("failed to clear checks: %w", err)
	}
	return nil
}
