// Package log builds the slog loggers used by the scamshield command and
// the API client.
//
// Every logger returned by New is wrapped in a Handler that rewrites
// attributes before they reach the output:
//   - credentials (auth tokens, passwords, recovery codes, cookies) are
//     replaced with MaskValue, whether they are found by key or by shape
//   - contact details (email addresses, phone numbers) are partially masked
//     so log lines stay correlatable without exposing the full value
//
// Verbose mode lowers the level to Debug but never disables masking.
//
//	logger := log.New(os.Stderr, log.Options{Verbose: true})
//	logger.Debug("login", "username", "alice", "password", pw) // password=***REDACTED***
package log
