package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrInvalidAPIURL is returned when the API URL is not an http(s) URL with a host.
	ErrInvalidAPIURL = errors.New("invalid API URL: must be an http or https URL, e.g. http://localhost:8000")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMessageMinLength is returned when the minimum message length is out of range.
	ErrInvalidMessageMinLength = errors.New("invalid minimum message length: must be between 1 and 10000")

	// ErrInvalidOutput is returned for an unknown output format.
	ErrInvalidOutput = errors.New("invalid output format: must be text, json or markdown")

	// ErrInvalidProxy is returned when the proxy is not host:port.
	ErrInvalidProxy = errors.New("invalid proxy address: expected host:port")

	// ErrNoDataDir is returned when no data directory is configured.
	ErrNoDataDir = errors.New("no data directory configured")
)
