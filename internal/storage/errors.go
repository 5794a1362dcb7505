package storage

import "errors"

var (
	// ErrNotFound is returned by Get when the key does not exist.
	ErrNotFound = errors.New("key not found")

	// ErrDatabaseNotFound is returned by Open when the database file is missing
	// and Options.CreateIfNotExists is false.
	ErrDatabaseNotFound = errors.New("database not found")

	// ErrEmptyKey is returned when a key is empty.
	ErrEmptyKey = errors.New("key must not be empty")
)
