// Package storage provides the persistent key-value store used for client state.
//
// The KV interface is deliberately small: string keys, string values, no TTL.
// Two implementations are provided:
//   - Memory: a mutex-guarded map, used by tests and embedders
//   - SQLite: a single-file database (via modernc.org/sqlite) under the user's
//     data directory, which also keeps a local history of checks
//
// Reads observe the most recent write within a process. Concurrent writers are
// last-writer-wins.
package storage
