// Package model defines the records exchanged with the ScamShield backend.
//
// The structs mirror the backend JSON field names exactly and are passed
// through to callers unchanged. Optional fields decode to their zero value
// when absent. RiskLevel is the only derived type: it normalizes the
// backend's risk labels for ordering, display and exit codes, and is never
// used to score anything on the client.
package model
