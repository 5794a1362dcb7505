// Package batch runs the same API call over many inputs with bounded
// concurrency.
//
// Results come back in input order. A failed input is recorded in its
// Result and never stops the others; only cancellation of the caller's
// context does that.
package batch
