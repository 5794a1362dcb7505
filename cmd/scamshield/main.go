// Package main provides the scamshield command, a terminal client for the
// ScamShield scam detection service.
//
// Usage:
//
//	scamshield analyze "Your parcel is held, pay the fee at http://..."
//	scamshield check-link https://example.com https://examp1e.com
//	scamshield login --username alice
//
// See --help for all available commands.
package main

func main() {
	Execute()
}
