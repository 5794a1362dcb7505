// Package session persists the signed-in user's credentials and local preferences.
//
// The session is a single JSON record stored under the key "userCredentials".
// A record missing either its token or its user is treated as no session at all.
// Reads never fail: storage and decoding errors are logged and reported as
// "no session", so callers only ever branch on presence.
//
// Per-user preferences (the profile phone number and notification switches)
// are kept next to the session under "scamshield_"-prefixed keys. They never
// leave the machine.
package session
