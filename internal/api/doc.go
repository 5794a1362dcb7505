// Package api is the typed client for the ScamShield backend.
//
// Every function maps to one backend endpoint under <base>/api. The client
// never stores anything: it asks its Sessions provider for the current token
// on each call and leaves persisting new sessions to the caller.
//
// Errors follow a fixed contract so that callers can display them verbatim:
//   - ErrUnreachable when the request could not be completed at all
//   - *StatusError for non-2xx responses, carrying the server's "error" string
//     or the endpoint's fallback message
//   - ErrLoginRequired, without any network call, when an endpoint needs a
//     session and there is none
//
// Response bodies that are not valid JSON are treated as an empty object.
// Only ChangePassword additionally rejects non-JSON responses, because that
// endpoint is commonly reached through a misconfigured reverse proxy that
// answers with an HTML error page.
package api
