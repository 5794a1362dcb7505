package model

// User is the account summary returned by the auth endpoints.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Session is the locally persisted proof of authentication.
// It is replaced wholesale on login and never mutated in place.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthResponse is the body returned by register and login.
// It has the same shape as Session.
type AuthResponse = Session

// MeResponse is the body returned by the session check endpoint.
type MeResponse struct {
	User User `json:"user"`
}

// MessageResponse is the generic {message} body used by recovery and
// password endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
