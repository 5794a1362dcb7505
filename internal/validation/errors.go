package validation

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors.
// The messages are displayed to users as-is, so they are capitalized sentences
// and must not be reworded.
//
//nolint:staticcheck // user-facing messages
var (
	ErrEmailRequired = errors.New("Email is required")
	ErrEmailInvalid  = errors.New("Enter a valid email address")

	ErrUsernameRequired = errors.New("Username is required")
	ErrUsernameTooShort = errors.New("Username must be at least 3 characters")
	ErrUsernameTooLong  = errors.New("Username must be at most 30 characters")
	ErrUsernameCharset  = errors.New("Username can only contain letters, numbers, underscore and hyphen")

	ErrPasswordRequired = errors.New("Password is required")
	ErrPasswordTooShort = errors.New("Password must be at least 8 characters")
	ErrPasswordTooLong  = errors.New("Password is too long")

	ErrMessageRequired = errors.New("Message is required")
	ErrMessageTooLong  = errors.New("Message is too long")

	ErrURLRequired = errors.New("URL is required")
	ErrURLInvalid  = errors.New("Enter a valid URL")
	ErrURLScheme   = errors.New("URL must start with http:// or https://")

	ErrScamContentRequired = errors.New("Scam content or message is required")
	ErrScamContentTooShort = errors.New("Please provide at least 20 characters of details")
	ErrScamContentTooLong  = errors.New("Content is too long")

	ErrRecoveryCodeLength = errors.New("Enter the 6-digit recovery code")
	ErrRecoveryCodeDigits = errors.New("Code must be 6 digits")
)

// RequiredError is returned by Required for a blank field.
type RequiredError struct {
	Label string
}

// Error implements error.
func (e *RequiredError) Error() string {
	return e.Label + " is required"
}

// MinLengthError is returned when a field is shorter than a configurable minimum.
type MinLengthError struct {
	Field string
	Min   int
}

// Error implements error.
func (e *MinLengthError) Error() string {
	return fmt.Sprintf("%s must be at least %d characters", e.Field, e.Min)
}

// FieldError pairs a form field with its validation error.
type FieldError struct {
	Field string
	Err   error
}

// FieldErrors is the combined result of validating a whole form.
// It preserves the order in which fields were checked.
type FieldErrors []FieldError

// Error joins the field messages in check order.
func (fe FieldErrors) Error() string {
	msgs := make([]string, len(fe))
	for i, f := range fe {
		msgs[i] = f.Field + ": " + f.Err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes the individual field errors to errors.Is and errors.As.
func (fe FieldErrors) Unwrap() []error {
	errs := make([]error, len(fe))
	for i, f := range fe {
		errs[i] = f.Err
	}
	return errs
}

// Lookup returns the error recorded for field, or nil.
func (fe FieldErrors) Lookup(field string) error {
	for _, f := range fe {
		if f.Field == field {
			return f.Err
		}
	}
	return nil
}

// Form collects validation results for several fields so that every problem
// can be reported at once.
type Form struct {
	errs FieldErrors
}

// Check records err for field when it is not nil and returns the form for chaining.
func (f *Form) Check(field string, err error) *Form {
	if err != nil {
		f.errs = append(f.errs, FieldError{Field: field, Err: err})
	}
	return f
}

// Err returns the collected FieldErrors, or nil when every field passed.
func (f *Form) Err() error {
	if len(f.errs) == 0 {
		return nil
	}
	return f.errs
}
