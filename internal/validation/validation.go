// Package validation provides the client-side field validators.
//
// Every validator is pure and synchronous: it maps raw user input to nil
// (acceptable) or an error whose message is shown to the user verbatim.
// Lengths are measured in UTF-16 code units and trimming follows the
// ECMAScript definition of white space, so that the limits agree exactly with
// the browser client that talks to the same backend.
package validation

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Length limits enforced by the validators.
const (
	// UsernameMinLength is the minimum username length.
	UsernameMinLength = 3
	// UsernameMaxLength is the maximum username length.
	UsernameMaxLength = 30
	// PasswordMinLength is the minimum password length for login and sign up.
	PasswordMinLength = 8
	// PasswordMaxLength is the maximum password length accepted at sign up.
	PasswordMaxLength = 128
	// DefaultMessageMinLength is the minimum message length used by Message.
	DefaultMessageMinLength = 10
	// MessageMaxLength is the maximum message length.
	MessageMaxLength = 10000
	// ScamContentMinLength is the minimum length of a scam report.
	ScamContentMinLength = 20
	// ScamContentMaxLength is the maximum length of a scam report.
	ScamContentMaxLength = 5000
	// RecoveryCodeLength is the exact length of a recovery code.
	RecoveryCodeLength = 6
	// DefaultPhoneMaxLength is the number of digits kept by RestrictPhone
	// when callers have no stricter limit.
	DefaultPhoneMaxLength = 15
)

// jsSpaceClass is the ECMAScript \s class written for RE2.
const jsSpaceClass = `\s\x0B\p{Zs}\x{FEFF}\x{2028}\x{2029}`

var (
	emailPattern = regexp.MustCompile(
		`^[^` + jsSpaceClass + `@]+@[^` + jsSpaceClass + `@]+\.[^` + jsSpaceClass + `@]+$`)

	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

	webURLPattern = regexp.MustCompile(
		`(?i)^https?://[^` + jsSpaceClass + `/$.?#][^\n\r\x{2028}\x{2029}][^` + jsSpaceClass + `]*$`)

	recoveryCodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// Email validates a required email address.
func Email(value string) error {
	v := trim(value)
	if v == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(v) {
		return ErrEmailInvalid
	}
	return nil
}

// EmailOptional validates an email address that may be left empty.
func EmailOptional(value string) error {
	v := trim(value)
	if v == "" {
		return nil
	}
	if !emailPattern.MatchString(v) {
		return ErrEmailInvalid
	}
	return nil
}

// Username validates a username: 3 to 30 letters, digits, underscores or hyphens.
// Length is checked before the character set so that a too short or too long
// name always reports the length problem.
func Username(value string) error {
	v := trim(value)
	if v == "" {
		return ErrUsernameRequired
	}
	n := textLength(v)
	if n < UsernameMinLength {
		return ErrUsernameTooShort
	}
	if n > UsernameMaxLength {
		return ErrUsernameTooLong
	}
	if !usernamePattern.MatchString(v) {
		return ErrUsernameCharset
	}
	return nil
}

// Password validates a login password. Passwords are never trimmed.
func Password(value string) error {
	if value == "" {
		return ErrPasswordRequired
	}
	if textLength(value) < PasswordMinLength {
		return ErrPasswordTooShort
	}
	return nil
}

// PasswordSignUp validates a new password: the login rules plus an upper bound.
func PasswordSignUp(value string) error {
	if err := Password(value); err != nil {
		return err
	}
	if textLength(value) > PasswordMaxLength {
		return ErrPasswordTooLong
	}
	return nil
}

// Required reports a RequiredError naming label when value is blank.
func Required(value, label string) error {
	if trim(value) == "" {
		return &RequiredError{Label: label}
	}
	return nil
}

// Message validates a message submitted for analysis using DefaultMessageMinLength.
func Message(value string) error {
	return MessageMin(value, DefaultMessageMinLength)
}

// MessageMin validates a message submitted for analysis with a caller-chosen
// minimum length. The error for a short message reports that minimum.
func MessageMin(value string, minLength int) error {
	v := trim(value)
	if v == "" {
		return ErrMessageRequired
	}
	n := textLength(v)
	if n < minLength {
		return &MinLengthError{Field: "Message", Min: minLength}
	}
	if n > MessageMaxLength {
		return ErrMessageTooLong
	}
	return nil
}

// URL validates a link submitted for checking. The value must parse as an
// absolute URL and, in addition, use http or https with a host.
func URL(value string) error {
	v := trim(value)
	if v == "" {
		return ErrURLRequired
	}
	if !isAbsoluteURL(v) {
		return ErrURLInvalid
	}
	if !webURLPattern.MatchString(v) {
		return ErrURLScheme
	}
	return nil
}

// ScamContent validates the free text of a scam report.
func ScamContent(value string) error {
	v := trim(value)
	if v == "" {
		return ErrScamContentRequired
	}
	n := textLength(v)
	if n < ScamContentMinLength {
		return ErrScamContentTooShort
	}
	if n > ScamContentMaxLength {
		return ErrScamContentTooLong
	}
	return nil
}

// RecoveryCode validates a 6 digit account recovery code. The value is not trimmed.
func RecoveryCode(value string) error {
	if textLength(value) != RecoveryCodeLength {
		return ErrRecoveryCodeLength
	}
	if !recoveryCodePattern.MatchString(value) {
		return ErrRecoveryCodeDigits
	}
	return nil
}

// RestrictToDigits removes every character that is not an ASCII digit and,
// when maxLength is not negative, keeps at most maxLength digits.
func RestrictToDigits(value string, maxLength int) string {
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		if c := value[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	digits := b.String()
	if maxLength >= 0 && len(digits) > maxLength {
		return digits[:maxLength]
	}
	return digits
}

// RestrictPhone sanitizes a phone number field. It is a transform, not a validator.
func RestrictPhone(value string, maxLength int) string {
	return RestrictToDigits(value, maxLength)
}

// trim removes leading and trailing white space as ECMAScript defines it.
func trim(s string) string {
	return strings.TrimFunc(s, isJSSpace)
}

// isJSSpace differs from unicode.IsSpace in two code points: U+0085 is not
// white space in ECMAScript, U+FEFF is.
func isJSSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\uFEFF':
		return true
	}
	return unicode.IsSpace(r)
}

// textLength counts UTF-16 code units.
func textLength(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
			continue
		}
		n++
	}
	return n
}

// specialSchemes must carry a host to be absolute.
var specialSchemes = map[string]bool{
	"http":  true,
	"https": true,
	"ws":    true,
	"wss":   true,
	"ftp":   true,
}

// isAbsoluteURL reports whether v parses as an absolute URL.
func isAbsoluteURL(v string) bool {
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" {
		return false
	}
	if !specialSchemes[strings.ToLower(u.Scheme)] {
		return true
	}
	if u.Host == "" && u.Opaque == "" {
		return false
	}
	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n > 65535 {
			return false
		}
	}
	return true
}
