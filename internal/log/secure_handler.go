package log

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

// MaskValue replaces a redacted attribute value.
const MaskValue = "***REDACTED***"

// secretKeys are attribute keys whose values are always masked.
// Keys are compared in lower case.
var secretKeys = map[string]bool{
	// headers
	"authorization":       true,
	"proxy-authorization": true,
	"cookie":              true,
	"set-cookie":          true,
	"x-csrftoken":         true,
	"x-api-key":           true,

	// account
	"password":         true,
	"old_password":     true,
	"new_password":     true,
	"confirm_password": true,
	"token":            true,
	"access_token":     true,
	"refresh_token":    true,
	"api_key":          true,
	"apikey":           true,
	"secret":           true,
	"session":          true,
	"session_id":       true,
	"sessionid":        true,
	"csrftoken":        true,
	"credentials":      true,
	"usercredentials":  true,

	// recovery
	"code":          true,
	"recovery_code": true,
	"otp":           true,
}

// secretKeywords mask any key that contains them. A bare "code" is left out
// so that status_code and similar keys are kept.
var secretKeywords = []string{"password", "passwd", "secret", "token", "auth", "credential", "otp_"}

// contactKeys are partially masked instead of fully redacted.
var contactKeys = map[string]func(string) string{
	"email":         maskEmail,
	"phone":         maskPhone,
	"mobile_number": maskPhone,
}

// secretValues match credentials regardless of the key they are logged under.
var secretValues = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^token\s+\S+`),
	regexp.MustCompile(`(?i)^bearer\s+\S+`),
	regexp.MustCompile(`(?i)^basic\s+[A-Za-z0-9+/=]+$`),
	regexp.MustCompile(`^eyJ[A-Za-z0-9_-]*\.eyJ[A-Za-z0-9_-]*\.[A-Za-z0-9_-]*$`),
	regexp.MustCompile(`^[0-9a-fA-F]{40}$`),
	regexp.MustCompile(`^[A-Za-z0-9]{32,}$`),
	regexp.MustCompile(`(?i)-----BEGIN.*PRIVATE KEY-----`),
}

// inlineSecrets are masked inside longer strings such as error messages.
var inlineSecrets = regexp.MustCompile(`(?i)\b(token|bearer)\s+[A-Za-z0-9._-]{8,}`)

// Handler masks secrets in the attributes of every record before passing it
// to the wrapped handler. Attributes added with WithAttrs are masked once,
// when they are added.
type Handler struct {
	next slog.Handler
}

// NewHandler wraps next. A nil next uses the default slog handler.
func NewHandler(next slog.Handler) *Handler {
	if next == nil {
		next = slog.Default().Handler()
	}
	return &Handler{next: next}
}

// Enabled implements slog.Handler.
func (h *Handler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	out := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)
	r.Attrs(func(a slog.Attr) bool {
		out.AddAttrs(redact(a))
		return true
	})
	return h.next.Handle(ctx, out)
}

// WithAttrs implements slog.Handler.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	masked := make([]slog.Attr, 0, len(attrs))
	for _, a := range attrs {
		masked = append(masked, redact(a))
	}
	return &Handler{next: h.next.WithAttrs(masked)}
}

// WithGroup implements slog.Handler.
func (h *Handler) WithGroup(name string) slog.Handler {
	return &Handler{next: h.next.WithGroup(name)}
}

func redact(a slog.Attr) slog.Attr {
	a.Value = a.Value.Resolve()

	if a.Value.Kind() == slog.KindGroup {
		group := a.Value.Group()
		masked := make([]slog.Attr, 0, len(group))
		for _, g := range group {
			masked = append(masked, redact(g))
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(masked...)}
	}

	key := strings.ToLower(a.Key)
	if isSecretKey(key) {
		return slog.String(a.Key, MaskValue)
	}

	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if mask, ok := contactKeys[key]; ok {
			return slog.String(a.Key, mask(s))
		}
		if isSecretValue(s) {
			return slog.String(a.Key, MaskValue)
		}
		if inlineSecrets.MatchString(s) {
			return slog.String(a.Key, maskInline(s))
		}
	case slog.KindAny:
		if err, ok := a.Value.Any().(error); ok && err != nil {
			if msg := err.Error(); inlineSecrets.MatchString(msg) {
				return slog.String(a.Key, maskInline(msg))
			}
		}
	}
	return a
}

func isSecretKey(key string) bool {
	if secretKeys[key] {
		return true
	}
	for _, kw := range secretKeywords {
		if strings.Contains(key, kw) {
			return true
		}
	}
	return false
}

func isSecretValue(s string) bool {
	for _, re := range secretValues {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func maskInline(s string) string {
	return inlineSecrets.ReplaceAllStringFunc(s, func(m string) string {
		scheme, _, _ := strings.Cut(m, " ")
		return scheme + " " + MaskValue
	})
}

// maskEmail keeps the first character of the local part and the domain:
// alice@example.com becomes a***@example.com.
func maskEmail(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || local == "" {
		return MaskValue
	}
	r := []rune(local)
	return string(r[0]) + "***@" + domain
}

// maskPhone keeps the last two digits.
func maskPhone(s string) string {
	if len(s) <= 2 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-2) + s[len(s)-2:]
}

// Options configures New.
type Options struct {
	// Verbose lowers the level from Warn to Debug.
	Verbose bool
	// JSON selects slog's JSON output instead of text.
	JSON bool
}

// New returns a masking logger writing to w.
func New(w io.Writer, opts Options) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{Level: level}

	var next slog.Handler
	if opts.JSON {
		next = slog.NewJSONHandler(w, ho)
	} else {
		next = slog.NewTextHandler(w, ho)
	}
	return slog.New(NewHandler(next))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
