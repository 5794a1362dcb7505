package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/session"
	"github.com/subha54820/Scam-Shield/internal/storage"
)

// Output formats accepted by New.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// ErrUnknownFormat is returned by New for an unsupported format.
var ErrUnknownFormat = errors.New("unknown output format")

// Analysis is the outcome of analyzing one message. Exactly one of Result
// and Err is set.
type Analysis struct {
	Input  string
	Result *model.AnalyzeResult
	Err    error
}

// LinkCheck is the outcome of checking one URL. Exactly one of Result and
// Err is set.
type LinkCheck struct {
	URL    string
	Result *model.LinkCheckResult
	Err    error
}

// Profile groups what the profile command shows. Stats may be nil when the
// stats request failed.
type Profile struct {
	Profile *model.UserProfile
	Stats   *model.UserStats
	// Phone is kept on this device only.
	Phone string
}

// Writer renders results in one output format.
type Writer interface {
	WriteMessage(msg string) error
	WriteUser(u *model.User) error
	WriteAnalyses(items []Analysis) error
	WriteLinkChecks(items []LinkCheck) error
	WriteQuizQuestions(questions []model.QuizQuestion) error
	WriteQuizResult(r *model.QuizSubmitResponse) error
	WriteQuizHistory(h *model.QuizHistory) error
	WriteScanHistory(title string, h *model.ScanHistory) error
	WriteReportHistory(h *model.ReportHistory) error
	WriteLocalHistory(records []storage.CheckRecord) error
	WriteReportReceipt(r *model.ReportScamResponse) error
	WriteProfile(p *Profile) error
	WritePublicStats(s *model.PublicStats) error
	WriteUserStats(s *model.UserStats) error
	WriteNotifications(n session.Notifications) error
}

var (
	_ Writer = (*TextWriter)(nil)
	_ Writer = (*JSONWriter)(nil)
	_ Writer = (*MarkdownWriter)(nil)
)

// New returns the Writer for format. An empty format selects text.
func New(format string, output io.Writer, verbose bool) (Writer, error) {
	switch format {
	case "", FormatText:
		return NewTextWriter(output, WithVerbose(verbose)), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// baseWriter holds the destination shared by every format.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

func (b baseWriter) writeString(s string) error {
	_, err := io.WriteString(b.output, s)
	return err
}

var titleCaser = cases.Title(language.English)

// categoryLabel turns backend identifiers such as "fake_payment" or
// "otp-scam" into display labels.
func categoryLabel(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(s))
	if s == "" {
		return "-"
	}
	return titleCaser.String(s)
}

func categoryLabels(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = categoryLabel(s)
	}
	return out
}

// percent formats a 0..100 value.
func percent(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// score formats a 0..100 risk score.
func score(v float64) string {
	return fmt.Sprintf("%.0f/100", v)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return orDash(*s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// AnyHighRisk reports whether any successful result carries the highest verdict.
func AnyHighRisk(analyses []Analysis, links []LinkCheck) bool {
	for _, a := range analyses {
		if a.Result != nil && a.Result.Risk().IsHighRisk() {
			return true
		}
	}
	for _, l := range links {
		if l.Result != nil && l.Result.Risk().IsHighRisk() {
			return true
		}
	}
	return false
}
