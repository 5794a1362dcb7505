package report

import (
	"encoding/json"
	"io"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/session"
	"github.com/subha54820/Scam-Shield/internal/storage"
)

// JSONWriter writes one JSON document per call. Backend results are emitted
// with their wire field names so scripts can consume them unchanged.
type JSONWriter struct {
	baseWriter

	indent string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint indents output by two spaces.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = "  "
	}
}

// NewJSONWriter creates a JSONWriter that outputs to output. Output is
// compact unless WithPrettyPrint is given.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *JSONWriter) encode(v any) error {
	enc := json.NewEncoder(w.output)
	enc.SetEscapeHTML(false)
	if w.indent != "" {
		enc.SetIndent("", w.indent)
	}
	return enc.Encode(v)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

type jsonAnalysis struct {
	Input  string               `json:"input"`
	Result *model.AnalyzeResult `json:"result,omitempty"`
	Error  string               `json:"error,omitempty"`
}

type jsonLinkCheck struct {
	URL    string                 `json:"url"`
	Result *model.LinkCheckResult `json:"result,omitempty"`
	Error  string                 `json:"error,omitempty"`
}

type jsonCheckRecord struct {
	ID        int64             `json:"id"`
	Kind      storage.CheckKind `json:"kind"`
	Input     string            `json:"input"`
	RiskLevel string            `json:"risk_level"`
	Score     float64           `json:"score"`
	Result    json.RawMessage   `json:"result,omitempty"`
	Timestamp string            `json:"timestamp"`
}

type jsonProfile struct {
	Profile *model.UserProfile `json:"profile,omitempty"`
	Stats   *model.UserStats   `json:"stats,omitempty"`
	Phone   string             `json:"phone"`
}

// WriteMessage writes {"message": msg}.
func (w *JSONWriter) WriteMessage(msg string) error {
	return w.encode(model.MessageResponse{Message: msg})
}

// WriteUser writes the account.
func (w *JSONWriter) WriteUser(u *model.User) error {
	return w.encode(u)
}

// WriteAnalyses writes an array of {input, result | error}.
func (w *JSONWriter) WriteAnalyses(items []Analysis) error {
	out := make([]jsonAnalysis, len(items))
	for i, it := range items {
		out[i] = jsonAnalysis{Input: it.Input, Result: it.Result, Error: errString(it.Err)}
	}
	return w.encode(out)
}

// WriteLinkChecks writes an array of {url, result | error}.
func (w *JSONWriter) WriteLinkChecks(items []LinkCheck) error {
	out := make([]jsonLinkCheck, len(items))
	for i, it := range items {
		out[i] = jsonLinkCheck{URL: it.URL, Result: it.Result, Error: errString(it.Err)}
	}
	return w.encode(out)
}

// WriteQuizQuestions writes the questions in the backend shape.
func (w *JSONWriter) WriteQuizQuestions(questions []model.QuizQuestion) error {
	if questions == nil {
		questions = []model.QuizQuestion{}
	}
	return w.encode(model.QuizQuestions{Questions: questions})
}

// WriteQuizResult writes the graded submission.
func (w *JSONWriter) WriteQuizResult(r *model.QuizSubmitResponse) error {
	return w.encode(r)
}

// WriteQuizHistory writes the history page.
func (w *JSONWriter) WriteQuizHistory(h *model.QuizHistory) error {
	return w.encode(h)
}

// WriteScanHistory writes the history page. The title is not part of the output.
func (w *JSONWriter) WriteScanHistory(_ string, h *model.ScanHistory) error {
	return w.encode(h)
}

// WriteReportHistory writes the history page.
func (w *JSONWriter) WriteReportHistory(h *model.ReportHistory) error {
	return w.encode(h)
}

// WriteLocalHistory writes the saved checks. The stored backend response is
// embedded as-is when it is valid JSON.
func (w *JSONWriter) WriteLocalHistory(records []storage.CheckRecord) error {
	out := make([]jsonCheckRecord, len(records))
	for i, rec := range records {
		out[i] = jsonCheckRecord{
			ID:        rec.ID,
			Kind:      rec.Kind,
			Input:     rec.Input,
			RiskLevel: rec.RiskLevel,
			Score:     rec.Score,
			Timestamp: rec.Timestamp.UTC().Format("2006-01-02T15:04:05Z"),
		}
		if json.Valid([]byte(rec.ResultJSON)) {
			out[i].Result = json.RawMessage(rec.ResultJSON)
		}
	}
	return w.encode(out)
}

// WriteReportReceipt writes the backend acknowledgement.
func (w *JSONWriter) WriteReportReceipt(r *model.ReportScamResponse) error {
	return w.encode(r)
}

// WriteProfile writes {profile, stats, phone}.
func (w *JSONWriter) WriteProfile(p *Profile) error {
	return w.encode(jsonProfile{Profile: p.Profile, Stats: p.Stats, Phone: p.Phone})
}

// WritePublicStats writes the counters.
func (w *JSONWriter) WritePublicStats(s *model.PublicStats) error {
	return w.encode(s)
}

// WriteUserStats writes the counters.
func (w *JSONWriter) WriteUserStats(s *model.UserStats) error {
	return w.encode(s)
}

// WriteNotifications writes the switches with their stored key names.
func (w *JSONWriter) WriteNotifications(n session.Notifications) error {
	return w.encode(n)
}
