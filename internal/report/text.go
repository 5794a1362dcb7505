package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/session"
	"github.com/subha54820/Scam-Shield/internal/storage"
)

const ruleWidth = 60

// TextWriter writes plain text for terminals. It uses no ANSI colors so the
// output can be piped or redirected unchanged.
type TextWriter struct {
	baseWriter

	// verbose adds explanations, keywords and timestamps.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables the detailed sections.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to output.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.ToUpper(title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
}

func bullets(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "  %s:\n", title)
	for _, it := range items {
		fmt.Fprintf(sb, "    * %s\n", it)
	}
}

// WriteMessage writes msg on its own line.
func (w *TextWriter) WriteMessage(msg string) error {
	return w.writeString(msg + "\n")
}

// WriteUser writes the signed-in account.
func (w *TextWriter) WriteUser(u *model.User) error {
	return w.writeString(fmt.Sprintf("Signed in as %s <%s> (id %d)\n", u.Username, u.Email, u.ID))
}

// WriteAnalyses writes one block per analyzed message.
func (w *TextWriter) WriteAnalyses(items []Analysis) error {
	var sb strings.Builder
	for _, it := range items {
		section(&sb, "Message analysis")
		fmt.Fprintf(&sb, "  Message:    %s\n", truncate(it.Input, 50))
		if it.Err != nil {
			fmt.Fprintf(&sb, "  Error:      %s\n\n", it.Err)
			continue
		}

		r := it.Result
		risk := r.Risk()
		fmt.Fprintf(&sb, "  Verdict:    %s %s\n", risk.Icon(), risk.Label())
		fmt.Fprintf(&sb, "  Score:      %s\n", score(r.ScamScore))
		if r.ScamType != "" {
			fmt.Fprintf(&sb, "  Scam type:  %s\n", categoryLabel(r.ScamType))
		}
		if r.ExplanationForUser != "" {
			fmt.Fprintf(&sb, "  Summary:    %s\n", r.ExplanationForUser)
		}
		bullets(&sb, "Why", r.Reasons())
		bullets(&sb, "Red flags", r.RedFlags)
		bullets(&sb, "Stay safe", r.SafetyTips)

		if w.verbose {
			if r.Explanation != "" {
				fmt.Fprintf(&sb, "  Explanation: %s\n", r.Explanation)
			}
			if r.Confidence > 0 {
				fmt.Fprintf(&sb, "  Confidence: %s\n", percent(r.Confidence))
			}
			bullets(&sb, "Keywords", r.DetectedKeywords)
			bullets(&sb, "Categories", categoryLabels(r.DetectedCategories))
			bullets(&sb, "Tips", r.Tips)
		}
		sb.WriteString("\n")
	}
	return w.writeString(sb.String())
}

// WriteLinkChecks writes one block per checked URL.
func (w *TextWriter) WriteLinkChecks(items []LinkCheck) error {
	var sb strings.Builder
	for _, it := range items {
		section(&sb, "Link check")
		fmt.Fprintf(&sb, "  URL:        %s\n", it.URL)
		if it.Err != nil {
			fmt.Fprintf(&sb, "  Error:      %s\n\n", it.Err)
			continue
		}

		r := it.Result
		risk := r.Risk()
		fmt.Fprintf(&sb, "  Verdict:    %s %s\n", risk.Icon(), risk.Label())
		fmt.Fprintf(&sb, "  Score:      %s\n", score(r.RiskScore))
		fmt.Fprintf(&sb, "  Domain:     %s\n", orDash(r.DomainName()))
		fmt.Fprintf(&sb, "  Valid URL:  %s\n", yesNo(r.IsValid))
		fmt.Fprintf(&sb, "  HTTPS:      %s\n", yesNo(r.SSLValid))
		bullets(&sb, "Red flags", r.RedFlags)
		if r.Analysis != "" {
			fmt.Fprintf(&sb, "  Analysis:   %s\n", r.Analysis)
		}
		sb.WriteString("\n")
	}
	return w.writeString(sb.String())
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// WriteQuizQuestions lists questions with numbered options. Correct answers
// are never shown.
func (w *TextWriter) WriteQuizQuestions(questions []model.QuizQuestion) error {
	var sb strings.Builder
	section(&sb, "Scam awareness quiz")
	if len(questions) == 0 {
		sb.WriteString("  No questions available\n")
	}
	for i, q := range questions {
		fmt.Fprintf(&sb, "\n%d. [id %d] %s\n", i+1, q.ID, q.Question)
		if w.verbose {
			fmt.Fprintf(&sb, "   %s, %s\n", categoryLabel(q.Category), categoryLabel(q.Difficulty))
		}
		for _, o := range q.Options {
			fmt.Fprintf(&sb, "   (%d) %s\n", o.ID, o.Text)
		}
	}
	sb.WriteString("\n")
	return w.writeString(sb.String())
}

// WriteQuizResult writes the graded submission.
func (w *TextWriter) WriteQuizResult(r *model.QuizSubmitResponse) error {
	var sb strings.Builder
	section(&sb, "Quiz result")
	fmt.Fprintf(&sb, "  Score: %d/%d (%s)\n", r.Score, r.Total, percent(r.Percentage))
	bullets(&sb, "Feedback", r.Feedback)
	sb.WriteString("\n")
	return w.writeString(sb.String())
}

// WriteQuizHistory writes past attempts.
func (w *TextWriter) WriteQuizHistory(h *model.QuizHistory) error {
	var sb strings.Builder
	section(&sb, "Quiz history")
	if len(h.Attempts) == 0 {
		sb.WriteString("  No attempts yet\n")
	}
	for _, a := range h.Attempts {
		fmt.Fprintf(&sb, "  %-25s %d/%d (%s)\n", a.CompletedAt, a.Score, a.TotalQuestions, percent(a.Percentage))
	}
	writePageFooter(&sb, h.Page)
	return w.writeString(sb.String())
}

// WriteScanHistory writes a page of message or link checks.
func (w *TextWriter) WriteScanHistory(title string, h *model.ScanHistory) error {
	var sb strings.Builder
	section(&sb, title)
	if len(h.Scans) == 0 {
		sb.WriteString("  Nothing checked yet\n")
	}
	for _, s := range h.Scans {
		risk := s.Risk()
		fmt.Fprintf(&sb, "  %s %-11s %7s  %s\n", risk.Icon(), risk.Label(), score(s.RiskScore), truncate(s.Content, 40))
		if w.verbose {
			fmt.Fprintf(&sb, "     %s\n", s.CreatedAt)
		}
	}
	writePageFooter(&sb, h.Page)
	return w.writeString(sb.String())
}

// WriteReportHistory writes a page of the user's scam reports.
func (w *TextWriter) WriteReportHistory(h *model.ReportHistory) error {
	var sb strings.Builder
	section(&sb, "My reports")
	if len(h.Reports) == 0 {
		sb.WriteString("  No reports yet\n")
	}
	for _, r := range h.Reports {
		fmt.Fprintf(&sb, "  %s  %s via %s [%s]\n", r.ReportID, r.ScamType, r.Platform, orDash(r.Status))
		fmt.Fprintf(&sb, "     %s\n", truncate(r.Content, 50))
	}
	writePageFooter(&sb, h.Page)
	return w.writeString(sb.String())
}

func writePageFooter(sb *strings.Builder, p model.Page) {
	fmt.Fprintf(sb, "\n  Page %d, %d per page, %d total", p.Page, p.Limit, p.Total)
	if p.HasNext() {
		fmt.Fprintf(sb, " (next: --page %d)", p.Page+1)
	}
	sb.WriteString("\n")
}

// WriteLocalHistory writes checks saved on this device.
func (w *TextWriter) WriteLocalHistory(records []storage.CheckRecord) error {
	var sb strings.Builder
	section(&sb, "Local history")
	if len(records) == 0 {
		sb.WriteString("  Nothing saved on this device\n")
	}
	for _, rec := range records {
		risk := model.ParseRiskLevel(rec.RiskLevel)
		fmt.Fprintf(&sb, "  %s  %-7s %s %-11s %s\n",
			rec.Timestamp.Local().Format("2006-01-02 15:04"),
			rec.Kind,
			risk.Icon(),
			risk.Label(),
			truncate(rec.Input, 40),
		)
	}
	sb.WriteString("\n")
	return w.writeString(sb.String())
}

// WriteReportReceipt writes the acknowledgement of a scam report.
func (w *TextWriter) WriteReportReceipt(r *model.ReportScamResponse) error {
	var sb strings.Builder
	if r.Message != "" {
		sb.WriteString(r.Message)
		sb.WriteString("\n")
	} else {
		sb.WriteString("Report submitted\n")
	}
	if r.ReportID != "" {
		fmt.Fprintf(&sb, "Report ID: %s\n", r.ReportID)
	}
	return w.writeString(sb.String())
}

// WriteProfile writes the profile, the local phone number and the stats.
func (w *TextWriter) WriteProfile(p *Profile) error {
	var sb strings.Builder
	section(&sb, "Profile")
	if p.Profile != nil {
		fmt.Fprintf(&sb, "  Name:     %s\n", orDash(p.Profile.Name))
		fmt.Fprintf(&sb, "  Email:    %s\n", orDash(p.Profile.Email))
		fmt.Fprintf(&sb, "  Member:   %s\n", optional(p.Profile.CreatedAt))
	}
	fmt.Fprintf(&sb, "  Phone:    %s (this device only)\n", orDash(p.Phone))
	sb.WriteString("\n")
	if p.Stats != nil {
		writeUserStats(&sb, p.Stats)
	}
	return w.writeString(sb.String())
}

// WritePublicStats writes the community counters.
func (w *TextWriter) WritePublicStats(s *model.PublicStats) error {
	var sb strings.Builder
	section(&sb, "Community stats")
	fmt.Fprintf(&sb, "  Total checks: %d\n", s.TotalChecks)
	fmt.Fprintf(&sb, "  High risk:    %d\n", s.HighRisk)
	fmt.Fprintf(&sb, "  Suspicious:   %d\n", s.Suspicious)
	fmt.Fprintf(&sb, "  Safe:         %d\n", s.Safe)
	sb.WriteString("\n")
	return w.writeString(sb.String())
}

// WriteUserStats writes the signed-in user's counters.
func (w *TextWriter) WriteUserStats(s *model.UserStats) error {
	var sb strings.Builder
	writeUserStats(&sb, s)
	return w.writeString(sb.String())
}

func writeUserStats(sb *strings.Builder, s *model.UserStats) {
	section(sb, "My stats")
	fmt.Fprintf(sb, "  Total scans:    %d\n", s.TotalScans)
	fmt.Fprintf(sb, "  Scams detected: %d\n", s.ScamsDetected)
	fmt.Fprintf(sb, "  Safe:           %d\n", s.SafeDetected)
	fmt.Fprintf(sb, "  Quiz score:     %s\n", percent(s.QuizScore))
	fmt.Fprintf(sb, "  Joined:         %s\n", optional(s.JoinDate))
	sb.WriteString("\n")
}

// WriteNotifications writes the local notification switches.
func (w *TextWriter) WriteNotifications(n session.Notifications) error {
	var sb strings.Builder
	section(&sb, "Notifications")
	fmt.Fprintf(&sb, "  Email on high risk: %s\n", onOff(n.EmailHighRisk))
	fmt.Fprintf(&sb, "  Quiz reminders:     %s\n", onOff(n.QuizReminders))
	sb.WriteString("\n")
	return w.writeString(sb.String())
}
