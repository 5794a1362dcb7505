package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/session"
	"github.com/subha54820/Scam-Shield/internal/storage"
)

// MarkdownWriter writes GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// cell escapes table cell content.
func cell(s string) string {
	return strings.ReplaceAll(orDash(s), "|", `\|`)
}

func code(s string) string {
	return "`" + strings.ReplaceAll(s, "`", "'") + "`"
}

// WriteMessage writes msg as a paragraph.
func (w *MarkdownWriter) WriteMessage(msg string) error {
	md := markdown.NewMarkdown(w.output)
	md.PlainText(msg)
	return md.Build()
}

// WriteUser writes the signed-in account as a table.
func (w *MarkdownWriter) WriteUser(u *model.User) error {
	md := markdown.NewMarkdown(w.output)
	md.H2("Account")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"ID", "Username", "Email"},
		Rows:   [][]string{{strconv.FormatInt(u.ID, 10), cell(u.Username), cell(u.Email)}},
	})
	return md.Build()
}

// WriteAnalyses writes one section per message followed by an alert
// matching the verdict.
func (w *MarkdownWriter) WriteAnalyses(items []Analysis) error {
	md := markdown.NewMarkdown(w.output)
	md.H1("Message Analysis")
	md.PlainText("")

	for _, it := range items {
		md.H2(truncate(it.Input, 60))
		md.PlainText("")
		if it.Err != nil {
			md.Cautionf("Analysis failed: %s", it.Err)
			md.PlainText("")
			continue
		}

		r := it.Result
		risk := r.Risk()
		md.Table(markdown.TableSet{
			Header: []string{"Property", "Value"},
			Rows: [][]string{
				{"Verdict", risk.Icon() + " " + risk.Label()},
				{"Score", score(r.ScamScore)},
				{"Scam type", categoryLabel(r.ScamType)},
				{"Language", cell(r.LanguageDetected)},
			},
		})
		md.PlainText("")
		writeVerdictAlert(md, risk, r.ExplanationForUser)

		if reasons := r.Reasons(); len(reasons) > 0 {
			md.H3("Why")
			md.BulletList(reasons...)
			md.PlainText("")
		}
		if len(r.RedFlags) > 0 {
			md.H3("Red flags")
			md.BulletList(r.RedFlags...)
			md.PlainText("")
		}
		if len(r.SafetyTips) > 0 {
			md.H3("Stay safe")
			md.BulletList(r.SafetyTips...)
			md.PlainText("")
		}
		if r.Explanation != "" {
			md.Details("Explanation", r.Explanation)
			md.PlainText("")
		}
	}
	return md.Build()
}

func writeVerdictAlert(md *markdown.Markdown, risk model.RiskLevel, summary string) {
	if summary == "" {
		summary = risk.Label()
	}
	switch risk {
	case model.RiskLikelyScam, model.RiskDangerous:
		md.Cautionf("%s", summary)
	case model.RiskSuspicious:
		md.Warningf("%s", summary)
	case model.RiskSafe:
		md.Tip(summary)
	default:
		md.Note(summary)
	}
	md.PlainText("")
}

// WriteLinkChecks writes a summary table and one alert per flagged link.
func (w *MarkdownWriter) WriteLinkChecks(items []LinkCheck) error {
	md := markdown.NewMarkdown(w.output)
	md.H1("Link Check")
	md.PlainText("")

	rows := make([][]string, 0, len(items))
	for _, it := range items {
		if it.Err != nil {
			rows = append(rows, []string{code(it.URL), "⚠️ Error", "-", "-", cell(it.Err.Error())})
			continue
		}
		r := it.Result
		risk := r.Risk()
		rows = append(rows, []string{
			code(it.URL),
			risk.Icon() + " " + risk.Label(),
			score(r.RiskScore),
			cell(r.DomainName()),
			cell(strings.Join(r.RedFlags, "; ")),
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Verdict", "Score", "Domain", "Red flags"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, it := range items {
		if it.Result == nil || it.Result.Analysis == "" {
			continue
		}
		md.Details(it.URL, it.Result.Analysis)
	}
	return md.Build()
}

// WriteQuizQuestions writes each question with its options as a list.
func (w *MarkdownWriter) WriteQuizQuestions(questions []model.QuizQuestion) error {
	md := markdown.NewMarkdown(w.output)
	md.H1("Scam Awareness Quiz")
	md.PlainText("")
	for i, q := range questions {
		md.H3(strconv.Itoa(i+1) + ". " + q.Question)
		md.PlainTextf("*%s, %s, id %d*", categoryLabel(q.Category), categoryLabel(q.Difficulty), q.ID)
		md.PlainText("")
		opts := make([]string, len(q.Options))
		for j, o := range q.Options {
			opts[j] = "(" + strconv.FormatInt(o.ID, 10) + ") " + o.Text
		}
		md.BulletList(opts...)
		md.PlainText("")
	}
	return md.Build()
}

// WriteQuizResult writes the score and feedback.
func (w *MarkdownWriter) WriteQuizResult(r *model.QuizSubmitResponse) error {
	md := markdown.NewMarkdown(w.output)
	md.H2("Quiz Result")
	md.PlainText("")
	md.PlainTextf("**%d/%d** (%s)", r.Score, r.Total, percent(r.Percentage))
	md.PlainText("")
	if len(r.Feedback) > 0 {
		md.BulletList(r.Feedback...)
	}
	return md.Build()
}

// WriteQuizHistory writes past attempts as a table.
func (w *MarkdownWriter) WriteQuizHistory(h *model.QuizHistory) error {
	md := markdown.NewMarkdown(w.output)
	md.H2("Quiz History")
	md.PlainText("")
	rows := make([][]string, len(h.Attempts))
	for i, a := range h.Attempts {
		rows[i] = []string{
			cell(a.CompletedAt),
			strconv.Itoa(a.Score) + "/" + strconv.Itoa(a.TotalQuestions),
			percent(a.Percentage),
		}
	}
	md.Table(markdown.TableSet{Header: []string{"Completed", "Score", "Percentage"}, Rows: rows})
	writePageNote(md, h.Page)
	return md.Build()
}

// WriteScanHistory writes a page of checks as a table.
func (w *MarkdownWriter) WriteScanHistory(title string, h *model.ScanHistory) error {
	md := markdown.NewMarkdown(w.output)
	md.H2(title)
	md.PlainText("")
	rows := make([][]string, len(h.Scans))
	for i, s := range h.Scans {
		risk := s.Risk()
		rows[i] = []string{
			cell(s.CreatedAt),
			risk.Icon() + " " + risk.Label(),
			score(s.RiskScore),
			cell(truncate(s.Content, 60)),
		}
	}
	md.Table(markdown.TableSet{Header: []string{"Date", "Verdict", "Score", "Content"}, Rows: rows})
	writePageNote(md, h.Page)
	return md.Build()
}

// WriteReportHistory writes a page of reports as a table.
func (w *MarkdownWriter) WriteReportHistory(h *model.ReportHistory) error {
	md := markdown.NewMarkdown(w.output)
	md.H2("My Reports")
	md.PlainText("")
	rows := make([][]string, len(h.Reports))
	for i, r := range h.Reports {
		rows[i] = []string{
			code(r.ReportID),
			cell(r.CreatedAt),
			cell(r.ScamType),
			cell(r.Platform),
			cell(r.Status),
			cell(truncate(r.Content, 50)),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Report", "Date", "Type", "Platform", "Status", "Content"},
		Rows:   rows,
	})
	writePageNote(md, h.Page)
	return md.Build()
}

func writePageNote(md *markdown.Markdown, p model.Page) {
	md.PlainText("")
	if p.HasNext() {
		md.PlainTextf("Page %d of %d results. More with `--page %d`.", p.Page, p.Total, p.Page+1)
		return
	}
	md.PlainTextf("Page %d of %d results.", p.Page, p.Total)
}

// WriteLocalHistory writes checks saved on this device.
func (w *MarkdownWriter) WriteLocalHistory(records []storage.CheckRecord) error {
	md := markdown.NewMarkdown(w.output)
	md.H2("Local History")
	md.PlainText("")
	rows := make([][]string, len(records))
	for i, rec := range records {
		risk := model.ParseRiskLevel(rec.RiskLevel)
		rows[i] = []string{
			rec.Timestamp.Format("2006-01-02 15:04"),
			string(rec.Kind),
			risk.Icon() + " " + risk.Label(),
			cell(truncate(rec.Input, 60)),
		}
	}
	md.Table(markdown.TableSet{Header: []string{"Date", "Kind", "Verdict", "Input"}, Rows: rows})
	return md.Build()
}

// WriteReportReceipt writes the acknowledgement of a scam report.
func (w *MarkdownWriter) WriteReportReceipt(r *model.ReportScamResponse) error {
	md := markdown.NewMarkdown(w.output)
	msg := r.Message
	if msg == "" {
		msg = "Report submitted"
	}
	if r.ReportID != "" {
		msg += " Report ID: " + code(r.ReportID)
	}
	md.Tip(msg)
	return md.Build()
}

// WriteProfile writes the profile and, when present, the stats.
func (w *MarkdownWriter) WriteProfile(p *Profile) error {
	md := markdown.NewMarkdown(w.output)
	md.H2("Profile")
	md.PlainText("")
	rows := [][]string{}
	if p.Profile != nil {
		rows = append(rows,
			[]string{"Name", cell(p.Profile.Name)},
			[]string{"Email", cell(p.Profile.Email)},
			[]string{"Member since", optional(p.Profile.CreatedAt)},
		)
	}
	rows = append(rows, []string{"Phone (this device)", cell(p.Phone)})
	md.Table(markdown.TableSet{Header: []string{"Field", "Value"}, Rows: rows})
	md.PlainText("")
	if p.Stats != nil {
		writeUserStatsMarkdown(md, p.Stats)
	}
	return md.Build()
}

// WritePublicStats writes the counters and a pie chart of the verdicts.
func (w *MarkdownWriter) WritePublicStats(s *model.PublicStats) error {
	md := markdown.NewMarkdown(w.output)
	md.H2("Community Stats")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Verdict", "Count"},
		Rows: [][]string{
			{model.RiskLikelyScam.Icon() + " High risk", strconv.Itoa(s.HighRisk)},
			{model.RiskSuspicious.Icon() + " Suspicious", strconv.Itoa(s.Suspicious)},
			{model.RiskSafe.Icon() + " Safe", strconv.Itoa(s.Safe)},
			{"**Total checks**", "**" + strconv.Itoa(s.TotalChecks) + "**"},
		},
	})
	md.PlainText("")

	if s.HighRisk+s.Suspicious+s.Safe > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Verdicts"),
			piechart.WithShowData(true),
		)
		if s.HighRisk > 0 {
			chart.LabelAndIntValue("High risk", uint64(s.HighRisk))
		}
		if s.Suspicious > 0 {
			chart.LabelAndIntValue("Suspicious", uint64(s.Suspicious))
		}
		if s.Safe > 0 {
			chart.LabelAndIntValue("Safe", uint64(s.Safe))
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}
	return md.Build()
}

// WriteUserStats writes the signed-in user's counters.
func (w *MarkdownWriter) WriteUserStats(s *model.UserStats) error {
	md := markdown.NewMarkdown(w.output)
	writeUserStatsMarkdown(md, s)
	return md.Build()
}

func writeUserStatsMarkdown(md *markdown.Markdown, s *model.UserStats) {
	md.H2("My Stats")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total scans", strconv.Itoa(s.TotalScans)},
			{"Scams detected", strconv.Itoa(s.ScamsDetected)},
			{"Safe", strconv.Itoa(s.SafeDetected)},
			{"Quiz score", percent(s.QuizScore)},
			{"Joined", optional(s.JoinDate)},
		},
	})
	md.PlainText("")
}

// WriteNotifications writes the local notification switches.
func (w *MarkdownWriter) WriteNotifications(n session.Notifications) error {
	md := markdown.NewMarkdown(w.output)
	md.H2("Notifications")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Setting", "State"},
		Rows: [][]string{
			{"Email on high risk", onOff(n.EmailHighRisk)},
			{"Quiz reminders", onOff(n.QuizReminders)},
		},
	})
	return md.Build()
}
