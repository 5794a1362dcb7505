package model

// UserProfile is the account profile.
type UserProfile struct {
	UserID    int64   `json:"user_id"`
	Email     string  `json:"email"`
	Name      string  `json:"name"`
	CreatedAt *string `json:"created_at"`
}

// ProfileUpdate carries the profile fields to change.
// Nil fields are left out of the request body.
type ProfileUpdate struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// UserStats holds the per-user usage counters.
type UserStats struct {
	TotalScans    int     `json:"total_scans"`
	ScamsDetected int     `json:"scams_detected"`
	SafeDetected  int     `json:"safe_detected"`
	QuizScore     float64 `json:"quiz_score"`
	JoinDate      *string `json:"join_date"`
}

// ScanItem is one message or link check in the user's history.
type ScanItem struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	RiskLevel string  `json:"risk_level"`
	RiskScore float64 `json:"risk_score"`
	CreatedAt string  `json:"created_at"`
}

// Risk returns the parsed risk level.
func (s *ScanItem) Risk() RiskLevel {
	return ParseRiskLevel(s.RiskLevel)
}

// ScanHistory is a page of message or link checks.
type ScanHistory struct {
	Scans []ScanItem `json:"scans"`
	Page
}

// ReportItem is one scam report submitted by the user.
type ReportItem struct {
	ReportID  string `json:"report_id"`
	Content   string `json:"content"`
	ScamType  string `json:"scam_type"`
	Platform  string `json:"platform"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// ReportHistory is a page of scam reports.
type ReportHistory struct {
	Reports []ReportItem `json:"reports"`
	Page
}
