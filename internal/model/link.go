package model

// LinkCheckResult is the backend verdict for a URL.
type LinkCheckResult struct {
	IsValid   bool     `json:"is_valid"`
	IsSafe    bool     `json:"is_safe"`
	Domain    *string  `json:"domain"`
	SSLValid  bool     `json:"ssl_valid"`
	RiskLevel string   `json:"risk_level"`
	RiskScore float64  `json:"risk_score"`
	RedFlags  []string `json:"red_flags"`
	Analysis  string   `json:"analysis"`
}

// Risk returns the parsed risk level.
func (r *LinkCheckResult) Risk() RiskLevel {
	return ParseRiskLevel(r.RiskLevel)
}

// DomainName returns the checked domain or "" when the backend could not extract one.
func (r *LinkCheckResult) DomainName() string {
	if r.Domain == nil {
		return ""
	}
	return *r.Domain
}
