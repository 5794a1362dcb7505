package model

// PublicStats are the aggregate counters shown on the landing page.
type PublicStats struct {
	TotalChecks int `json:"total_checks"`
	HighRisk    int `json:"high_risk"`
	Suspicious  int `json:"suspicious"`
	Safe        int `json:"safe"`
}
