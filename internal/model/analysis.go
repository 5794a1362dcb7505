package model

// AnalyzeResult is the backend verdict for a message.
// Fields marked optional may be absent and default to their zero value.
type AnalyzeResult struct {
	InputMessage       string   `json:"input_message"`
	RiskLevel          string   `json:"risk_level"`
	ScamScore          float64  `json:"scam_score"`
	RedFlags           []string `json:"red_flags,omitempty"`
	Confidence         float64  `json:"confidence,omitempty"`
	Explanation        string   `json:"explanation,omitempty"`
	Tips               []string `json:"tips,omitempty"`
	DetectedKeywords   []string `json:"detected_keywords"`
	ScamType           string   `json:"scam_type"`
	ExplanationForUser string   `json:"explanation_for_user"`
	DetailedReasons    []string `json:"detailed_reasons"`
	SafetyTips         []string `json:"safety_tips"`
	DetectedCategories []string `json:"detected_categories,omitempty"`
	LanguageDetected   string   `json:"language_detected,omitempty"`
	OdiaReasons        []string `json:"odia_reasons,omitempty"`
	HindiReasons       []string `json:"hindi_reasons,omitempty"`
	EnglishReasons     []string `json:"english_reasons,omitempty"`
}

// Risk returns the parsed risk level.
func (r *AnalyzeResult) Risk() RiskLevel {
	return ParseRiskLevel(r.RiskLevel)
}

// Reasons returns the reasons to show the user, preferring the language the
// backend detected and falling back to the detailed reasons.
func (r *AnalyzeResult) Reasons() []string {
	switch r.LanguageDetected {
	case "odia", "or":
		if len(r.OdiaReasons) > 0 {
			return r.OdiaReasons
		}
	case "hindi", "hi":
		if len(r.HindiReasons) > 0 {
			return r.HindiReasons
		}
	case "english", "en":
		if len(r.EnglishReasons) > 0 {
			return r.EnglishReasons
		}
	}
	return r.DetailedReasons
}
