package model

import "strings"

// RiskLevel is the backend's verdict for a message or link, normalized for display.
// The client never computes a risk level itself; it only parses the string the
// backend returns so that results can be ordered, colored and mapped to exit codes.
type RiskLevel int

const (
	// RiskUnknown is used for any label the client does not recognize.
	RiskUnknown RiskLevel = iota

	// RiskSafe means no scam indicators were found.
	RiskSafe

	// RiskSuspicious means some indicators were found and the user should be careful.
	RiskSuspicious

	// RiskLikelyScam is the highest verdict for analyzed messages.
	RiskLikelyScam

	// RiskDangerous is the highest verdict for checked links.
	RiskDangerous
)

// riskLabels maps every label the backend is known to emit.
// Message analysis uses the document labels (SAFE, SUSPICIOUS, LIKELY_SCAM);
// the public stats endpoint still counts the legacy analyzer labels.
var riskLabels = map[string]RiskLevel{
	"SAFE":           RiskSafe,
	"SUSPICIOUS":     RiskSuspicious,
	"LIKELY_SCAM":    RiskLikelyScam,
	"DANGEROUS":      RiskDangerous,
	"Safe":           RiskSafe,
	"Suspicious":     RiskSuspicious,
	"High Risk Scam": RiskLikelyScam,
}

// ParseRiskLevel converts a backend risk label into a RiskLevel.
func ParseRiskLevel(label string) RiskLevel {
	label = strings.TrimSpace(label)
	if level, ok := riskLabels[label]; ok {
		return level
	}
	if level, ok := riskLabels[strings.ToUpper(label)]; ok {
		return level
	}
	return RiskUnknown
}

// String returns the canonical backend label.
func (r RiskLevel) String() string {
	switch r {
	case RiskSafe:
		return "SAFE"
	case RiskSuspicious:
		return "SUSPICIOUS"
	case RiskLikelyScam:
		return "LIKELY_SCAM"
	case RiskDangerous:
		return "DANGEROUS"
	default:
		return "UNKNOWN"
	}
}

// Label returns a short human-readable label.
func (r RiskLevel) Label() string {
	switch r {
	case RiskSafe:
		return "Safe"
	case RiskSuspicious:
		return "Suspicious"
	case RiskLikelyScam:
		return "Likely scam"
	case RiskDangerous:
		return "Dangerous"
	default:
		return "Unknown"
	}
}

// Icon returns the emoji used by the text and Markdown writers.
func (r RiskLevel) Icon() string {
	switch r {
	case RiskSafe:
		return "🟢"
	case RiskSuspicious:
		return "🟡"
	case RiskLikelyScam, RiskDangerous:
		return "🔴"
	default:
		return "⚪"
	}
}

// IsHighRisk reports whether the verdict is the top level for its kind of check.
func (r RiskLevel) IsHighRisk() bool {
	return r == RiskLikelyScam || r == RiskDangerous
}
