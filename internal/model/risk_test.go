package model

import "testing"

func TestRiskLevelString(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		level    RiskLevel
		expected string
	}{
		{RiskSafe, "SAFE"},
		{RiskSuspicious, "SUSPICIOUS"},
		{RiskLikelyScam, "LIKELY_SCAM"},
		{RiskDangerous, "DANGEROUS"},
		{RiskUnknown, "UNKNOWN"},
		{RiskLevel(999), "UNKNOWN"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.level.String() != tc.expected {
				t.Errorf("got %q, expected %q", tc.level.String(), tc.expected)
			}
		})
	}
}

func TestParseRiskLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		label    string
		expected RiskLevel
	}{
		{"SAFE", RiskSafe},
		{"SUSPICIOUS", RiskSuspicious},
		{"LIKELY_SCAM", RiskLikelyScam},
		{"DANGEROUS", RiskDangerous},
		// Legacy analyzer labels
		{"Safe", RiskSafe},
		{"Suspicious", RiskSuspicious},
		{"High Risk Scam", RiskLikelyScam},
		// Loose input
		{" safe ", RiskSafe},
		{"likely_scam", RiskLikelyScam},
		{"", RiskUnknown},
		{"CRITICAL", RiskUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.label, func(t *testing.T) {
			t.Parallel()
			if got := ParseRiskLevel(tc.label); got != tc.expected {
				t.Errorf("ParseRiskLevel(%q) = %v, expected %v", tc.label, got, tc.expected)
			}
		})
	}
}

func TestRiskLevelIsHighRisk(t *testing.T) {
	t.Parallel()

	if !RiskLikelyScam.IsHighRisk() || !RiskDangerous.IsHighRisk() {
		t.Error("LIKELY_SCAM and DANGEROUS should be high risk")
	}
	for _, level := range []RiskLevel{RiskUnknown, RiskSafe, RiskSuspicious} {
		if level.IsHighRisk() {
			t.Errorf("%v should not be high risk", level)
		}
	}
}
