package model

import "slices"

// ScamTypes are the report categories the backend accepts.
var ScamTypes = []string{
	"Phishing",
	"Fake Payment Request",
	"OTP Scam",
	"Romance Scam",
	"Investment Fraud",
	"Fake Tech Support",
	"Malware/Virus",
	"Lottery Scam",
	"Banking Fraud",
	"E-commerce Fraud",
	"Job Offer Scam",
	"Credential Harvesting",
	"Other",
}

// Platforms are the channels a scam can be reported for.
var Platforms = []string{
	"SMS",
	"WhatsApp",
	"Email",
	"Website",
	"Phone Call",
	"Social Media",
	"Other",
}

// IsKnownScamType reports whether t is one of ScamTypes.
func IsKnownScamType(t string) bool {
	return slices.Contains(ScamTypes, t)
}

// IsKnownPlatform reports whether p is one of Platforms.
func IsKnownPlatform(p string) bool {
	return slices.Contains(Platforms, p)
}

// Screenshot is an image attached to a scam report.
type Screenshot struct {
	// Filename is sent as the multipart file name.
	Filename string
	// Data is the raw image.
	Data []byte
}

// ReportScamPayload is the multipart form of a scam report.
// Empty optional fields are omitted from the request.
type ReportScamPayload struct {
	ReporterName string
	Email        string
	MobileNumber string
	ScamContent  string
	ScamType     string
	Platform     string
	Screenshot   *Screenshot
}

// ReportScamResponse is the backend acknowledgement of a scam report.
type ReportScamResponse struct {
	Success  bool   `json:"success"`
	ReportID string `json:"report_id"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
}
