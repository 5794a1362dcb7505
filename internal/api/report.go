package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"

	"github.com/subha54820/Scam-Shield/internal/model"
)

// SubmitReport files a scam report as a multipart form. Empty optional
// fields are left out; the screenshot is attached only when given.
func (c *Client) SubmitReport(ctx context.Context, payload model.ReportScamPayload) (*model.ReportScamResponse, error) {
	body, contentType, err := encodeReport(payload)
	if err != nil {
		return nil, err
	}

	var out model.ReportScamResponse
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/report-scam/",
		fallback:    "Failed to submit report",
		body:        body,
		contentType: contentType,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// encodeReport writes the form fields in the order the backend documents them.
func encodeReport(p model.ReportScamPayload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := []struct {
		name     string
		value    string
		optional bool
	}{
		{"reporter_name", p.ReporterName, true},
		{"email", p.Email, true},
		{"mobile_number", p.MobileNumber, true},
		{"scam_content", p.ScamContent, false},
		{"scam_type", p.ScamType, false},
		{"platform", p.Platform, false},
	}
	for _, f := range fields {
		if f.optional && f.value == "" {
			continue
		}
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	if p.Screenshot != nil {
		name := filepath.Base(p.Screenshot.Filename)
		if name == "." || name == string(filepath.Separator) {
			name = "screenshot"
		}
		part, err := w.CreateFormFile("screenshot", name)
		if err != nil {
			return nil, "", fmt.Errorf("failed to attach screenshot: %w", err)
		}
		if _, err := part.Write(p.Screenshot.Data); err != nil {
			return nil, "", fmt.Errorf("failed to attach screenshot: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finish form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
