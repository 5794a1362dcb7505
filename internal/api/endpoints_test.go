package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/subha54820/Scam-Shield/internal/model"
)

func modelUpdateName(name string) model.ProfileUpdate {
	return model.ProfileUpdate{Name: &name}
}

// decodeBody decodes a JSON request body into a map.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		t.Errorf("failed to decode request body: %v", err)
	}
	return m
}

func TestEndpointRoutes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	testCases := []struct {
		name      string
		method    string
		path      string
		query     string
		authed    bool
		fallback  string
		call      func(*Client) error
		checkBody func(*testing.T, map[string]any)
	}{
		{
			name: "Analyze", method: http.MethodPost, path: "/api/analyze/", authed: true, fallback: "Analysis failed",
			call: func(c *Client) error { _, err := c.Analyze(ctx, "  you won a prize!  "); return err },
			checkBody: func(t *testing.T, b map[string]any) {
				if b["message"] != "you won a prize!" {
					t.Errorf("message = %v, want trimmed", b["message"])
				}
			},
		},
		{
			name: "CheckLink", method: http.MethodPost, path: "/api/link/check/", authed: true, fallback: "Link check failed",
			call: func(c *Client) error { _, err := c.CheckLink(ctx, " https://example.com "); return err },
			checkBody: func(t *testing.T, b map[string]any) {
				if b["url"] != "https://example.com" {
					t.Errorf("url = %v, want trimmed", b["url"])
				}
			},
		},
		{
			name: "Register", method: http.MethodPost, path: "/api/auth/register/", fallback: "Registration failed",
			call: func(c *Client) error { _, err := c.Register(ctx, "asha", "a@b.co", "password1"); return err },
			checkBody: func(t *testing.T, b map[string]any) {
				if b["username"] != "asha" || b["email"] != "a@b.co" || b["password"] != "password1" {
					t.Errorf("body = %v", b)
				}
			},
		},
		{
			name: "Login", method: http.MethodPost, path: "/api/auth/login/", fallback: "Login failed",
			call: func(c *Client) error { _, err := c.Login(ctx, "asha", "password1"); return err },
		},
		{
			name: "Me", method: http.MethodGet, path: "/api/auth/me/", authed: true, fallback: "Session invalid",
			call: func(c *Client) error { _, err := c.Me(ctx); return err },
		},
		{
			name: "RequestRecovery", method: http.MethodPost, path: "/api/auth/recovery/request/", fallback: "Request failed",
			call: func(c *Client) error { _, err := c.RequestRecovery(ctx, "a@b.co"); return err },
		},
		{
			name: "VerifyRecovery", method: http.MethodPost, path: "/api/auth/recovery/verify/", fallback: "Verification failed",
			call: func(c *Client) error { _, err := c.VerifyRecovery(ctx, "a@b.co", "123456", "newpassword"); return err },
			checkBody: func(t *testing.T, b map[string]any) {
				if b["code"] != "123456" || b["new_password"] != "newpassword" {
					t.Errorf("body = %v", b)
				}
			},
		},
		{
			name: "ChangePassword", method: http.MethodPost, path: "/api/auth/change-password/", authed: true, fallback: "Failed to change password",
			call: func(c *Client) error { _, err := c.ChangePassword(ctx, "oldpassword", "newpassword"); return err },
			checkBody: func(t *testing.T, b map[string]any) {
				if b["old_password"] != "oldpassword" || b["new_password"] != "newpassword" {
					t.Errorf("body = %v", b)
				}
			},
		},
		{
			name: "QuizQuestions", method: http.MethodGet, path: "/api/quiz/questions/", fallback: "Failed to load questions",
			call: func(c *Client) error { _, err := c.QuizQuestions(ctx); return err },
		},
		{
			name: "SubmitQuiz", method: http.MethodPost, path: "/api/quiz/submit/", authed: true, fallback: "Submit failed",
			call: func(c *Client) error { _, err := c.SubmitQuiz(ctx, map[string]int64{"1": 3}); return err },
			checkBody: func(t *testing.T, b map[string]any) {
				answers, ok := b["answers"].(map[string]any)
				if !ok || answers["1"] != float64(3) {
					t.Errorf("answers = %v", b["answers"])
				}
			},
		},
		{
			name: "QuizHistory", method: http.MethodGet, path: "/api/quiz/history/", query: "page=2&limit=5", authed: true, fallback: "Failed to load quiz history",
			call: func(c *Client) error { _, err := c.QuizHistory(ctx, 2, 5); return err },
		},
		{
			name: "Profile", method: http.MethodGet, path: "/api/user/profile/", authed: true, fallback: "Failed to load profile",
			call: func(c *Client) error { _, err := c.Profile(ctx); return err },
		},
		{
			name: "UpdateProfile", method: http.MethodPut, path: "/api/user/profile/", authed: true, fallback: "Update failed",
			call: func(c *Client) error { _, err := c.UpdateProfile(ctx, modelUpdateName("Asha")); return err },
			checkBody: func(t *testing.T, b map[string]any) {
				if _, ok := b["email"]; ok || b["name"] != "Asha" {
					t.Errorf("body = %v, want only name", b)
				}
			},
		},
		{
			name: "DeleteAccount", method: http.MethodDelete, path: "/api/user/profile/", authed: true, fallback: "Delete failed",
			call: func(c *Client) error { return c.DeleteAccount(ctx) },
		},
		{
			name: "UserStats", method: http.MethodGet, path: "/api/user/stats/", authed: true, fallback: "Failed to load stats",
			call: func(c *Client) error { _, err := c.UserStats(ctx); return err },
		},
		{
			name: "MessageHistory", method: http.MethodGet, path: "/api/message/history/", query: "page=1&limit=10", authed: true, fallback: "Failed to load history",
			call: func(c *Client) error { _, err := c.MessageHistory(ctx, 0, 0); return err },
		},
		{
			name: "LinkHistory", method: http.MethodGet, path: "/api/link/history/", query: "page=3&limit=10", authed: true, fallback: "Failed to load history",
			call: func(c *Client) error { _, err := c.LinkHistory(ctx, 3, 10); return err },
		},
		{
			name: "MyReports", method: http.MethodGet, path: "/api/report/my-reports/", query: "page=1&limit=50", authed: true, fallback: "Failed to load reports",
			call: func(c *Client) error { _, err := c.MyReports(ctx, 1, 50); return err },
		},
		{
			name: "PublicStats", method: http.MethodGet, path: "/api/stats/", fallback: "Failed to load stats",
			call: func(c *Client) error { _, err := c.PublicStats(ctx); return err },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			t.Run("success", func(t *testing.T) {
				t.Parallel()

				c := newTestClient(t, signedIn(), func(w http.ResponseWriter, r *http.Request) {
					if r.Method != tc.method {
						t.Errorf("method = %s, want %s", r.Method, tc.method)
					}
					if r.URL.Path != tc.path {
						t.Errorf("path = %s, want %s", r.URL.Path, tc.path)
					}
					if r.URL.RawQuery != tc.query {
						t.Errorf("query = %q, want %q", r.URL.RawQuery, tc.query)
					}
					wantAuth := ""
					if tc.authed {
						wantAuth = "Token tok123"
					}
					if got := r.Header.Get("Authorization"); got != wantAuth {
						t.Errorf("Authorization = %q, want %q", got, wantAuth)
					}
					if tc.checkBody != nil {
						tc.checkBody(t, decodeBody(t, r))
					}
					writeJSON(t, w, http.StatusOK, map[string]any{"message": "ok"})
				})

				if err := tc.call(c); err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			})

			t.Run("fallback", func(t *testing.T) {
				t.Parallel()

				c := newTestClient(t, signedIn(), func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(t, w, http.StatusBadRequest, map[string]any{})
				})

				err := tc.call(c)
				if err == nil || err.Error() != tc.fallback {
					t.Errorf("error = %v, want %q", err, tc.fallback)
				}
			})

			t.Run("server message", func(t *testing.T) {
				t.Parallel()

				c := newTestClient(t, signedIn(), func(w http.ResponseWriter, _ *http.Request) {
					writeJSON(t, w, http.StatusBadRequest, map[string]any{"error": "server says no"})
				})

				err := tc.call(c)
				if err == nil || err.Error() != "server says no" {
					t.Errorf("error = %v, want server message", err)
				}
			})
		})
	}
}

func TestAnalyzeDecodesResult(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, signedOut(), func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"input_message":     "Your KYC expires today, share OTP",
			"risk_level":        "LIKELY_SCAM",
			"scam_score":        87.5,
			"detected_keywords": []string{"kyc", "otp"},
			"scam_type":         "OTP Scam",
			"safety_tips":       []string{"Never share OTP"},
			"language_detected": "english",
		})
	})

	res, err := c.Analyze(context.Background(), "Your KYC expires today, share OTP")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if res.Risk() != model.RiskLikelyScam || res.ScamScore != 87.5 || len(res.DetectedKeywords) != 2 {
		t.Errorf("Analyze() = %+v", res)
	}
}

func TestQuizQuestionsDecode(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, signedOut(), func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"questions":[{"id":1,"question":"Q?","options":[{"id":10,"text":"A","is_correct":true}],"category":"otp","difficulty":"easy"}]}`)
	})

	qs, err := c.QuizQuestions(context.Background())
	if err != nil {
		t.Fatalf("QuizQuestions() error = %v", err)
	}
	if len(qs) != 1 || qs[0].Options[0].ID != 10 || !qs[0].Options[0].IsCorrect {
		t.Errorf("QuizQuestions() = %+v", qs)
	}
}

func TestDeleteAccountNoContent(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, signedIn(), func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteAccount(context.Background()); err != nil {
		t.Errorf("DeleteAccount() error = %v", err)
	}
}

func TestChangePasswordGuard(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		status      int
		contentType string
		body        string
		want        string
		wantErr     error
	}{
		{
			name: "html error page", status: http.StatusBadGateway, contentType: "text/html",
			body: "<!DOCTYPE html><html><head><title>502 Bad Gateway</title></head></html>",
			want: "Server returned an error page. Check that the backend is running and SCAMSHIELD_API_URL points to it.", wantErr: ErrErrorPage,
		},
		{
			name: "html with success status", status: http.StatusOK, contentType: "text/html; charset=utf-8",
			body: "<html></html>",
			want: "Server returned an error page. Check that the backend is running and SCAMSHIELD_API_URL points to it.", wantErr: ErrErrorPage,
		},
		{
			name: "plain text success", status: http.StatusOK, contentType: "text/plain",
			body: "done", want: "Invalid response from server", wantErr: ErrInvalidResponse,
		},
		{
			name: "plain text failure", status: http.StatusInternalServerError, contentType: "text/plain",
			body: "boom", want: "Request failed (500)",
		},
		{
			name: "json failure without message", status: http.StatusBadRequest, contentType: "application/json",
			body: `{}`, want: "Failed to change password",
		},
		{
			name: "json failure with message", status: http.StatusBadRequest, contentType: "application/json; charset=utf-8",
			body: `{"error":"Old password is incorrect"}`, want: "Old password is incorrect",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, signedIn(), func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", tc.contentType)
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := c.ChangePassword(context.Background(), "oldpassword", "newpassword")
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.want {
				t.Errorf("error = %q, want %q", err.Error(), tc.want)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("errors.Is(%v) = false", tc.wantErr)
			}
		})
	}

	t.Run("json success", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, signedIn(), func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]string{"message": "Password changed"})
		})

		res, err := c.ChangePassword(context.Background(), "oldpassword", "newpassword")
		if err != nil {
			t.Fatalf("ChangePassword() error = %v", err)
		}
		if res.Message != "Password changed" {
			t.Errorf("Message = %q", res.Message)
		}
	})
}

func TestOtherEndpointsIgnoreContentType(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, signedIn(), func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = io.WriteString(w, "<html><title>502</title></html>")
	})

	_, err := c.Profile(context.Background())
	if err == nil || err.Error() != "Failed to load profile" {
		t.Errorf("error = %v, want the endpoint fallback", err)
	}
}

func TestSubmitReportMultipart(t *testing.T) {
	t.Parallel()

	t.Run("all fields", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, signedIn(), func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "" {
				t.Error("report submission is anonymous")
			}
			if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data; boundary=") {
				t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
			}
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("ParseMultipartForm: %v", err)
				return
			}
			want := map[string]string{
				"reporter_name": "Asha",
				"email":         "asha@example.com",
				"mobile_number": "9876543210",
				"scam_content":  "Caller asked for my OTP to unblock my bank account",
				"scam_type":     "OTP Scam",
				"platform":      "Phone Call",
			}
			for k, v := range want {
				if got := r.FormValue(k); got != v {
					t.Errorf("%s = %q, want %q", k, got, v)
				}
			}
			file, header, err := r.FormFile("screenshot")
			if err != nil {
				t.Errorf("FormFile: %v", err)
				return
			}
			defer file.Close()
			data, _ := io.ReadAll(file)
			if header.Filename != "shot.png" || string(data) != "PNGDATA" {
				t.Errorf("screenshot = %q (%q)", header.Filename, data)
			}
			writeJSON(t, w, http.StatusCreated, map[string]any{"success": true, "report_id": "RPT-1", "message": "Thanks"})
		})

		res, err := c.SubmitReport(context.Background(), model.ReportScamPayload{
			ReporterName: "Asha",
			Email:        "asha@example.com",
			MobileNumber: "9876543210",
			ScamContent:  "Caller asked for my OTP to unblock my bank account",
			ScamType:     "OTP Scam",
			Platform:     "Phone Call",
			Screenshot:   &model.Screenshot{Filename: "/tmp/shots/shot.png", Data: []byte("PNGDATA")},
		})
		if err != nil {
			t.Fatalf("SubmitReport() error = %v", err)
		}
		if !res.Success || res.ReportID != "RPT-1" {
			t.Errorf("SubmitReport() = %+v", res)
		}
	})

	t.Run("optional fields omitted", func(t *testing.T) {
		t.Parallel()

		c := newTestClient(t, signedOut(), func(w http.ResponseWriter, r *http.Request) {
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("ParseMultipartForm: %v", err)
				return
			}
			for _, k := range []string{"reporter_name", "email", "mobile_number"} {
				if _, ok := r.MultipartForm.Value[k]; ok {
					t.Errorf("%s should be omitted when empty", k)
				}
			}
			for _, k := range []string{"scam_content", "scam_type", "platform"} {
				if _, ok := r.MultipartForm.Value[k]; !ok {
					t.Errorf("%s should always be sent", k)
				}
			}
			if len(r.MultipartForm.File) != 0 {
				t.Error("no file part expected")
			}
			writeJSON(t, w, http.StatusOK, map[string]any{"success": true})
		})

		_, err := c.SubmitReport(context.Background(), model.ReportScamPayload{
			ScamContent: "Fake lottery message asking for a fee",
		})
		if err != nil {
			t.Fatalf("SubmitReport() error = %v", err)
		}
	})
}
