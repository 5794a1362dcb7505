package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subha54820/Scam-Shield/internal/imagemeta"
	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/validation"
)

// errScreenshotLocation stops an upload that would reveal where the photo was taken.
var errScreenshotLocation = errors.New("screenshot contains GPS location data; remove it or pass --allow-location")

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report a scam",
		Long: `Report submits a scam you received so that others can be warned.
No account is needed.

A screenshot is checked for metadata before upload. Device, author and time
details produce a warning; GPS coordinates stop the upload unless
--allow-location is given.

Scam types: ` + strings.Join(model.ScamTypes, ", ") + `
Platforms:  ` + strings.Join(model.Platforms, ", ") + `

Examples:
  scamshield report --type "OTP Scam" --platform SMS \
    --content "Caller asked for the OTP sent to my phone to 'cancel' an order"

  scamshield report --type Phishing --platform Email \
    --content "$(cat mail.txt)" --screenshot mail.png`,
		Args: cobra.NoArgs,
		RunE: runE(runReportCmd),
	}
	cmd.Flags().String("content", "", "What the scammer sent or said (20 to 5000 characters)")
	cmd.Flags().String("type", "", "Scam type")
	cmd.Flags().String("platform", "", "Where the scam happened")
	cmd.Flags().String("name", "", "Your name (optional)")
	cmd.Flags().String("email", "", "Your email address (optional)")
	cmd.Flags().String("phone", "", "Your mobile number (optional, digits only)")
	cmd.Flags().String("screenshot", "", "Path to a screenshot (JPEG, PNG, GIF or WebP, up to 10 MB)")
	cmd.Flags().Bool("allow-location", false, "Upload a screenshot even if it contains GPS data")
	return cmd
}

func runReportCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	content, _ := flags.GetString("content")            //nolint:errcheck // flag is defined above
	scamType, _ := flags.GetString("type")              //nolint:errcheck // flag is defined above
	platform, _ := flags.GetString("platform")          //nolint:errcheck // flag is defined above
	name, _ := flags.GetString("name")                  //nolint:errcheck // flag is defined above
	email, _ := flags.GetString("email")                //nolint:errcheck // flag is defined above
	phone, _ := flags.GetString("phone")                //nolint:errcheck // flag is defined above
	screenshot, _ := flags.GetString("screenshot")      //nolint:errcheck // flag is defined above
	allowLocation, _ := flags.GetBool("allow-location") //nolint:errcheck // flag is defined above

	scamType = strings.TrimSpace(scamType)
	platform = strings.TrimSpace(platform)

	var form validation.Form
	form.Check("content", validation.ScamContent(content)).
		Check("type", knownChoice(scamType, "Scam type", model.IsKnownScamType, model.ScamTypes)).
		Check("platform", knownChoice(platform, "Platform", model.IsKnownPlatform, model.Platforms)).
		Check("email", validation.EmailOptional(email))
	if err := form.Err(); err != nil {
		return err
	}

	payload := model.ReportScamPayload{
		ReporterName: strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		MobileNumber: validation.RestrictPhone(phone, validation.DefaultPhoneMaxLength),
		ScamContent:  strings.TrimSpace(content),
		ScamType:     scamType,
		Platform:     platform,
	}
	if phone != "" && payload.MobileNumber == "" {
		a.warnf("mobile number has no digits and was left out")
	}

	if screenshot != "" {
		shot, err := loadScreenshot(a, screenshot, allowLocation)
		if err != nil {
			return err
		}
		payload.Screenshot = shot
	}

	resp, err := a.client.SubmitReport(ctx, payload)
	if err != nil {
		return err
	}
	return a.out.WriteReportReceipt(resp)
}

// knownChoice requires value and checks it against the accepted choices.
func knownChoice(value, label string, known func(string) bool, choices []string) error {
	if err := validation.Required(value, label); err != nil {
		return err
	}
	if !known(value) {
		return fmt.Errorf("%s must be one of: %s", label, strings.Join(choices, ", "))
	}
	return nil
}

// loadScreenshot reads the image and warns about metadata that identifies
// the reporter.
func loadScreenshot(a *app, path string, allowLocation bool) (*model.Screenshot, error) {
	shot, err := imagemeta.ReadScreenshot(path)
	if err != nil {
		return nil, err
	}

	warnings, err := imagemeta.Inspect(shot.Data)
	if err != nil {
		// Unreadable metadata is not a reason to refuse the report.
		a.logger.Debug("failed to inspect screenshot metadata", "path", path, "error", err)
		return shot, nil
	}
	for _, w := range warnings {
		a.warnf("screenshot metadata: %s", w)
	}
	if imagemeta.HasLocation(warnings) && !allowLocation {
		return nil, errScreenshotLocation
	}
	return shot, nil
}
