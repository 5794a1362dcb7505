package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subha54820/Scam-Shield/internal/config"
)

// Exit codes.
const (
	exitError    = 1
	exitHighRisk = 2
)

// errHighRisk is returned by analyze and check-link with --fail-on-risk
// when any result carries the highest verdict.
var errHighRisk = errors.New("high risk result found")

// NewRootCmd creates the root command for scamshield.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scamshield",
		Short: "Check messages and links for scams",
		Long: `scamshield talks to a ScamShield backend to analyze suspicious messages,
check links, report scams and take the scam awareness quiz.

The backend address comes from --api-url, SCAMSHIELD_API_URL, or the
api_url setting of the config file (see "scamshield init").`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose logging")
	pf.Bool("log-json", false, "Write logs as JSON")
	pf.StringP("config", "c", "", "Configuration file path (default: .scamshield in current or home directory)")
	pf.String("api-url", "", "Backend URL (default "+config.DefaultAPIURL+")")
	pf.String("proxy", "", "SOCKS5 proxy address (e.g., 127.0.0.1:9050)")
	pf.Duration("timeout", 0, "Timeout for each request (default 30s)")
	pf.String("data-dir", "", "Directory for the local database (default: XDG data directory)")
	pf.StringP("output", "o", "", "Output format: text, json or markdown")

	cmd.AddCommand(NewSignupCmd())
	cmd.AddCommand(NewLoginCmd())
	cmd.AddCommand(NewLogoutCmd())
	cmd.AddCommand(NewWhoamiCmd())
	cmd.AddCommand(NewRecoverCmd())
	cmd.AddCommand(NewPasswordCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewCheckLinkCmd())
	cmd.AddCommand(NewQuizCmd())
	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewProfileCmd())
	cmd.AddCommand(NewNotificationsCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command and exits with the matching status.
func Execute() {
	config.SetVersion(getVersion())
	os.Exit(run(NewRootCmd()))
}

func run(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err)
	if errors.Is(err, errHighRisk) {
		return exitHighRisk
	}
	return exitError
}
