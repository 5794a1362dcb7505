package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subha54820/Scam-Shield/internal/batch"
	"github.com/subha54820/Scam-Shield/internal/report"
	"github.com/subha54820/Scam-Shield/internal/storage"
	"github.com/subha54820/Scam-Shield/internal/validation"
)

// NewAnalyzeCmd creates the analyze command.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [message...]",
		Short: "Analyze a message for scam indicators",
		Long: `Analyze sends a message to the ScamShield backend and shows its verdict.

The message is taken from the arguments, from one or more --file inputs
(each file is a separate message), or from stdin when neither is given.

Examples:
  # Analyze a message
  scamshield analyze "Your KYC is pending, click the link to avoid account block"

  # Analyze several saved messages concurrently
  scamshield analyze --file sms1.txt --file sms2.txt --batch 2

  # Use in scripts: exit code 2 when any message is a likely scam
  pbpaste | scamshield analyze --fail-on-risk -o json`,
		RunE: runE(runAnalyzeCmd),
	}
	cmd.Flags().StringArrayP("file", "f", nil, "Read a message from a file (repeatable)")
	cmd.Flags().Int("min-length", 0, "Minimum message length (default from config)")
	addCheckFlags(cmd)
	return cmd
}

// NewCheckLinkCmd creates the check-link command.
func NewCheckLinkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check-link url...",
		Short: "Check whether links are safe to open",
		Long: `Check-link sends each URL to the ScamShield backend and shows the verdicts.
URLs are checked concurrently and listed in the order given.

Examples:
  scamshield check-link https://example.com
  scamshield check-link --batch 8 $(cat urls.txt)`,
		Args: cobra.MinimumNArgs(1),
		RunE: runE(runCheckLinkCmd),
	}
	addCheckFlags(cmd)
	return cmd
}

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().Int("batch", 0, "Number of concurrent checks (default from config)")
	cmd.Flags().Bool("fail-on-risk", false, "Exit with code 2 when any result is high risk")
	cmd.Flags().Bool("no-history", false, "Do not save results to the local history")
}

// checkOptions are the flags shared by analyze and check-link.
type checkOptions struct {
	concurrency int
	failOnRisk  bool
	noHistory   bool
}

func parseCheckOptions(a *app, cmd *cobra.Command) (checkOptions, error) {
	var opts checkOptions
	var err error
	if opts.concurrency, err = cmd.Flags().GetInt("batch"); err != nil {
		return opts, err
	}
	if opts.concurrency <= 0 {
		opts.concurrency = a.cfg.BatchSize
	}
	if opts.failOnRisk, err = cmd.Flags().GetBool("fail-on-risk"); err != nil {
		return opts, err
	}
	if opts.noHistory, err = cmd.Flags().GetBool("no-history"); err != nil {
		return opts, err
	}
	return opts, nil
}

func runAnalyzeCmd(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
	opts, err := parseCheckOptions(a, cmd)
	if err != nil {
		return err
	}
	minLength, err := cmd.Flags().GetInt("min-length")
	if err != nil {
		return err
	}
	if minLength <= 0 {
		minLength = a.cfg.MessageMinLength
	}

	messages, err := collectMessages(a, cmd, args)
	if err != nil {
		return err
	}
	for i, msg := range messages {
		if err := validation.MessageMin(msg, minLength); err != nil {
			if len(messages) == 1 {
				return err
			}
			return fmt.Errorf("message %d: %w", i+1, err)
		}
	}

	p := batch.New(batch.WithConcurrency(opts.concurrency), batch.WithLogger(a.logger))
	results, runErr := batch.Run(ctx, p, messages, a.client.Analyze)

	items := make([]report.Analysis, len(results))
	for i, r := range results {
		items[i] = report.Analysis{Input: r.Input, Result: r.Value, Err: r.Err}
		if r.Err == nil && !opts.noHistory {
			a.saveCheck(ctx, storage.CheckMessage, r.Input, r.Value.RiskLevel, r.Value.ScamScore, r.Value)
		}
	}
	if err := a.out.WriteAnalyses(items); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if err := batchError(results); err != nil {
		return err
	}
	if opts.failOnRisk && report.AnyHighRisk(items, nil) {
		return errHighRisk
	}
	return nil
}

func runCheckLinkCmd(ctx context.Context, a *app, cmd *cobra.Command, args []string) error {
	opts, err := parseCheckOptions(a, cmd)
	if err != nil {
		return err
	}

	var form validation.Form
	for _, u := range args {
		form.Check(u, validation.URL(u))
	}
	if err := form.Err(); err != nil {
		if len(args) == 1 {
			return validation.URL(args[0])
		}
		return err
	}
	urls := make([]string, len(args))
	for i, u := range args {
		urls[i] = strings.TrimSpace(u)
	}

	p := batch.New(batch.WithConcurrency(opts.concurrency), batch.WithLogger(a.logger))
	results, runErr := batch.Run(ctx, p, urls, a.client.CheckLink)

	items := make([]report.LinkCheck, len(results))
	for i, r := range results {
		items[i] = report.LinkCheck{URL: r.Input, Result: r.Value, Err: r.Err}
		if r.Err == nil && !opts.noHistory {
			a.saveCheck(ctx, storage.CheckLink, r.Input, r.Value.RiskLevel, r.Value.RiskScore, r.Value)
		}
	}
	if err := a.out.WriteLinkChecks(items); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if err := batchError(results); err != nil {
		return err
	}
	if opts.failOnRisk && report.AnyHighRisk(nil, items) {
		return errHighRisk
	}
	return nil
}

// collectMessages gathers the messages to analyze: the joined arguments,
// then each --file, or stdin when neither was given.
func collectMessages(a *app, cmd *cobra.Command, args []string) ([]string, error) {
	files, err := cmd.Flags().GetStringArray("file")
	if err != nil {
		return nil, err
	}

	var messages []string
	if len(args) > 0 {
		messages = append(messages, strings.Join(args, " "))
	}
	for _, name := range files {
		data, err := os.ReadFile(name) //nolint:gosec // user-provided input file
		if err != nil {
			return nil, fmt.Errorf("failed to read message file: %w", err)
		}
		messages = append(messages, string(data))
	}
	if len(messages) > 0 {
		return messages, nil
	}

	msg, err := a.prompt.readAll()
	if err != nil {
		return nil, err
	}
	return []string{msg}, nil
}

// batchError reports failed checks. A single failure is returned as is so
// that its message reaches the user unchanged.
func batchError[T any](results []batch.Result[T]) error {
	failed := batch.Failed(results)
	switch {
	case len(failed) == 0:
		return nil
	case len(failed) == 1 && len(results) == 1:
		return failed[0].Err
	default:
		return fmt.Errorf("%d of %d checks failed", len(failed), len(results))
	}
}

// saveCheck records a verdict in the local history. Failures are logged and
// do not fail the command.
func (a *app) saveCheck(ctx context.Context, kind storage.CheckKind, input, riskLevel string, score float64, result any) {
	data, err := json.Marshal(result)
	if err != nil {
		a.logger.Warn("failed to encode check result", "error", err)
		return
	}
	rec := &storage.CheckRecord{
		Kind:       kind,
		Input:      input,
		RiskLevel:  riskLevel,
		Score:      score,
		ResultJSON: string(data),
	}
	if err := a.db.SaveCheck(ctx, rec); err != nil {
		a.logger.Warn("failed to save check to local history", "kind", kind, "error", err)
	}
}
