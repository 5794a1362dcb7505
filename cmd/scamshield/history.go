package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/storage"
)

// defaultLocalLimit is the number of local history entries shown by default.
const defaultLocalLimit = 20

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", model.DefaultPage, "Page number")
	cmd.Flags().Int("limit", model.DefaultLimit, "Entries per page")
}

func pageFlags(cmd *cobra.Command) (int, int, error) {
	page, err := cmd.Flags().GetInt("page")
	if err != nil {
		return 0, 0, err
	}
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return 0, 0, err
	}
	page, limit = model.NormalizePage(page, limit)
	return page, limit, nil
}

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past checks, reports and quiz attempts",
		Long: `History lists what the backend recorded for the signed-in account, or
with "history local", the checks saved on this device.

Examples:
  scamshield history messages --page 2
  scamshield history local --kind link --limit 5`,
	}

	messages := &cobra.Command{
		Use:   "messages",
		Short: "Show analyzed messages",
		Args:  cobra.NoArgs,
		RunE: runE(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			page, limit, err := pageFlags(cmd)
			if err != nil {
				return err
			}
			h, err := a.client.MessageHistory(ctx, page, limit)
			if err != nil {
				return err
			}
			return a.out.WriteScanHistory("Message history", h)
		}),
	}

	links := &cobra.Command{
		Use:   "links",
		Short: "Show checked links",
		Args:  cobra.NoArgs,
		RunE: runE(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			page, limit, err := pageFlags(cmd)
			if err != nil {
				return err
			}
			h, err := a.client.LinkHistory(ctx, page, limit)
			if err != nil {
				return err
			}
			return a.out.WriteScanHistory("Link history", h)
		}),
	}

	reports := &cobra.Command{
		Use:   "reports",
		Short: "Show submitted scam reports",
		Args:  cobra.NoArgs,
		RunE: runE(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			page, limit, err := pageFlags(cmd)
			if err != nil {
				return err
			}
			h, err := a.client.MyReports(ctx, page, limit)
			if err != nil {
				return err
			}
			return a.out.WriteReportHistory(h)
		}),
	}

	quiz := &cobra.Command{
		Use:   "quiz",
		Short: "Show quiz attempts",
		Args:  cobra.NoArgs,
		RunE: runE(func(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
			page, limit, err := pageFlags(cmd)
			if err != nil {
				return err
			}
			h, err := a.client.QuizHistory(ctx, page, limit)
			if err != nil {
				return err
			}
			return a.out.WriteQuizHistory(h)
		}),
	}

	for _, c := range []*cobra.Command{messages, links, reports, quiz} {
		addPageFlags(c)
	}

	local := &cobra.Command{
		Use:   "local",
		Short: "Show checks saved on this device",
		Long: `Local lists the messages and links checked from this device, newest first.
It works without an account and without a connection.`,
		Args: cobra.NoArgs,
		RunE: runE(runHistoryLocalCmd),
	}
	local.Flags().String("kind", "", "Only show one kind: message or link")
	local.Flags().Int("limit", defaultLocalLimit, "Maximum number of entries (0 for all)")
	local.Flags().Bool("clear", false, "Delete the local history")

	cmd.AddCommand(messages, links, reports, quiz, local)
	return cmd
}

func runHistoryLocalCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	clearAll, _ := flags.GetBool("clear") //nolint:errcheck // flag is defined above
	kind, _ := flags.GetString("kind")    //nolint:errcheck // flag is defined above
	limit, _ := flags.GetInt("limit")     //nolint:errcheck // flag is defined above

	if clearAll {
		if err := a.db.ClearChecks(ctx); err != nil {
			return err
		}
		return a.out.WriteMessage("Local history cleared")
	}

	switch storage.CheckKind(kind) {
	case "", storage.CheckMessage, storage.CheckLink:
	default:
		return fmt.Errorf("invalid kind %q: must be %q or %q", kind, storage.CheckMessage, storage.CheckLink)
	}

	records, err := a.db.ListChecks(ctx, storage.CheckKind(kind), limit)
	if err != nil {
		return err
	}
	return a.out.WriteLocalHistory(records)
}

// NewStatsCmd creates the stats command.
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show community statistics, or your own with --me",
		Args:  cobra.NoArgs,
		RunE:  runE(runStatsCmd),
	}
	cmd.Flags().Bool("me", false, "Show statistics of the signed-in account")
	return cmd
}

func runStatsCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	me, _ := cmd.Flags().GetBool("me") //nolint:errcheck // flag is defined above
	if me {
		s, err := a.client.UserStats(ctx)
		if err != nil {
			return err
		}
		return a.out.WriteUserStats(s)
	}

	s, err := a.client.PublicStats(ctx)
	if err != nil {
		return err
	}
	return a.out.WritePublicStats(s)
}
