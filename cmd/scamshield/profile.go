package main

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/report"
	"github.com/subha54820/Scam-Shield/internal/session"
	"github.com/subha54820/Scam-Shield/internal/validation"
)

// errDeleteNotConfirmed is returned by profile delete without --yes.
var errDeleteNotConfirmed = errors.New("account deletion is permanent; pass --yes to confirm")

// NewProfileCmd creates the profile command.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or change the account profile",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Show the profile and usage statistics",
		Args:  cobra.NoArgs,
		RunE:  runE(runProfileShowCmd),
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Change the name, email or phone number",
		Long: `Update changes only the fields that are given. The phone number is kept
on this device and never sent to the backend.`,
		Args: cobra.NoArgs,
		RunE: runE(runProfileUpdateCmd),
	}
	update.Flags().String("name", "", "Display name")
	update.Flags().String("email", "", "Email address")
	update.Flags().String("phone", "", "Mobile number, stored on this device only")

	del := &cobra.Command{
		Use:   "delete",
		Short: "Delete the account and every local trace of it",
		Args:  cobra.NoArgs,
		RunE:  runE(runProfileDeleteCmd),
	}
	del.Flags().Bool("yes", false, "Confirm the deletion")

	cmd.AddCommand(show, update, del)
	return cmd
}

func runProfileShowCmd(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
	userID, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	profile, err := a.client.Profile(ctx)
	if err != nil {
		return err
	}
	return a.writeProfile(ctx, userID, profile)
}

// writeProfile adds the stats and the local phone to profile. Stats are
// optional: a failure is logged and the profile is shown without them.
func (a *app) writeProfile(ctx context.Context, userID int64, profile *model.UserProfile) error {
	stats, err := a.client.UserStats(ctx)
	if err != nil {
		a.logger.Warn("failed to load user stats", "error", err)
	}
	return a.out.WriteProfile(&report.Profile{
		Profile: profile,
		Stats:   stats,
		Phone:   a.sessions.Phone(ctx, userID),
	})
}

func runProfileUpdateCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	if !flags.Changed("name") && !flags.Changed("email") && !flags.Changed("phone") {
		return errors.New("nothing to update; pass --name, --email or --phone")
	}

	userID, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	var upd model.ProfileUpdate
	if flags.Changed("name") {
		name, _ := flags.GetString("name") //nolint:errcheck // flag is defined above
		name = strings.TrimSpace(name)
		upd.Name = &name
	}
	if flags.Changed("email") {
		email, _ := flags.GetString("email") //nolint:errcheck // flag is defined above
		if err := validation.EmailOptional(email); err != nil {
			return err
		}
		email = strings.TrimSpace(email)
		upd.Email = &email
	}

	var profile *model.UserProfile
	if upd.Name != nil || upd.Email != nil {
		if profile, err = a.client.UpdateProfile(ctx, upd); err != nil {
			return err
		}
	}

	if flags.Changed("phone") {
		phone, _ := flags.GetString("phone") //nolint:errcheck // flag is defined above
		stored, err := a.sessions.SetPhone(ctx, userID, phone)
		if err != nil {
			return err
		}
		if phone != "" && stored == "" {
			a.warnf("mobile number has no digits; the stored number was cleared")
		}
	}

	if profile == nil {
		if profile, err = a.client.Profile(ctx); err != nil {
			return err
		}
	}
	return a.writeProfile(ctx, userID, profile)
}

func runProfileDeleteCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	yes, _ := cmd.Flags().GetBool("yes") //nolint:errcheck // flag is defined above
	if !yes {
		return errDeleteNotConfirmed
	}
	if _, err := a.currentUser(ctx); err != nil {
		return err
	}

	if err := a.client.DeleteAccount(ctx); err != nil {
		return err
	}
	if err := a.sessions.Purge(ctx); err != nil {
		return err
	}
	return a.out.WriteMessage("Account deleted")
}

// NewNotificationsCmd creates the notifications command.
func NewNotificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Show or change notification preferences",
		Long: `Notifications shows the notification switches of the signed-in user and
changes those given as flags. The switches are kept on this device.

Examples:
  scamshield notifications
  scamshield notifications --quiz-reminders=true --email-high-risk=false`,
		Args: cobra.NoArgs,
		RunE: runE(runNotificationsCmd),
	}
	cmd.Flags().Bool("email-high-risk", true, "Email me when a high risk message is found")
	cmd.Flags().Bool("quiz-reminders", false, "Remind me to take the quiz")
	return cmd
}

func runNotificationsCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	userID, err := a.currentUser(ctx)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var upd session.NotificationsUpdate
	if flags.Changed("email-high-risk") {
		v, _ := flags.GetBool("email-high-risk") //nolint:errcheck // flag is defined above
		upd.EmailHighRisk = &v
	}
	if flags.Changed("quiz-reminders") {
		v, _ := flags.GetBool("quiz-reminders") //nolint:errcheck // flag is defined above
		upd.QuizReminders = &v
	}

	if upd.EmailHighRisk == nil && upd.QuizReminders == nil {
		return a.out.WriteNotifications(a.sessions.Notifications(ctx, userID))
	}
	prefs, err := a.sessions.UpdateNotifications(ctx, userID, upd)
	if err != nil {
		return err
	}
	return a.out.WriteNotifications(prefs)
}
