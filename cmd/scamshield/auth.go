package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/subha54820/Scam-Shield/internal/model"
	"github.com/subha54820/Scam-Shield/internal/validation"
)

// readPassword reads a password from stdin. With --password-stdin the first
// line of stdin is used without prompting.
func readPassword(a *app, cmd *cobra.Command, prompt string) (string, error) {
	fromStdin, err := cmd.Flags().GetBool("password-stdin")
	if err != nil {
		return "", err
	}
	if fromStdin {
		return a.prompt.line("")
	}
	return a.prompt.secret(prompt)
}

func addPasswordStdinFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("password-stdin", false, "Read the password from the first line of stdin")
}

// NewSignupCmd creates the signup command.
func NewSignupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create an account and sign in",
		Args:  cobra.NoArgs,
		RunE:  runE(runSignupCmd),
	}
	cmd.Flags().StringP("username", "u", "", "Username (3 to 30 letters, digits, _ or -)")
	cmd.Flags().StringP("email", "e", "", "Email address")
	addPasswordStdinFlag(cmd)
	return cmd
}

func runSignupCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	username, _ := cmd.Flags().GetString("username") //nolint:errcheck // flag is defined above
	email, _ := cmd.Flags().GetString("email")       //nolint:errcheck // flag is defined above

	// Fail on the username and email before asking for a password.
	var form validation.Form
	form.Check("username", validation.Username(username)).
		Check("email", validation.Email(email))
	if err := form.Err(); err != nil {
		return err
	}

	password, err := readPassword(a, cmd, "Password: ")
	if err != nil {
		return err
	}
	if err := validation.PasswordSignUp(password); err != nil {
		return err
	}

	resp, err := a.client.Register(ctx, strings.TrimSpace(username), strings.TrimSpace(email), password)
	if err != nil {
		return err
	}
	return signIn(ctx, a, resp)
}

// signIn persists a fresh session and prints the account.
func signIn(ctx context.Context, a *app, resp *model.AuthResponse) error {
	if err := a.sessions.Set(ctx, *resp); err != nil {
		return err
	}
	a.logger.Debug("session saved", "user_id", resp.User.ID)
	return a.out.WriteUser(&resp.User)
}

// NewLoginCmd creates the login command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in",
		Args:  cobra.NoArgs,
		RunE:  runE(runLoginCmd),
	}
	cmd.Flags().StringP("username", "u", "", "Username")
	cmd.Flags().Bool("remember", false, "Remember this device")
	addPasswordStdinFlag(cmd)
	return cmd
}

func runLoginCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	username, _ := cmd.Flags().GetString("username") //nolint:errcheck // flag is defined above
	remember, _ := cmd.Flags().GetBool("remember")   //nolint:errcheck // flag is defined above

	if err := validation.Required(username, "Username"); err != nil {
		return err
	}
	password, err := readPassword(a, cmd, "Password: ")
	if err != nil {
		return err
	}
	if err := validation.Password(password); err != nil {
		return err
	}

	resp, err := a.client.Login(ctx, strings.TrimSpace(username), password)
	if err != nil {
		return err
	}
	if err := a.sessions.SetRememberedDevice(ctx, remember); err != nil {
		a.logger.Warn("failed to save remembered device", "error", err)
	}
	return signIn(ctx, a, resp)
}

// NewLogoutCmd creates the logout command.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session on this device",
		Args:  cobra.NoArgs,
		RunE: runE(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			if err := a.sessions.Clear(ctx); err != nil {
				return err
			}
			return a.out.WriteMessage("Logged out")
		}),
	}
}

// NewWhoamiCmd creates the whoami command.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account as the backend sees it",
		Args:  cobra.NoArgs,
		RunE: runE(func(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
			user, err := a.client.Me(ctx)
			if err != nil {
				return err
			}
			return a.out.WriteUser(user)
		}),
	}
}

// NewRecoverCmd creates the recover command with its request and verify steps.
func NewRecoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Reset a forgotten password with an emailed code",
		Long: `Recover resets a forgotten password in two steps.

Examples:
  # Email a 6-digit code
  scamshield recover request --email alice@example.com

  # Set a new password with the code
  scamshield recover verify --email alice@example.com --code 123456`,
	}

	request := &cobra.Command{
		Use:   "request",
		Short: "Email a recovery code",
		Args:  cobra.NoArgs,
		RunE:  runE(runRecoverRequestCmd),
	}
	request.Flags().StringP("email", "e", "", "Account email address")

	verify := &cobra.Command{
		Use:   "verify",
		Short: "Set a new password using the emailed code",
		Args:  cobra.NoArgs,
		RunE:  runE(runRecoverVerifyCmd),
	}
	verify.Flags().StringP("email", "e", "", "Account email address")
	verify.Flags().String("code", "", "6-digit recovery code")
	addPasswordStdinFlag(verify)

	cmd.AddCommand(request, verify)
	return cmd
}

func runRecoverRequestCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email") //nolint:errcheck // flag is defined above
	if err := validation.Email(email); err != nil {
		return err
	}

	resp, err := a.client.RequestRecovery(ctx, strings.TrimSpace(email))
	if err != nil {
		return err
	}
	return a.out.WriteMessage(messageOr(resp, "If the account exists, a recovery code has been sent"))
}

func runRecoverVerifyCmd(ctx context.Context, a *app, cmd *cobra.Command, _ []string) error {
	email, _ := cmd.Flags().GetString("email") //nolint:errcheck // flag is defined above
	code, _ := cmd.Flags().GetString("code")   //nolint:errcheck // flag is defined above

	var form validation.Form
	form.Check("email", validation.Email(email)).
		Check("code", validation.RecoveryCode(code))
	if err := form.Err(); err != nil {
		return err
	}

	password, err := readPassword(a, cmd, "New password: ")
	if err != nil {
		return err
	}
	if err := validation.PasswordSignUp(password); err != nil {
		return err
	}

	resp, err := a.client.VerifyRecovery(ctx, strings.TrimSpace(email), code, password)
	if err != nil {
		return err
	}
	return a.out.WriteMessage(messageOr(resp, "Password has been reset"))
}

// NewPasswordCmd creates the password command.
func NewPasswordCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the account password",
	}
	change := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the signed-in account",
		Long: `Change prompts for the current and the new password. When stdin is not a
terminal, the first line is the current password and the second line the new one.`,
		Args: cobra.NoArgs,
		RunE: runE(runPasswordChangeCmd),
	}
	cmd.AddCommand(change)
	return cmd
}

func runPasswordChangeCmd(ctx context.Context, a *app, _ *cobra.Command, _ []string) error {
	// Checked before prompting so a signed-out user is not asked for passwords.
	if _, err := a.currentUser(ctx); err != nil {
		return err
	}

	oldPassword, err := a.prompt.secret("Current password: ")
	if err != nil {
		return err
	}
	newPassword, err := a.prompt.secret("New password: ")
	if err != nil {
		return err
	}

	var form validation.Form
	form.Check("current password", validation.Required(oldPassword, "Current password")).
		Check("new password", validation.PasswordSignUp(newPassword))
	if err := form.Err(); err != nil {
		return err
	}

	resp, err := a.client.ChangePassword(ctx, oldPassword, newPassword)
	if err != nil {
		return err
	}
	return a.out.WriteMessage(messageOr(resp, "Password changed"))
}

func messageOr(resp *model.MessageResponse, fallback string) string {
	if resp == nil || resp.Message == "" {
		return fallback
	}
	return resp.Message
}
