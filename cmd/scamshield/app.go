package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/subha54820/Scam-Shield/internal/api"
	"github.com/subha54820/Scam-Shield/internal/config"
	applog "github.com/subha54820/Scam-Shield/internal/log"
	"github.com/subha54820/Scam-Shield/internal/report"
	"github.com/subha54820/Scam-Shield/internal/session"
	"github.com/subha54820/Scam-Shield/internal/storage"
)

// app holds everything a command needs, built from flags, the environment
// and the config file.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *storage.SQLite
	sessions *session.Store
	client   *api.Client
	out      report.Writer
	stderr   io.Writer
	prompt   *prompter
}

// runE adapts a command body that needs an app to cobra's RunE. The app is
// closed when the body returns, and SIGINT/SIGTERM cancel its context.
func runE(fn func(ctx context.Context, a *app, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return fn(ctx, a, cmd, args)
	}
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	logger := applog.New(cmd.ErrOrStderr(), applog.Options{Verbose: cfg.Verbose, JSON: cfg.LogJSON})
	if cfg.ConfigFilePath != "" {
		logger.Debug("loaded config file", "path", cfg.ConfigFilePath)
	}

	out, err := report.New(cfg.Output, cmd.OutOrStdout(), cfg.Verbose)
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(cfg.DataDir, storage.DefaultOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to open local database: %w", err)
	}
	logger.Debug("database opened", "path", db.Path())

	httpClient, err := api.NewHTTPClient(cfg.Timeout, cfg.Proxy)
	if err != nil {
		_ = db.Close() //nolint:errcheck // already failing
		return nil, err
	}

	sessions := session.NewStore(db, session.WithLogger(logger))
	client := api.NewClient(cfg.APIURL, sessions,
		api.WithHTTPClient(httpClient),
		api.WithUserAgent(cfg.UserAgent),
		api.WithLogger(logger),
	)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		sessions: sessions,
		client:   client,
		out:      out,
		stderr:   cmd.ErrOrStderr(),
		prompt:   newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr()),
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", "error", err)
	}
}

// currentUser returns the signed-in user ID, or api.ErrLoginRequired.
func (a *app) currentUser(ctx context.Context) (int64, error) {
	sess, ok := a.sessions.Get(ctx)
	if !ok {
		return 0, api.ErrLoginRequired
	}
	return sess.User.ID, nil
}

// warnf prints a notice for the user on stderr. Notices are not logs and are
// shown regardless of the log level.
func (a *app) warnf(format string, args ...any) {
	fmt.Fprintf(a.stderr, "warning: "+format+"\n", args...)
}

// buildConfig resolves the configuration: defaults, then the .env file and
// the config file and the environment, then flags that were set explicitly.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()

	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	configPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	if cfg.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = flags.GetBool("log-json"); err != nil {
		return nil, err
	}

	stringFlags := map[string]*string{
		"api-url":  &cfg.APIURL,
		"proxy":    &cfg.Proxy,
		"data-dir": &cfg.DataDir,
		"output":   &cfg.Output,
	}
	for name, dst := range stringFlags {
		if !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// prompter reads answers and passwords. Passwords are read without echo
// when stdin is a terminal, and as plain lines otherwise so that they can
// be piped in.
type prompter struct {
	in       *bufio.Reader
	terminal *os.File
	out      io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.terminal = f
	}
	return p
}

// line reads one line without its line ending. At end of input it returns
// what was read so far, possibly "".
func (p *prompter) line(prompt string) (string, error) {
	if p.terminal != nil && prompt != "" {
		fmt.Fprint(p.out, prompt)
	}
	s, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimRight(s, "\r\n"), nil
}

// secret reads a password. It is never trimmed beyond the line ending.
func (p *prompter) secret(prompt string) (string, error) {
	if p.terminal == nil {
		return p.line("")
	}
	fmt.Fprint(p.out, prompt)
	b, err := term.ReadPassword(int(p.terminal.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(b), nil
}

// readAll reads the rest of the input, for messages piped on stdin.
func (p *prompter) readAll() (string, error) {
	b, err := io.ReadAll(p.in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return string(b), nil
}
