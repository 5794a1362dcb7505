package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Env holds the SCAMSHIELD_* environment variables.
type Env struct {
	APIURL           string        `env:"SCAMSHIELD_API_URL"`
	Timeout          time.Duration `env:"SCAMSHIELD_TIMEOUT"`
	Proxy            string        `env:"SCAMSHIELD_PROXY"`
	DataDir          string        `env:"SCAMSHIELD_DATA_DIR"`
	Output           string        `env:"SCAMSHIELD_OUTPUT"`
	BatchSize        int           `env:"SCAMSHIELD_BATCH_SIZE"`
	MessageMinLength int           `env:"SCAMSHIELD_MESSAGE_MIN_LENGTH"`
}

// ApplyEnv overlays the environment onto cfg. When environ is nil the
// process environment is used.
func ApplyEnv(cfg *Config, environ map[string]string) error {
	var e Env
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&e, opts); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	// The file overlay has the same "zero means unset" semantics.
	(&File{
		APIURL:           e.APIURL,
		Timeout:          e.Timeout,
		Proxy:            e.Proxy,
		DataDir:          e.DataDir,
		Output:           e.Output,
		BatchSize:        e.BatchSize,
		MessageMinLength: e.MessageMinLength,
	}).Apply(cfg)

	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	existing := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}

	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	return nil
}
