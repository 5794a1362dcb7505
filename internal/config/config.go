package config

import (
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "scamshield"

	// DefaultAPIURL is the backend started by the development server.
	DefaultAPIURL = "http://localhost:8000"

	// DefaultTimeout bounds each API request, including reading the response.
	// Analysis of long Hindi or Odia messages can take several seconds.
	DefaultTimeout = 30 * time.Second

	// DefaultBatchSize is the number of concurrent checks when several links
	// or messages are given at once. The backend is a single Django process
	// in most deployments, so keep this small.
	DefaultBatchSize = 4

	// DefaultMessageMinLength matches the minimum the web client enforces.
	DefaultMessageMinLength = 10

	// MaxMessageMinLength is the largest accepted minimum; longer than the
	// maximum message length would reject every message.
	MaxMessageMinLength = 10000

	// DefaultOutput is the output format.
	DefaultOutput = OutputText
)

// Output formats.
const (
	OutputText     = "text"
	OutputJSON     = "json"
	OutputMarkdown = "markdown"
)

// Config holds all configuration options for the scamshield command.
type Config struct {
	// APIURL is the backend origin, without the /api suffix.
	APIURL string

	// Timeout is the per-request timeout.
	Timeout time.Duration

	// Proxy is an optional SOCKS5 proxy in "host:port" format.
	// Empty means direct connections.
	Proxy string

	// UserAgent is sent with every API request.
	UserAgent string

	// DataDir holds the local database with the session and check history.
	// Defaults to the XDG data directory (~/.local/share/scamshield on Linux).
	DataDir string

	// Output is one of OutputText, OutputJSON or OutputMarkdown.
	Output string

	// BatchSize is the number of concurrent checks.
	BatchSize int

	// MessageMinLength is the minimum message length accepted by analyze.
	MessageMinLength int

	// Verbose enables debug logging.
	Verbose bool

	// LogJSON switches the log output to JSON.
	LogJSON bool

	// ConfigFilePath is the config file that was loaded, if any.
	ConfigFilePath string
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		APIURL:           DefaultAPIURL,
		Timeout:          DefaultTimeout,
		UserAgent:        DefaultUserAgent(),
		DataDir:          XDGDataDir(),
		Output:           DefaultOutput,
		BatchSize:        DefaultBatchSize,
		MessageMinLength: DefaultMessageMinLength,
	}
}

// userAgentVersion is set by the cmd package from build information.
var userAgentVersion = "dev"

// SetVersion sets the version reported in the default User-Agent.
func SetVersion(v string) {
	if v != "" {
		userAgentVersion = v
	}
}

// DefaultUserAgent returns "ScamShield-CLI/<version>".
func DefaultUserAgent() string {
	return "ScamShield-CLI/" + userAgentVersion
}

// XDGDataDir returns the XDG data directory for scamshield.
// On Linux: ~/.local/share/scamshield
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for scamshield.
// On Linux: ~/.config/scamshield
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found.
func (c *Config) Validate() error {
	if !isHTTPURL(c.APIURL) {
		return ErrInvalidAPIURL
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.MessageMinLength < 1 || c.MessageMinLength > MaxMessageMinLength {
		return ErrInvalidMessageMinLength
	}

	switch c.Output {
	case OutputText, OutputJSON, OutputMarkdown:
	default:
		return ErrInvalidOutput
	}

	if c.Proxy != "" && !isHostPort(c.Proxy) {
		return ErrInvalidProxy
	}

	if c.DataDir == "" {
		return ErrNoDataDir
	}

	return nil
}

// isHTTPURL reports whether s is an absolute http(s) URL with a host.
func isHTTPURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isHostPort reports whether s is "host:port" with a port in 1..65535.
func isHostPort(s string) bool {
	host, port, err := net.SplitHostPort(s)
	if err != nil || host == "" {
		return false
	}
	n, err := strconv.Atoi(port)
	return err == nil && n >= 1 && n <= 65535
}
