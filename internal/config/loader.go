package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".scamshield"

// xdgConfigFile is the file name looked up in the XDG config directory.
const xdgConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the structure of the YAML configuration file.
// Zero values mean "not set" and leave the current value untouched.
type File struct {
	APIURL           string        `yaml:"api_url,omitempty"`
	Timeout          time.Duration `yaml:"timeout,omitempty"`
	Proxy            string        `yaml:"proxy,omitempty"`
	UserAgent        string        `yaml:"user_agent,omitempty"`
	DataDir          string        `yaml:"data_dir,omitempty"`
	Output           string        `yaml:"output,omitempty"`
	BatchSize        int           `yaml:"batch_size,omitempty"`
	MessageMinLength int           `yaml:"message_min_length,omitempty"`
}

// LoadConfigFile reads a YAML config file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// Apply copies every set field of the file onto cfg.
func (cf *File) Apply(cfg *Config) {
	if cf.APIURL != "" {
		cfg.APIURL = cf.APIURL
	}
	if cf.Timeout != 0 {
		cfg.Timeout = cf.Timeout
	}
	if cf.Proxy != "" {
		cfg.Proxy = cf.Proxy
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if cf.DataDir != "" {
		cfg.DataDir = expandHome(cf.DataDir)
	}
	if cf.Output != "" {
		cfg.Output = cf.Output
	}
	if cf.BatchSize != 0 {
		cfg.BatchSize = cf.BatchSize
	}
	if cf.MessageMinLength != 0 {
		cfg.MessageMinLength = cf.MessageMinLength
	}
}

// FindConfigFile searches for the configuration file in the following order:
//  1. configPath, when specified
//  2. .scamshield in the current directory
//  3. .scamshield in the user's home directory
//  4. config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var candidates []string
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), xdgConfigFile))

	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// Load resolves the configuration from defaults, the config file and the
// environment. An explicit configPath that does not exist is an error; a
// missing default config file is not.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()

	path := FindConfigFile(configPath)
	if configPath != "" && path == "" {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	if path != "" {
		cf, err := LoadConfigFile(path)
		if err != nil {
			return nil, err
		}
		cf.Apply(cfg)
		cfg.ConfigFilePath = path
	}

	if err := ApplyEnv(cfg, nil); err != nil {
		return nil, err
	}

	return cfg, nil
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
