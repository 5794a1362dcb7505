// Package config provides the configuration for the scamshield command.
//
// Values are resolved in increasing order of precedence: built-in defaults,
// the YAML config file, SCAMSHIELD_* environment variables (optionally read
// from a .env file), and finally command line flags, which the cmd package
// applies on top of the returned Config.
package config
