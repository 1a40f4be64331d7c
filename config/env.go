package config

import (
	"fmt"
	"strconv"
	"time"
)

// Environment variables read by Load.
const (
	EnvConfig         = "SMASH_CONFIG"
	EnvHost           = "SMASH_HOST"
	EnvPort           = "SMASH_PORT"
	EnvTempDir        = "SMASH_TEMP_DIR"
	EnvMaxFileSize    = "SMASH_MAX_FILE_SIZE"
	EnvGhostscript    = "SMASH_GS_PATH"
	EnvQPDF           = "SMASH_QPDF_PATH"
	EnvCommandTimeout = "SMASH_COMMAND_TIMEOUT"
	EnvLogLevel       = "SMASH_LOG_LEVEL"
	EnvLogFormat      = "SMASH_LOG_FORMAT"
)

func (c *Config) applyEnv(getenv func(string) string) error {
	setString(&c.Host, getenv(EnvHost))
	setString(&c.Port, getenv(EnvPort))
	setString(&c.TempDir, getenv(EnvTempDir))
	setString(&c.GhostscriptPath, getenv(EnvGhostscript))
	setString(&c.QPDFPath, getenv(EnvQPDF))
	setString(&c.LogLevel, getenv(EnvLogLevel))
	setString(&c.LogFormat, getenv(EnvLogFormat))

	if value := getenv(EnvMaxFileSize); value != "" {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxFileSize, value, err)
		}
		c.MaxFileSize = n
	}
	if value := getenv(EnvCommandTimeout); value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvCommandTimeout, value, err)
		}
		c.CommandTimeout = d
	}
	return nil
}
