// Package config assembles the runtime configuration from defaults, an
// optional HCL file and SMASH_* environment variables, in that order.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

const (
	// DefaultMaxFileSize is the default maximum upload size (100MB)
	DefaultMaxFileSize = 100 * 1024 * 1024

	// DefaultHost keeps the API reachable from this machine only
	DefaultHost = "127.0.0.1"

	// DefaultPort is the default server port
	DefaultPort = "8080"

	// DefaultTempDir is the default staging directory for uploads
	DefaultTempDir = "./temp"

	// DefaultCommandTimeout bounds one Ghostscript or qpdf run
	DefaultCommandTimeout = 2 * time.Minute

	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds application configuration
type Config struct {
	Host            string
	Port            string
	TempDir         string
	MaxFileSize     int64
	GhostscriptPath string
	QPDFPath        string
	CommandTimeout  time.Duration
	LogLevel        string
	LogFormat       string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Host:           DefaultHost,
		Port:           DefaultPort,
		TempDir:        DefaultTempDir,
		MaxFileSize:    DefaultMaxFileSize,
		CommandTimeout: DefaultCommandTimeout,
		LogLevel:       DefaultLogLevel,
		LogFormat:      DefaultLogFormat,
	}
}

// hclFile is the on-disk layout:
//
//	server { host = "127.0.0.1"  port = "8080"  temp_dir = "./temp"  max_file_size = 104857600 }
//	tools  { ghostscript = "/usr/bin/gs"  qpdf = "/usr/bin/qpdf"  command_timeout = "2m" }
//	log    { level = "debug"  format = "json" }
type hclFile struct {
	Server *hclServer `hcl:"server,block"`
	Tools  *hclTools  `hcl:"tools,block"`
	Log    *hclLog    `hcl:"log,block"`
}

type hclServer struct {
	Host        string `hcl:"host,optional"`
	Port        string `hcl:"port,optional"`
	TempDir     string `hcl:"temp_dir,optional"`
	MaxFileSize int64  `hcl:"max_file_size,optional"`
}

type hclTools struct {
	Ghostscript    string `hcl:"ghostscript,optional"`
	QPDF           string `hcl:"qpdf,optional"`
	CommandTimeout string `hcl:"command_timeout,optional"`
}

type hclLog struct {
	Level  string `hcl:"level,optional"`
	Format string `hcl:"format,optional"`
}

// Load builds and validates the configuration. path may be empty, in
// which case only defaults and the environment apply.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg, err := Read(path, getenv)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// Read is Load without validation, for callers that layer more
// overrides on top before calling Validate.
func Read(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	if path != "" {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := cfg.applyHCL(src, path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyHCL(src []byte, filename string) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}

	var parsed hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return fmt.Errorf("failed to decode config file %s: %w", filename, diags)
	}

	if s := parsed.Server; s != nil {
		setString(&c.Host, s.Host)
		setString(&c.Port, s.Port)
		setString(&c.TempDir, s.TempDir)
		if s.MaxFileSize > 0 {
			c.MaxFileSize = s.MaxFileSize
		}
	}
	if t := parsed.Tools; t != nil {
		setString(&c.GhostscriptPath, t.Ghostscript)
		setString(&c.QPDFPath, t.QPDF)
		if t.CommandTimeout != "" {
			d, err := time.ParseDuration(t.CommandTimeout)
			if err != nil {
				return fmt.Errorf("invalid command_timeout %q: %w", t.CommandTimeout, err)
			}
			c.CommandTimeout = d
		}
	}
	if l := parsed.Log; l != nil {
		setString(&c.LogLevel, l.Level)
		setString(&c.LogFormat, l.Format)
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(c.LogLevel)
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}
	if c.CommandTimeout <= 0 {
		return fmt.Errorf("command timeout must be positive, got %v", c.CommandTimeout)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be positive, got %d", c.MaxFileSize)
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
