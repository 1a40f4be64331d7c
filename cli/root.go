// Package cli is the smash command line: one subcommand per PDF
// operation plus "serve" for the HTTP API. Flags are layered over the
// configuration file and SMASH_* environment variables.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"smash/config"
	"smash/pdf"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root pre-run has
// loaded the configuration.
type app struct {
	out    io.Writer
	errOut io.Writer
	getenv func(string) string
	// runner replaces process execution in tests.
	runner pdf.Runner

	configPath string
	logLevel   string
	logFormat  string
	gsPath     string
	qpdfPath   string
	timeout    time.Duration
	jsonOutput bool

	cfg    *config.Config
	logger *logrus.Logger
	tools  *pdf.Tools
}

// Execute runs the root command against os.Args and exits 1 on error.
func Execute() {
	cmd := newRootCommand(&app{out: os.Stdout, errOut: os.Stderr, getenv: os.Getenv})
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "smash",
		Short: "Compress, merge, split and protect PDFs with Ghostscript and qpdf",
		Long: `smash drives Ghostscript and qpdf installed on this machine.
Files are processed locally and never leave the device.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "HCL config file (default $"+config.EnvConfig+")")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&a.logFormat, "log-format", "", "Log format: text or json")
	flags.StringVar(&a.gsPath, "gs", "", "Path to the Ghostscript executable")
	flags.StringVar(&a.qpdfPath, "qpdf", "", "Path to the qpdf executable")
	flags.DurationVar(&a.timeout, "timeout", 0, "Timeout for a single Ghostscript or qpdf run")
	flags.BoolVar(&a.jsonOutput, "json", false, "Print results as JSON")

	root.AddCommand(
		newServeCommand(a),
		newCompressCommand(a),
		newMergeCommand(a),
		newSplitCommand(a),
		newPagesCommand(a),
		newProtectCommand(a),
		newUnlockCommand(a),
		newOptimizeCommand(a),
		newRemovePagesCommand(a),
		newEncryptedCommand(a),
		newToolsCommand(a),
	)
	return root
}

// setup resolves configuration: file and environment first, then any
// flag the user set explicitly.
func (a *app) setup(cmd *cobra.Command) error {
	path := a.configPath
	if path == "" {
		path = a.getenv(config.EnvConfig)
	}
	cfg, err := config.Read(path, a.getenv)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("gs") {
		cfg.GhostscriptPath = a.gsPath
	}
	if flags.Changed("qpdf") {
		cfg.QPDFPath = a.qpdfPath
	}
	if flags.Changed("timeout") {
		cfg.CommandTimeout = a.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, a.errOut)
	a.tools = a.newTools()
	return nil
}

func (a *app) newTools() *pdf.Tools {
	return pdf.New(pdf.Options{
		GhostscriptPath: a.cfg.GhostscriptPath,
		QPDFPath:        a.cfg.QPDFPath,
		Timeout:         a.cfg.CommandTimeout,
		TempDir:         a.cfg.TempDir,
		Runner:          a.runner,
		Logger:          a.logger,
	})
}

// newLogger builds the logrus logger. level and format are already
// validated by config.
func newLogger(level, format string, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)
	if lvl, err := logrus.ParseLevel(level); err == nil {
		logger.SetLevel(lvl)
	}
	if format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
