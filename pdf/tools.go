// Package pdf drives Ghostscript and qpdf to compress, merge, split and
// password-protect PDF files. No PDF content is parsed here; every
// document operation is a single external process invocation built from a
// fixed argument template.
package pdf

import (
	"os"
	"os/exec"
	"runtime"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/sirupsen/logrus"
)

// Tool identifies one of the wrapped binaries.
type Tool string

const (
	Ghostscript Tool = "ghostscript"
	QPDF        Tool = "qpdf"
)

// DisplayName is the name used in user-facing messages.
func (t Tool) DisplayName() string {
	if t == Ghostscript {
		return "Ghostscript"
	}
	return string(t)
}

// Options configures a Tools instance. Zero values select defaults.
type Options struct {
	// GhostscriptPath and QPDFPath override discovery when they point at
	// an existing file.
	GhostscriptPath string
	QPDFPath        string
	Timeout         time.Duration
	// TempDir holds scratch files for multi-part extraction. Empty means
	// the system temp directory.
	TempDir string
	Runner  Runner
	Logger  *logrus.Logger

	// LookPath and FileExists replace PATH lookup and the file check used
	// by discovery.
	LookPath   func(file string) (string, error)
	FileExists func(path string) bool
}

// Tools runs PDF operations through the external binaries.
type Tools struct {
	gsOverride   string
	qpdfOverride string
	timeout      time.Duration
	tempDir      string
	runner       Runner
	log          *logrus.Entry

	goos       string
	lookPath   func(string) (string, error)
	fileExists func(string) bool
	countPages func(string) (int, error)
}

// New returns a Tools configured from opts.
func New(opts Options) *Tools {
	t := &Tools{
		gsOverride:   opts.GhostscriptPath,
		qpdfOverride: opts.QPDFPath,
		timeout:      opts.Timeout,
		tempDir:      opts.TempDir,
		runner:       opts.Runner,
		goos:         runtime.GOOS,
		lookPath:     exec.LookPath,
		fileExists:   fileExists,
		countPages:   api.PageCountFile,
	}
	if t.timeout <= 0 {
		t.timeout = DefaultCLITimeout
	}
	if opts.LookPath != nil {
		t.lookPath = opts.LookPath
	}
	if opts.FileExists != nil {
		t.fileExists = opts.FileExists
	}
	if t.runner == nil {
		t.runner = ExecRunner{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	t.log = logger.WithField("component", "pdf")
	return t
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
