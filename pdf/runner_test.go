package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const fakeOutput = "%PDF-1.4 fake"

type call struct {
	name string
	args []string
}

// exitStatus stands in for *exec.ExitError.
type exitStatus int

func (e exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitStatus) ExitCode() int { return int(e) }

// fakeRunner records invocations and writes a small PDF wherever the
// arguments name an output file, so size queries after a run succeed.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []call
	handler func(name string, args []string) ([]byte, error)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, args: append([]string{}, args...)})
	f.mu.Unlock()

	var stdout []byte
	var err error
	if f.handler != nil {
		stdout, err = f.handler(name, args)
	}
	code, _ := exitCode(err)
	if err == nil || code == qpdfExitWarnings {
		if out := outputArg(args); out != "" {
			if writeErr := os.WriteFile(out, []byte(fakeOutput), 0644); writeErr != nil {
				return nil, nil, writeErr
			}
		}
	}
	return stdout, nil, err
}

func (f *fakeRunner) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call{}, f.calls...)
}

func outputArg(args []string) string {
	for _, a := range args {
		if strings.HasPrefix(a, "-sOutputFile=") {
			return strings.TrimPrefix(a, "-sOutputFile=")
		}
	}
	if len(args) > 0 {
		switch args[0] {
		case "--encrypt", "--decrypt", "--linearize":
			return args[len(args)-1]
		}
	}
	return ""
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// newTestTools finds gs and qpdf under /usr/bin without touching the host.
func newTestTools(t *testing.T, r *fakeRunner) *Tools {
	t.Helper()
	tools := New(Options{Runner: r, Logger: quietLogger()})
	tools.goos = "linux"
	tools.lookPath = func(name string) (string, error) {
		switch name {
		case "gs", "qpdf":
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	tools.countPages = func(string) (int, error) { return 0, errors.New("pdfcpu disabled in tests") }
	return tools
}

func writePDF(t *testing.T, dir, name string, size int) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte("%PDF-1.4\n" + strings.Repeat("x", max(size-9, 0)))
	require.NoError(t, os.WriteFile(path, content[:max(size, 9)], 0644))
	return path
}

// pageCountHandler answers Ghostscript page count queries with pages.
func pageCountHandler(pages int) func(string, []string) ([]byte, error) {
	return func(_ string, args []string) ([]byte, error) {
		if len(args) > 0 && args[0] == "-q" {
			return []byte(fmt.Sprintf("%d\n", pages)), nil
		}
		return nil, nil
	}
}
