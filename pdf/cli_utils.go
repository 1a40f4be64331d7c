package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// Runner spawns an external process and collects its output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// exitCoder is satisfied by *exec.ExitError.
type exitCoder interface {
	ExitCode() int
}

// exitCode extracts the process exit status from err. ok is false when the
// process never ran (missing binary, permission denied).
func exitCode(err error) (int, bool) {
	var ec exitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode(), true
	}
	return 0, false
}

// execCommandWithTimeout runs one tool invocation under the configured timeout
func (t *Tools) execCommandWithTimeout(ctx context.Context, tool Tool, path string, args ...string) ([]byte, []byte, error) {
	parent := ctx
	ctx, cancel := context.WithTimeout(parent, t.timeout)
	defer cancel()

	start := time.Now()
	stdout, stderr, err := t.runner.Run(ctx, path, args...)

	// The caller's own cancellation or deadline is passed through as is;
	// only the per-command timeout is reported as a timeout.
	if perr := parent.Err(); perr != nil {
		return nil, nil, perr
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, nil, fmt.Errorf("command timed out after %v", t.timeout)
	}

	entry := t.log.WithFields(logrus.Fields{
		"tool":     string(tool),
		"args":     len(args),
		"duration": time.Since(start).String(),
	})
	if err != nil {
		if code, ok := exitCode(err); ok {
			entry.WithField("exit_code", code).Debugf("%s exited with error: %s", tool, bytes.TrimSpace(stderr))
			return stdout, stderr, err
		}
		return stdout, stderr, fmt.Errorf("failed to run %s: %w", tool.DisplayName(), err)
	}
	entry.Debug("command finished")

	return stdout, stderr, nil
}
