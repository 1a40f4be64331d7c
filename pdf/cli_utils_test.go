package pdf

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingRunner waits until its context ends, like a hung process.
type blockingRunner struct{}

func (blockingRunner) Run(ctx context.Context, _ string, _ ...string) ([]byte, []byte, error) {
	<-ctx.Done()
	return nil, nil, errors.New("signal: killed")
}

func TestExecCommandWithTimeout_ReportsTimeout(t *testing.T) {
	tools := New(Options{Runner: blockingRunner{}, Logger: quietLogger(), Timeout: 10 * time.Millisecond})

	_, _, err := tools.execCommandWithTimeout(context.Background(), Ghostscript, "/usr/bin/gs", "-v")
	require.Error(t, err)
	assert.Equal(t, "command timed out after 10ms", err.Error())
}

func TestExecCommandWithTimeout_ParentCancelPassesThrough(t *testing.T) {
	tools := New(Options{Runner: blockingRunner{}, Logger: quietLogger(), Timeout: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, _, err := tools.execCommandWithTimeout(ctx, Ghostscript, "/usr/bin/gs", "-v")
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, err.Error(), "timed out after")
}

func TestExecCommandWithTimeout_ParentDeadlineNotReportedAsTimeout(t *testing.T) {
	tools := New(Options{Runner: blockingRunner{}, Logger: quietLogger(), Timeout: time.Hour})
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, _, err := tools.execCommandWithTimeout(ctx, Ghostscript, "/usr/bin/gs", "-v")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotContains(t, err.Error(), "1h0m0s")
}

func TestExecCommandWithTimeout_ExitCodeKept(t *testing.T) {
	r := &fakeRunner{handler: func(string, []string) ([]byte, error) { return nil, exitStatus(3) }}
	tools := newTestTools(t, r)

	_, _, err := tools.execCommandWithTimeout(context.Background(), QPDF, "/usr/bin/qpdf", "--check")
	code, ok := exitCode(err)
	require.True(t, ok)
	assert.Equal(t, 3, code)
}
