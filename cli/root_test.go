package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedRunner struct {
	pages int
	calls [][]string
}

type exitCode int

func (e exitCode) Error() string { return fmt.Sprintf("exit status %d", int(e)) }
func (e exitCode) ExitCode() int { return int(e) }

func (r *scriptedRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	r.calls = append(r.calls, args)
	switch {
	case len(args) > 0 && args[0] == "--version":
		if strings.HasSuffix(name, "qpdf") {
			return []byte("qpdf version 11.9.1\nRun qpdf --copyright\n"), nil, nil
		}
		return []byte("10.04.0\n"), nil, nil
	case len(args) > 0 && args[0] == "-q":
		return []byte(fmt.Sprint(r.pages)), nil, nil
	case len(args) > 0 && args[0] == "--is-encrypted":
		return nil, nil, exitCode(2)
	}
	for _, a := range args {
		if strings.HasPrefix(a, "-sOutputFile=") {
			return nil, nil, os.WriteFile(strings.TrimPrefix(a, "-sOutputFile="), []byte("%PDF-1.4 x"), 0644)
		}
	}
	if strings.HasSuffix(name, "qpdf") {
		return nil, nil, os.WriteFile(args[len(args)-1], []byte("%PDF-1.4 x"), 0644)
	}
	return nil, nil, nil
}

type harness struct {
	dir    string
	runner *scriptedRunner
	gs     string
	qpdf   string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	h := &harness{dir: dir, runner: &scriptedRunner{pages: 3}, gs: filepath.Join(dir, "gs"), qpdf: filepath.Join(dir, "qpdf")}
	require.NoError(t, os.WriteFile(h.gs, nil, 0755))
	require.NoError(t, os.WriteFile(h.qpdf, nil, 0755))
	return h
}

func (h *harness) run(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	a := &app{
		out:    &out,
		errOut: &errOut,
		getenv: func(k string) string { return env[k] },
		runner: h.runner,
	}
	cmd := newRootCommand(a)
	cmd.SetArgs(append([]string{"--gs", h.gs, "--qpdf", h.qpdf, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func (h *harness) pdf(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4 "+strings.Repeat("x", 1015)), 0644))
	return p
}

func TestCompressCommand(t *testing.T) {
	h := newHarness(t)
	in := h.pdf(t, "scan.pdf")

	out, err := h.run(t, nil, "compress", in, "--preset", "screen")
	require.NoError(t, err)
	assert.Contains(t, out, "1.0 KiB → 10 B")
	assert.Contains(t, out, filepath.Join(h.dir, "scan-compressed.pdf"))

	_, err = h.run(t, nil, "compress", in, "--preset", "tiny")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid preset 'tiny'")
}

func TestCompressCommand_JSON(t *testing.T) {
	h := newHarness(t)
	in := h.pdf(t, "scan.pdf")

	out, err := h.run(t, nil, "--json", "compress", in, "-o", filepath.Join(h.dir, "small.pdf"))
	require.NoError(t, err)

	var res map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, filepath.Join(h.dir, "small.pdf"), res["output_path"])
	assert.Equal(t, float64(1024), res["original_size"])
}

func TestMergeCommand(t *testing.T) {
	h := newHarness(t)
	a, b := h.pdf(t, "a.pdf"), h.pdf(t, "b.pdf")

	out, err := h.run(t, nil, "merge", a, b, "-o", filepath.Join(h.dir, "ab.pdf"))
	require.NoError(t, err)
	assert.Contains(t, out, "merged 2 files")

	_, err = h.run(t, nil, "merge", a, "-o", filepath.Join(h.dir, "ab.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 PDF files")
}

func TestSplitCommand(t *testing.T) {
	h := newHarness(t)
	in := h.pdf(t, "book.pdf")
	outDir := filepath.Join(h.dir, "parts")

	out, err := h.run(t, nil, "split", in, "-d", outDir, "--mode", "extract", "--pages", "1,3")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(outDir, "book_1-3.pdf"))

	out, err = h.run(t, nil, "split", in, "-d", outDir, "--mode", "every-n", "--every", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "split 3 pages into 2 files")

	_, err = h.run(t, nil, "split", in, "-d", outDir, "--start", "2", "--end", "9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid page range 2-9, PDF has 3 pages")

	_, err = h.run(t, nil, "split", in, "-d", outDir, "--mode", "extract", "--pages", "x")
	require.Error(t, err)
}

func TestPagesAndEncryptedCommands(t *testing.T) {
	h := newHarness(t)
	in := h.pdf(t, "book.pdf")

	out, err := h.run(t, nil, "pages", in)
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = h.run(t, nil, "encrypted", in)
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)
}

func TestProtectUnlockCommands(t *testing.T) {
	h := newHarness(t)
	in := h.pdf(t, "secret.pdf")

	_, err := h.run(t, nil, "protect", in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "password cannot be empty")

	out, err := h.run(t, nil, "protect", in, "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "secret-protected.pdf")

	out, err = h.run(t, nil, "unlock", filepath.Join(h.dir, "secret-protected.pdf"), "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "secret-protected-unlocked.pdf")
}

func TestToolsCommand(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(t, nil, "tools")
	require.NoError(t, err)
	assert.Contains(t, out, "Ghostscript  10.04.0 ("+h.gs+")")
	assert.Contains(t, out, "qpdf         qpdf version 11.9.1 ("+h.qpdf+")")
}

func TestConfigFileAndEnv(t *testing.T) {
	h := newHarness(t)
	cfgPath := filepath.Join(h.dir, "smash.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`log { level = "verbose" }`), 0644))

	// --log-level on the command line wins over the file
	_, err := h.run(t, map[string]string{"SMASH_CONFIG": cfgPath}, "pages", h.pdf(t, "a.pdf"))
	require.NoError(t, err)

	var out, errOut bytes.Buffer
	a := &app{out: &out, errOut: &errOut, getenv: func(k string) string {
		return map[string]string{"SMASH_CONFIG": cfgPath}[k]
	}, runner: h.runner}
	cmd := newRootCommand(a)
	cmd.SetArgs([]string{"pages", "a.pdf"})
	err = cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "verbose"`)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", humanSize(512))
	assert.Equal(t, "1.5 KiB", humanSize(1536))
	assert.Equal(t, "2.0 MiB", humanSize(2*1024*1024))
}

func TestSplitCommand_HugeRangeRejected(t *testing.T) {
	h := newHarness(t)
	in := h.pdf(t, "book.pdf")

	_, err := h.run(t, nil, "split", in, "-d", h.dir, "--mode", "extract", "--pages", "1-9223372036854775807")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds total pages (3)")
	assert.Len(t, h.runner.calls, 1)
}

func TestIsLoopback(t *testing.T) {
	for _, host := range []string{"127.0.0.1", "::1", "localhost", "127.0.0.2"} {
		assert.True(t, isLoopback(host), host)
	}
	for _, host := range []string{"", "0.0.0.0", "::", "192.168.1.10", "example.com"} {
		assert.False(t, isLoopback(host), host)
	}
}
