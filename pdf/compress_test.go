package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSavingsPercent(t *testing.T) {
	assert.InDelta(t, 75.0, SavingsPercent(1000, 250), 1e-9)
	assert.InDelta(t, -50.0, SavingsPercent(100, 150), 1e-9)
	assert.Equal(t, 0.0, SavingsPercent(0, 0))
	assert.Equal(t, 0.0, SavingsPercent(0, 42))
}

func TestCompress_BuildsGhostscriptCommand(t *testing.T) {
	dir := t.TempDir()
	in := writePDF(t, dir, "report.pdf", 100)
	r := &fakeRunner{}
	tools := newTestTools(t, r)

	res, err := tools.Compress(context.Background(), in, "", PresetEbook)
	require.NoError(t, err)

	want := filepath.Join(dir, "report-compressed.pdf")
	assert.Equal(t, want, res.OutputPath)
	assert.Equal(t, int64(100), res.OriginalSize)
	assert.Equal(t, int64(len(fakeOutput)), res.CompressedSize)
	assert.InDelta(t, 87.0, res.SavingsPercent, 1e-9)

	calls := r.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "/usr/bin/gs", calls[0].name)
	assert.Equal(t, []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=1.4",
		"-dPDFSETTINGS=/ebook",
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-dDetectDuplicateImages=true",
		"-dCompressFonts=true",
		"-dSubsetFonts=true",
		"-sOutputFile=" + want,
		in,
	}, calls[0].args)
}

func TestCompress_ExplicitOutput(t *testing.T) {
	dir := t.TempDir()
	in := writePDF(t, dir, "a.pdf", 50)
	out := filepath.Join(dir, "small.pdf")
	tools := newTestTools(t, &fakeRunner{})

	res, err := tools.Compress(context.Background(), in, out, PresetScreen)
	require.NoError(t, err)
	assert.Equal(t, out, res.OutputPath)
}

func TestCompress_InvalidPresetSpawnsNothing(t *testing.T) {
	dir := t.TempDir()
	in := writePDF(t, dir, "a.pdf", 50)
	r := &fakeRunner{}
	tools := newTestTools(t, r)

	for _, preset := range []string{"", "default", "Screen", "/ebook"} {
		_, err := tools.Compress(context.Background(), in, "", preset)
		require.ErrorIs(t, err, ErrInvalidPreset, preset)
	}
	assert.Empty(t, r.Calls())
}

func TestCompress_InputValidation(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{}
	tools := newTestTools(t, r)

	_, err := tools.Compress(context.Background(), filepath.Join(dir, "missing.pdf"), "", PresetEbook)
	require.ErrorIs(t, err, ErrFileNotFound)

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hi"), 0644))
	_, err = tools.Compress(context.Background(), txt, "", PresetEbook)
	require.ErrorIs(t, err, ErrNotPDF)

	upper := writePDF(t, dir, "SCAN.PDF", 20)
	_, err = tools.Compress(context.Background(), upper, "", PresetEbook)
	require.NoError(t, err)

	assert.Len(t, r.Calls(), 1)
}

func TestCompress_ExitCodeSurfaced(t *testing.T) {
	dir := t.TempDir()
	in := writePDF(t, dir, "a.pdf", 50)
	r := &fakeRunner{handler: func(string, []string) ([]byte, error) { return nil, exitStatus(255) }}
	tools := newTestTools(t, r)

	_, err := tools.Compress(context.Background(), in, "", PresetPrinter)
	require.ErrorIs(t, err, ErrToolFailed)
	assert.Equal(t, "ghostscript compression failed with exit code: 255", err.Error())
}

func TestCompress_ToolMissing(t *testing.T) {
	dir := t.TempDir()
	in := writePDF(t, dir, "a.pdf", 50)
	r := &fakeRunner{}
	tools := newTestTools(t, r)
	tools.lookPath = noPath
	tools.fileExists = func(string) bool { return false }

	_, err := tools.Compress(context.Background(), in, "", PresetPrepress)
	require.ErrorIs(t, err, ErrToolNotFound)
	assert.Empty(t, r.Calls())
}

func TestCompress_OutputMustDifferFromInput(t *testing.T) {
	dir := t.TempDir()
	in := writePDF(t, dir, "a.pdf", 50)
	r := &fakeRunner{}
	tools := newTestTools(t, r)

	_, err := tools.Compress(context.Background(), in, in, PresetScreen)
	require.ErrorIs(t, err, ErrOutputIsInput)
	assert.Empty(t, r.Calls())

	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Len(t, data, 50)
}
