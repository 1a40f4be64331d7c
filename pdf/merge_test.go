package pdf

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_RequiresTwoInputs(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 10)
	r := &fakeRunner{}
	tools := newTestTools(t, r)

	_, err := tools.Merge(context.Background(), nil, filepath.Join(dir, "out.pdf"))
	require.ErrorIs(t, err, ErrTooFewInputs)
	_, err = tools.Merge(context.Background(), []string{a}, filepath.Join(dir, "out.pdf"))
	require.ErrorIs(t, err, ErrTooFewInputs)
	assert.Empty(t, r.Calls())
}

func TestMerge_ConcatenatesInOrder(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 10)
	b := writePDF(t, dir, "b.pdf", 10)
	c := writePDF(t, dir, "c.pdf", 10)
	out := filepath.Join(dir, "merged.pdf")
	r := &fakeRunner{}
	tools := newTestTools(t, r)

	res, err := tools.Merge(context.Background(), []string{c, a, b}, out)
	require.NoError(t, err)
	assert.Equal(t, out, res.OutputPath)
	assert.Equal(t, int64(len(fakeOutput)), res.Size)

	calls := r.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{
		"-sDEVICE=pdfwrite", "-dNOPAUSE", "-dQUIET", "-dBATCH",
		"-sOutputFile=" + out,
		c, a, b,
	}, calls[0].args)
}

func TestMerge_ValidatesEveryInput(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 10)
	tools := newTestTools(t, &fakeRunner{})

	_, err := tools.Merge(context.Background(), []string{a, filepath.Join(dir, "gone.pdf")}, filepath.Join(dir, "out.pdf"))
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestMerge_OutputDirectoryMustExist(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 10)
	b := writePDF(t, dir, "b.pdf", 10)
	tools := newTestTools(t, &fakeRunner{})

	_, err := tools.Merge(context.Background(), []string{a, b}, filepath.Join(dir, "nope", "out.pdf"))
	require.ErrorIs(t, err, ErrOutputDirMissing)

	_, err = tools.Merge(context.Background(), []string{a, b}, "")
	require.ErrorIs(t, err, ErrOutputRequired)
}

func TestMerge_OutputMustDifferFromInputs(t *testing.T) {
	dir := t.TempDir()
	a := writePDF(t, dir, "a.pdf", 10)
	b := writePDF(t, dir, "b.pdf", 10)
	r := &fakeRunner{}
	tools := newTestTools(t, r)

	_, err := tools.Merge(context.Background(), []string{a, b}, b)
	require.ErrorIs(t, err, ErrOutputIsInput)
	_, err = tools.Merge(context.Background(), []string{a, b}, dir+"/./a.pdf")
	require.ErrorIs(t, err, ErrOutputIsInput)
	assert.Empty(t, r.Calls())
}
