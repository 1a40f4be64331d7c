package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// pdfwrite flags shared by every Ghostscript write operation.
var pdfwriteFlags = []string{"-sDEVICE=pdfwrite", "-dNOPAUSE", "-dQUIET", "-dBATCH"}

func compressArgs(in, out, preset string) []string {
	return []string{
		"-sDEVICE=pdfwrite",
		"-dCompatibilityLevel=" + CompatibilityLevel,
		"-dPDFSETTINGS=/" + preset,
		"-dNOPAUSE",
		"-dQUIET",
		"-dBATCH",
		"-dDetectDuplicateImages=true",
		"-dCompressFonts=true",
		"-dSubsetFonts=true",
		"-sOutputFile=" + out,
		in,
	}
}

func mergeArgs(inputs []string, out string) []string {
	args := append([]string{}, pdfwriteFlags...)
	args = append(args, "-sOutputFile="+out)
	return append(args, inputs...)
}

func extractArgs(in, out string, first, last int) []string {
	args := append([]string{}, pdfwriteFlags...)
	return append(args,
		"-dFirstPage="+strconv.Itoa(first),
		"-dLastPage="+strconv.Itoa(last),
		"-sOutputFile="+out,
		in,
	)
}

// pageCountArgs passes the path out of band as /File, so it never appears
// inside the PostScript program, and only that file is opened for reading.
func pageCountArgs(in string) []string {
	return []string{
		"-q",
		"-dNODISPLAY",
		"--permit-file-read=" + in,
		"-sFile=" + in,
		"-c",
		"File (r) file runpdfbegin pdfpagecount = quit",
	}
}

// pageCountFallbackArgs embeds the path as a PostScript string literal;
// backslashes become slashes and parentheses are escaped so the literal
// cannot be closed early.
func pageCountFallbackArgs(in string) []string {
	escaped := strings.NewReplacer(`\`, "/", "(", `\(`, ")", `\)`).Replace(in)
	return []string{
		"-q",
		"-dNODISPLAY",
		"-dBATCH",
		"-dNOPAUSE",
		"--permit-file-read=" + in,
		"-c",
		fmt.Sprintf("(%s) (r) file runpdfbegin pdfpagecount = quit", escaped),
	}
}

// runGhostscript resolves gs and runs it, translating a non-zero exit into
// an ExitError for op.
func (t *Tools) runGhostscript(ctx context.Context, op string, args []string) ([]byte, error) {
	gs, err := t.Resolve(Ghostscript)
	if err != nil {
		return nil, err
	}
	stdout, _, err := t.execCommandWithTimeout(ctx, Ghostscript, gs, args...)
	if err != nil {
		if code, ok := exitCode(err); ok {
			return stdout, &ExitError{Tool: Ghostscript, Op: op, Code: code}
		}
		return stdout, err
	}
	return stdout, nil
}

func (t *Tools) ghostscriptVersion(ctx context.Context) (string, error) {
	stdout, err := t.runGhostscript(ctx, "version query", []string{"--version"})
	if err != nil {
		return "", fmt.Errorf("failed to get Ghostscript version: %w", err)
	}
	return firstLine(stdout), nil
}

func (t *Tools) gsCompress(ctx context.Context, in, out, preset string) error {
	_, err := t.runGhostscript(ctx, "compression", compressArgs(in, out, preset))
	return err
}

func (t *Tools) gsMerge(ctx context.Context, inputs []string, out string) error {
	_, err := t.runGhostscript(ctx, "merge", mergeArgs(inputs, out))
	return err
}

func (t *Tools) gsExtractPages(ctx context.Context, in, out string, first, last int) error {
	if _, err := t.runGhostscript(ctx, "page extraction", extractArgs(in, out, first, last)); err != nil {
		return fmt.Errorf("failed to extract pages %d-%d: %w", first, last, err)
	}
	return nil
}

// gsExtractRanges assembles a page selection by extracting each run into
// a scratch directory and merging the results in order. A single run is
// extracted straight to out.
func (t *Tools) gsExtractRanges(ctx context.Context, in, out string, ranges []PageRange) error {
	if len(ranges) == 1 {
		return t.gsExtractPages(ctx, in, out, ranges[0].First, ranges[0].Last)
	}

	if t.tempDir != "" {
		if err := os.MkdirAll(t.tempDir, DefaultDirPermissions); err != nil {
			return fmt.Errorf("failed to create temp directory: %w", err)
		}
	}
	tempDir, err := os.MkdirTemp(t.tempDir, "smash-pages-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	tempFiles := make([]string, 0, len(ranges))
	for i, r := range ranges {
		// Index keeps names unique when a page is selected twice.
		tempFile := filepath.Join(tempDir, fmt.Sprintf("part_%04d_%d-%d.pdf", i, r.First, r.Last))
		if err := t.gsExtractPages(ctx, in, tempFile, r.First, r.Last); err != nil {
			return err
		}
		tempFiles = append(tempFiles, tempFile)
	}
	return t.gsMerge(ctx, tempFiles, out)
}

// gsPageCount tries the primary query, then the escaped fallback query.
func (t *Tools) gsPageCount(ctx context.Context, in string) (int, error) {
	stdout, err := t.runGhostscript(ctx, "page count", pageCountArgs(in))
	if err == nil {
		s := strings.TrimSpace(string(stdout))
		n, convErr := strconv.Atoi(s)
		if convErr != nil {
			return 0, fmt.Errorf("failed to parse page count: %s", s)
		}
		return n, nil
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		return 0, err
	}

	t.log.WithField("input", in).Debug("primary page count query failed, trying fallback")
	stdout, err = t.runGhostscript(ctx, "page count", pageCountFallbackArgs(in))
	if err != nil {
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	s := strings.TrimSpace(string(stdout))
	lines := strings.Split(s, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])
	n, convErr := strconv.Atoi(last)
	if convErr != nil {
		return 0, fmt.Errorf("failed to parse page count from: %s", s)
	}
	return n, nil
}

func firstLine(b []byte) string {
	s := strings.TrimSpace(string(b))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}
