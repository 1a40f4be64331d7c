package pdf

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// PageCount returns the number of pages in in. Ghostscript is asked first;
// if both of its queries fail, pdfcpu reads the page tree directly.
func (t *Tools) PageCount(ctx context.Context, in string) (int, error) {
	if err := ValidatePDF(in); err != nil {
		return 0, err
	}
	return t.pageCount(ctx, in)
}

func (t *Tools) pageCount(ctx context.Context, in string) (int, error) {
	n, err := t.gsPageCount(ctx, in)
	if err == nil {
		return n, nil
	}
	if ctx.Err() != nil {
		return 0, err
	}
	// A missing Ghostscript is reported as such rather than masked.
	if errors.Is(err, ErrToolNotFound) {
		return 0, err
	}

	t.log.WithError(err).WithField("input", in).Warn("Ghostscript page count failed, falling back to pdfcpu")
	n, fbErr := t.countPages(in)
	if fbErr != nil {
		t.log.WithError(fbErr).Debug("pdfcpu page count failed")
		return 0, fmt.Errorf("failed to get page count: %w", err)
	}
	return n, nil
}

// Split writes parts of in into outDir according to opts.Mode.
func (t *Tools) Split(ctx context.Context, in, outDir string, opts SplitOptions) (*SplitResult, error) {
	if err := ValidatePDF(in); err != nil {
		return nil, err
	}
	if err := ValidateSplitMode(opts.Mode); err != nil {
		return nil, err
	}
	if opts.PageSpec != "" {
		if _, err := ParsePageRanges(opts.PageSpec); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(outDir, DefaultDirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	totalPages, err := t.pageCount(ctx, in)
	if err != nil {
		return nil, err
	}

	base := filepath.Join(outDir, stem(in))
	var outputs []string

	switch opts.Mode {
	case SplitModeRange:
		outputs, err = t.splitRange(ctx, in, base, opts, totalPages)
	case SplitModeExtract:
		outputs, err = t.splitExtract(ctx, in, base, opts, totalPages)
	case SplitModeEveryN:
		outputs, err = t.splitEveryN(ctx, in, base, opts, totalPages)
	}
	if err != nil {
		return nil, err
	}

	t.log.WithFields(logrus.Fields{
		"operation": "split",
		"mode":      opts.Mode,
		"input":     in,
		"outputs":   len(outputs),
		"pages":     totalPages,
	}).Info("PDF split")

	return &SplitResult{OutputPaths: outputs, TotalPages: totalPages}, nil
}

// ValidateSplitMode rejects modes outside ValidSplitModes.
func ValidateSplitMode(mode string) error {
	if !slices.Contains(ValidSplitModes, mode) {
		return fmt.Errorf("%w '%s', valid options: %s", ErrInvalidMode, mode, strings.Join(ValidSplitModes, ", "))
	}
	return nil
}

// ValidateRange checks 1 <= start <= end <= totalPages.
func ValidateRange(start, end, totalPages int) error {
	if start > end || start < 1 || end > totalPages {
		return fmt.Errorf("%w %d-%d, PDF has %d pages", ErrInvalidPageRange, start, end, totalPages)
	}
	return nil
}

func (t *Tools) splitRange(ctx context.Context, in, base string, opts SplitOptions, totalPages int) ([]string, error) {
	start, end := 1, totalPages
	if opts.RangeStart != nil {
		start = *opts.RangeStart
	}
	if opts.RangeEnd != nil {
		end = *opts.RangeEnd
	}
	if err := ValidateRange(start, end, totalPages); err != nil {
		return nil, err
	}

	out := fmt.Sprintf("%s_pages_%d-%d.pdf", base, start, end)
	if err := t.gsExtractPages(ctx, in, out, start, end); err != nil {
		return nil, err
	}
	return []string{out}, nil
}

func (t *Tools) splitExtract(ctx context.Context, in, base string, opts SplitOptions, totalPages int) ([]string, error) {
	pages := opts.Pages
	if len(pages) == 0 && opts.PageSpec != "" {
		var err error
		if pages, err = ParsePageSpecifier(opts.PageSpec, totalPages); err != nil {
			return nil, err
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages specified", ErrInvalidPageRange)
	}
	for _, page := range pages {
		if page < 1 || page > totalPages {
			return nil, fmt.Errorf("%w: page number %d, PDF has %d pages", ErrInvalidPageRange, page, totalPages)
		}
	}

	out := fmt.Sprintf("%s_%s.pdf", base, extractLabel(pages))
	if err := t.gsExtractRanges(ctx, in, out, pagesToRanges(pages)); err != nil {
		return nil, err
	}
	return []string{out}, nil
}

// extractLabel names up to three pages explicitly, otherwise counts them.
func extractLabel(pages []int) string {
	if len(pages) > 3 {
		return fmt.Sprintf("%d-pages", len(pages))
	}
	strs := make([]string, len(pages))
	for i, p := range pages {
		strs[i] = strconv.Itoa(p)
	}
	return strings.Join(strs, "-")
}

func (t *Tools) splitEveryN(ctx context.Context, in, base string, opts SplitOptions, totalPages int) ([]string, error) {
	n := 1
	if opts.EveryN != nil {
		n = *opts.EveryN
	}
	if n < 1 {
		return nil, fmt.Errorf("%w: every_n must be at least 1", ErrInvalidPageRange)
	}

	var outputs []string
	for part, start := 1, 1; start <= totalPages; part++ {
		end := min(start+n-1, totalPages)
		out := fmt.Sprintf("%s_part%d.pdf", base, part)
		if err := t.gsExtractPages(ctx, in, out, start, end); err != nil {
			return nil, err
		}
		outputs = append(outputs, out)
		start = end + 1
	}
	return outputs, nil
}
