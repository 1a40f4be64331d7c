package pdf

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// RemovePages writes a copy of in without the listed pages ("1,3-5,7"). The
// remaining pages are extracted as contiguous runs and merged.
func (t *Tools) RemovePages(ctx context.Context, in, out, pages string) (*FileResult, error) {
	if err := ValidatePDF(in); err != nil {
		return nil, err
	}
	// Syntax is checked before the page count query spawns anything.
	if _, err := ParsePageRanges(pages); err != nil {
		return nil, err
	}
	out = outputOrDefault(in, out, SuffixPagesRemoved)
	if err := checkOutputDistinct(out, in); err != nil {
		return nil, err
	}

	totalPages, err := t.pageCount(ctx, in)
	if err != nil {
		return nil, err
	}
	pageNumbers, err := ParsePageSpecifier(pages, totalPages)
	if err != nil {
		return nil, err
	}

	keep := ComplementRanges(pageNumbers, totalPages)
	if len(keep) == 0 {
		return nil, fmt.Errorf("%w: cannot remove all %d pages", ErrInvalidPageRange, totalPages)
	}

	if err := t.gsExtractRanges(ctx, in, out, keep); err != nil {
		return nil, err
	}

	size, err := outputSize(out)
	if err != nil {
		return nil, err
	}
	t.log.WithFields(logrus.Fields{
		"operation": "remove-pages",
		"input":     in,
		"output":    out,
		"removed":   len(pageNumbers),
		"kept":      totalPages - len(pageNumbers),
	}).Info("pages removed")
	return &FileResult{OutputPath: out, Size: size}, nil
}
