package pdf

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Merge concatenates inputs, in order, into out.
func (t *Tools) Merge(ctx context.Context, inputs []string, out string) (*FileResult, error) {
	if len(inputs) < 2 {
		return nil, ErrTooFewInputs
	}
	for _, in := range inputs {
		if err := ValidatePDF(in); err != nil {
			return nil, err
		}
	}

	if out == "" {
		return nil, ErrOutputRequired
	}
	if err := checkOutputDistinct(out, inputs...); err != nil {
		return nil, err
	}
	if dir := filepath.Dir(out); dir != "." {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrOutputDirMissing, dir)
		}
	}

	if err := t.gsMerge(ctx, inputs, out); err != nil {
		return nil, err
	}

	size, err := outputSize(out)
	if err != nil {
		return nil, err
	}

	t.log.WithFields(logrus.Fields{
		"operation": "merge",
		"inputs":    len(inputs),
		"output":    out,
		"size":      size,
	}).Info("PDFs merged")

	return &FileResult{OutputPath: out, Size: size}, nil
}
