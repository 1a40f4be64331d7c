package pdf

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Optimize resaves in through qpdf: linearized for web viewing, streams
// compressed, object streams generated.
func (t *Tools) Optimize(ctx context.Context, in, out string) (*FileResult, error) {
	if err := ValidatePDF(in); err != nil {
		return nil, err
	}
	out = outputOrDefault(in, out, SuffixOptimized)
	if err := checkOutputDistinct(out, in); err != nil {
		return nil, err
	}

	if err := t.qpdfOptimize(ctx, in, out); err != nil {
		return nil, err
	}

	size, err := outputSize(out)
	if err != nil {
		return nil, err
	}
	t.log.WithFields(logrus.Fields{"operation": "optimize", "input": in, "output": out, "size": size}).Info("PDF optimized")
	return &FileResult{OutputPath: out, Size: size}, nil
}
