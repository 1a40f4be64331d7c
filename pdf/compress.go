package pdf

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"
)

// ValidatePreset rejects presets outside ValidPresets.
func ValidatePreset(preset string) error {
	if !slices.Contains(ValidPresets, preset) {
		return fmt.Errorf("%w '%s', valid options: %v", ErrInvalidPreset, preset, ValidPresets)
	}
	return nil
}

// SavingsPercent is (original - compressed) / original * 100, or 0 for an
// empty original. It is negative when the output grew.
func SavingsPercent(original, compressed int64) float64 {
	if original <= 0 {
		return 0
	}
	return (float64(original) - float64(compressed)) / float64(original) * 100
}

// Compress rewrites in through Ghostscript's pdfwrite device using preset.
// An empty out derives "<stem>-compressed.pdf" next to the input.
func (t *Tools) Compress(ctx context.Context, in, out, preset string) (*CompressionResult, error) {
	if err := ValidatePDF(in); err != nil {
		return nil, err
	}
	if err := ValidatePreset(preset); err != nil {
		return nil, err
	}
	out = outputOrDefault(in, out, SuffixCompressed)
	if err := checkOutputDistinct(out, in); err != nil {
		return nil, err
	}

	originalSize, err := FileSize(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}

	start := time.Now()
	if err := t.gsCompress(ctx, in, out, preset); err != nil {
		return nil, err
	}

	compressedSize, err := outputSize(out)
	if err != nil {
		return nil, err
	}

	result := &CompressionResult{
		OutputPath:     out,
		OriginalSize:   originalSize,
		CompressedSize: compressedSize,
		SavingsPercent: SavingsPercent(originalSize, compressedSize),
	}
	t.log.WithFields(logrus.Fields{
		"operation": "compress",
		"input":     in,
		"output":    out,
		"preset":    preset,
		"savings":   fmt.Sprintf("%.1f%%", result.SavingsPercent),
		"duration":  time.Since(start).String(),
	}).Info("PDF compressed")

	return result, nil
}
