package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidatePDF checks that path exists and has a .pdf extension (any case).
func ValidatePDF(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return ErrNotPDF
	}
	return nil
}

// FileSize returns the size of path in bytes.
func FileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// OutputPath derives "<dir>/<stem><suffix>.pdf" from the input path.
func OutputPath(inputPath, suffix string) string {
	dir := filepath.Dir(inputPath)
	return filepath.Join(dir, stem(inputPath)+suffix+".pdf")
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// outputOrDefault returns out, or the derived path when out is empty.
func outputOrDefault(in, out, suffix string) string {
	if out != "" {
		return out
	}
	return OutputPath(in, suffix)
}

func outputSize(path string) (int64, error) {
	size, err := FileSize(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read output file: %w", err)
	}
	return size, nil
}

// checkOutputDistinct rejects an out that names one of inputs, either by
// path or as the same file on disk.
func checkOutputDistinct(out string, inputs ...string) error {
	outAbs, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", out, err)
	}
	outInfo, statErr := os.Stat(out)
	for _, in := range inputs {
		if inAbs, err := filepath.Abs(in); err == nil && inAbs == outAbs {
			return fmt.Errorf("%w: %s", ErrOutputIsInput, out)
		}
		if statErr != nil {
			continue
		}
		if inInfo, err := os.Stat(in); err == nil && os.SameFile(inInfo, outInfo) {
			return fmt.Errorf("%w: %s", ErrOutputIsInput, out)
		}
	}
	return nil
}
