package pdf

import (
	"errors"
	"fmt"
)

// Validation errors are returned before any external process is spawned.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrNotPDF           = errors.New("file is not a PDF")
	ErrInvalidPreset    = errors.New("invalid preset")
	ErrInvalidMode      = errors.New("invalid split mode")
	ErrInvalidPageRange = errors.New("invalid page range")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrTooFewInputs     = errors.New("at least 2 PDF files are required for merging")
	ErrOutputDirMissing = errors.New("output directory does not exist")
	ErrOutputRequired   = errors.New("output path is required")
	ErrOutputIsInput    = errors.New("output path must differ from the input files")
)

// Tool failures.
var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrToolFailed    = errors.New("tool failed")
	ErrWrongPassword = errors.New("failed to decrypt PDF, check if the password is correct")
)

// ToolNotFoundError reports a missing binary together with an install hint
// for the current OS.
type ToolNotFoundError struct {
	Tool Tool
	Hint string
}

func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("%s not found. %s", e.Tool.DisplayName(), e.Hint)
}

func (e *ToolNotFoundError) Is(target error) bool {
	return target == ErrToolNotFound
}

// ExitError is a non-zero exit status from Ghostscript or qpdf.
type ExitError struct {
	Tool Tool
	Op   string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s %s failed with exit code: %d", e.Tool, e.Op, e.Code)
}

func (e *ExitError) Is(target error) bool {
	return target == ErrToolFailed
}
