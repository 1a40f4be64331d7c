package pdf

// CompressionResult is returned by Compress.
type CompressionResult struct {
	OutputPath     string  `json:"output_path"`
	OriginalSize   int64   `json:"original_size"`
	CompressedSize int64   `json:"compressed_size"`
	SavingsPercent float64 `json:"savings_percent"`
}

// FileResult describes a single output file.
type FileResult struct {
	OutputPath string `json:"output_path"`
	Size       int64  `json:"size"`
}

// SplitResult lists the files written by Split.
type SplitResult struct {
	OutputPaths []string `json:"output_paths"`
	TotalPages  int      `json:"total_pages"`
}

// SplitOptions selects a split mode and its parameters. Unset optional
// fields take the mode's defaults.
type SplitOptions struct {
	Mode       string `json:"mode" binding:"required"`
	RangeStart *int   `json:"range_start,omitempty"`
	RangeEnd   *int   `json:"range_end,omitempty"`
	Pages      []int  `json:"pages,omitempty"`
	// PageSpec ("1,3-5") is used by extract mode when Pages is empty.
	PageSpec string `json:"page_spec,omitempty"`
	EveryN   *int   `json:"every_n,omitempty"`
}
