package pdf

import "time"

const (
	// DefaultCLITimeout bounds a single Ghostscript or qpdf invocation
	DefaultCLITimeout = 2 * time.Minute

	// EncryptionKeyLength is the qpdf key length in bits (AES-256)
	EncryptionKeyLength = "256"

	// CompatibilityLevel is the PDF version Ghostscript writes when compressing
	CompatibilityLevel = "1.4"

	// DefaultDirPermissions for output directories created by Split
	DefaultDirPermissions = 0755
)

// Compression presets map directly to Ghostscript's -dPDFSETTINGS names.
const (
	PresetScreen   = "screen"
	PresetEbook    = "ebook"
	PresetPrinter  = "printer"
	PresetPrepress = "prepress"
)

// ValidPresets lists the accepted compression presets in quality order.
var ValidPresets = []string{PresetScreen, PresetEbook, PresetPrinter, PresetPrepress}

// Split modes.
const (
	SplitModeRange   = "range"
	SplitModeExtract = "extract"
	SplitModeEveryN  = "every-n"
)

// ValidSplitModes lists the accepted split modes.
var ValidSplitModes = []string{SplitModeRange, SplitModeExtract, SplitModeEveryN}

// Suffixes appended to the input stem when no output path is given.
const (
	SuffixCompressed   = "-compressed"
	SuffixProtected    = "-protected"
	SuffixUnlocked     = "-unlocked"
	SuffixOptimized    = "-optimized"
	SuffixPagesRemoved = "-pages-removed"
)

// qpdf exit statuses. 3 means the operation succeeded with warnings.
const (
	qpdfExitWarnings     = 3
	qpdfExitNotEncrypted = 2
)
