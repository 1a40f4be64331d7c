package pdf

import "context"

// commandNames are tried on PATH before the hard-coded install locations.
func commandNames(tool Tool, goos string) []string {
	switch tool {
	case Ghostscript:
		if goos == "windows" {
			return []string{"gs", "gswin64c", "gswin32c"}
		}
		return []string{"gs"}
	case QPDF:
		return []string{"qpdf"}
	}
	return nil
}

func candidatePaths(tool Tool, goos string) []string {
	switch goos {
	case "windows":
		if tool == Ghostscript {
			return []string{
				`C:\Program Files\gs\gs10.04.0\bin\gswin64c.exe`,
				`C:\Program Files\gs\gs10.03.0\bin\gswin64c.exe`,
				`C:\Program Files\gs\gs10.02.0\bin\gswin64c.exe`,
				`C:\Program Files\gs\gs10.01.0\bin\gswin64c.exe`,
				`C:\Program Files\gs\gs10.00.0\bin\gswin64c.exe`,
				`C:\Program Files\gs\gs9.56.1\bin\gswin64c.exe`,
				`C:\Program Files (x86)\gs\gs10.04.0\bin\gswin32c.exe`,
			}
		}
		return []string{
			`C:\Program Files\qpdf\bin\qpdf.exe`,
			`C:\Program Files (x86)\qpdf\bin\qpdf.exe`,
		}
	case "darwin":
		name := binaryName(tool)
		return []string{
			"/opt/homebrew/bin/" + name, // Apple Silicon Homebrew
			"/usr/local/bin/" + name,    // Intel Homebrew
			"/opt/local/bin/" + name,    // MacPorts
		}
	case "linux":
		name := binaryName(tool)
		return []string{
			"/usr/bin/" + name,
			"/usr/local/bin/" + name,
		}
	}
	return nil
}

func binaryName(tool Tool) string {
	if tool == Ghostscript {
		return "gs"
	}
	return "qpdf"
}

func installHint(tool Tool, goos string) string {
	switch {
	case goos == "darwin" && tool == Ghostscript:
		return "Install with: brew install ghostscript"
	case goos == "darwin":
		return "Install with: brew install qpdf"
	case goos == "windows" && tool == Ghostscript:
		return "Download from: https://ghostscript.com/releases/gsdnld.html"
	case goos == "windows":
		return "Download from: https://github.com/qpdf/qpdf/releases"
	case tool == Ghostscript:
		return "Install with: sudo apt install ghostscript"
	default:
		return "Install with: sudo apt install qpdf"
	}
}

func (t *Tools) override(tool Tool) string {
	if tool == Ghostscript {
		return t.gsOverride
	}
	return t.qpdfOverride
}

// Find locates the executable for tool. A configured override wins, then
// the command name on PATH, then the per-OS install locations.
func (t *Tools) Find(tool Tool) (string, bool) {
	if p := t.override(tool); p != "" {
		if t.fileExists(p) {
			return p, true
		}
		t.log.WithField("path", p).Warnf("configured %s path does not exist, falling back to discovery", tool)
	}
	for _, name := range commandNames(tool, t.goos) {
		if p, err := t.lookPath(name); err == nil {
			return p, true
		}
	}
	for _, p := range candidatePaths(tool, t.goos) {
		if t.fileExists(p) {
			return p, true
		}
	}
	return "", false
}

// FindGhostscript returns the Ghostscript executable path, if any.
func (t *Tools) FindGhostscript() (string, bool) { return t.Find(Ghostscript) }

// FindQPDF returns the qpdf executable path, if any.
func (t *Tools) FindQPDF() (string, bool) { return t.Find(QPDF) }

// Resolve is Find with the not-found case turned into a ToolNotFoundError.
func (t *Tools) Resolve(tool Tool) (string, error) {
	if p, ok := t.Find(tool); ok {
		return p, nil
	}
	return "", &ToolNotFoundError{Tool: tool, Hint: installHint(tool, t.goos)}
}

// Version runs "<tool> --version" and returns the trimmed first line.
func (t *Tools) Version(ctx context.Context, tool Tool) (string, error) {
	if tool == Ghostscript {
		return t.ghostscriptVersion(ctx)
	}
	return t.qpdfVersion(ctx)
}
