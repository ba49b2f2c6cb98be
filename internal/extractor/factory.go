package extractor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/digimosa/phonescan/internal/matcher"
)

// Options carries the matcher settings shared by every content scanner.
type Options struct {
	// Region is the preferred region for numbers written without a
	// country code.
	Region string
	// Leniency is the verification tier candidates must pass.
	Leniency matcher.Leniency
	// MaxTries caps the number of rejected candidates per scanned text.
	MaxTries int
}

// Factory handles creation of appropriate content scanners.
type Factory struct {
	opts Options
}

// NewFactory creates a scanner factory with the given matcher options.
func NewFactory(opts Options) *Factory {
	return &Factory{opts: opts}
}

// GetScannerForFile returns the appropriate ContentScanner based on file
// extension.
func (f *Factory) GetScannerForFile(path string) (ContentScanner, string, error) {
	ext := strings.ToLower(filepath.Ext(path))

	if !f.IsSupported(ext) {
		return nil, ext, fmt.Errorf("unsupported file extension: %s", ext)
	}

	var scanner ContentScanner
	switch ext {
	case ".pdf":
		scanner = &PDFScanner{opts: f.opts}
	case ".xlsx":
		scanner = &ExcelScanner{opts: f.opts}
	default:
		// Default to text scanning for .txt, .csv, .log, .md, .eml, etc.
		scanner = &TextScanner{opts: f.opts}
	}

	return scanner, ext, nil
}

// IsSupported checks if the file extension is supported for scanning.
func (f *Factory) IsSupported(ext string) bool {
	switch ext {
	// Block strict binaries / media
	case ".exe", ".dll", ".so", ".dylib", ".bin":
		return false
	case ".jpg", ".jpeg", ".png", ".gif", ".bmp", ".tiff", ".webp":
		return false
	case ".mp3", ".mp4", ".wav", ".avi", ".mov", ".mkv":
		return false
	case ".zip", ".tar", ".gz", ".rar", ".7z", ".iso":
		return false
	// Allow everything else (documents, code, configs, unknown types)
	default:
		return true
	}
}
