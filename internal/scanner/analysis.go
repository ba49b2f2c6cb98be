package scanner

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/digimosa/phonescan/internal/models"
	"github.com/digimosa/phonescan/internal/storage"
)

// scanFile extracts text from a single file, runs the matcher over it and
// records the surviving findings.
func (s *Scanner) scanFile(path string) models.ScanResult {
	start := time.Now()
	res := models.ScanResult{
		FilePath:  path,
		Timestamp: time.Now(),
	}

	info, err := os.Stat(path)
	if err != nil {
		res.Error = err
		res.ErrorMsg = err.Error()
		return res
	}
	res.Size = info.Size()

	scanner, ext, err := s.factory.GetScannerForFile(path)
	if err != nil {
		// Unsupported extension; skip without counting it as an error.
		return res
	}
	res.FileType = ext

	if s.cfg.Verbose {
		s.logger.Debug("scanning file", zap.String("path", path), zap.String("type", ext))
	}

	file, err := os.Open(path)
	if err != nil {
		res.Error = err
		res.ErrorMsg = fmt.Sprintf("failed to open file: %v", err)
		return res
	}
	defer file.Close()

	matches, err := scanner.Scan(file)
	if err != nil {
		res.Error = err
		res.ErrorMsg = fmt.Sprintf("scan failed: %v", err)
		return res
	}

	for _, m := range matches {
		if s.Whitelist.Contains(m.E164) {
			if s.cfg.Verbose {
				s.logger.Debug("skipping whitelisted number",
					zap.String("path", path), zap.String("number", m.E164))
			}
			continue
		}

		res.Findings = append(res.Findings, models.Finding{
			Raw:     m.Raw,
			E164:    m.E164,
			Region:  m.Region,
			Offset:  m.Offset,
			Snippet: m.Snippet,
		})

		if s.ScanModelID != 0 {
			if err := storage.SaveFinding(s.ScanModelID, path,
				m.Raw, m.E164, m.Region, m.Snippet, m.Offset); err != nil {
				s.logger.Warn("failed to persist finding", zap.Error(err))
			}
		}
	}

	res.ScanTime = time.Since(start)
	return res
}
