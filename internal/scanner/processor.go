package scanner

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/digimosa/phonescan/internal/storage"
)

func (s *Scanner) processResults() {
	count := 0
	start := time.Now()

	for res := range s.results {
		count++

		// Add to report regardless of findings (tracks total files scanned)
		s.Report.AddResult(res)

		if res.Error != nil {
			s.logger.Debug("scan error", zap.String("path", res.FilePath), zap.Error(res.Error))
			continue
		}
		if len(res.Findings) > 0 {
			fmt.Printf("[FOUND] %s: %d phone numbers\n", res.FilePath, len(res.Findings))
			for _, f := range res.Findings {
				fmt.Printf("  - %s (%q at %d)\n", f.E164, f.Raw, f.Offset)
			}
		}

		if count%1000 == 0 {
			fmt.Printf("Processed %d files... (Rate: %.2f files/sec)\n",
				count, float64(count)/time.Since(start).Seconds())
		}
	}
	s.Report.Finalize() // Finalize timestamps

	if s.ScanModelID != 0 {
		scan, err := storage.GetScanByID(fmt.Sprint(s.ScanModelID))
		if err == nil {
			sum := s.Report.Summary
			if err := storage.CompleteScan(scan, sum.TotalFilesScanned,
				sum.TotalFilesWithNumbers, sum.TotalNumbersFound); err != nil {
				s.logger.Warn("failed to complete scan record", zap.Error(err))
			}
		}
	}
	close(s.done)
}
