package scanner

import "go.uber.org/zap"

// worker drains the jobs channel until it closes or the scan is
// cancelled.
func (s *Scanner) worker(id int) {
	defer s.wg.Done()

	processed := 0
	for job := range s.jobs {
		select {
		case <-s.ctx.Done():
			return
		default:
			s.results <- s.scanFile(job.FilePath)
			processed++
		}
	}

	if s.cfg.Verbose {
		s.logger.Debug("worker finished",
			zap.Int("worker", id), zap.Int("files", processed))
	}
}
