package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/digimosa/phonescan/internal/models"
)

func (s *Scanner) walkFiles() {
	defer close(s.jobs)

	err := filepath.WalkDir(s.cfg.RootPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			s.logger.Warn("error accessing path", zap.String("path", path), zap.Error(err))
			return nil // Continue walking
		}

		if !d.IsDir() {
			ext := strings.ToLower(filepath.Ext(path))
			if !s.factory.IsSupported(ext) {
				return nil
			}

			// Fast Mode Check
			if s.cfg.FastMode {
				info, err := d.Info()
				if err == nil && info.Size() > 1024*1024 { // Skip > 1MB
					return nil
				}
			}

			select {
			case <-s.ctx.Done():
				return filepath.SkipAll
			case s.jobs <- models.Job{FilePath: path}:
			}
		}
		return nil
	})

	if err != nil {
		s.logger.Error("error walking directory", zap.Error(err))
	}
}
