package scanner

import (
	"context"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/digimosa/phonescan/internal/config"
	"github.com/digimosa/phonescan/internal/extractor"
	"github.com/digimosa/phonescan/internal/matcher"
	"github.com/digimosa/phonescan/internal/models"
	"github.com/digimosa/phonescan/internal/reporting"
	"github.com/digimosa/phonescan/internal/storage"
	"github.com/digimosa/phonescan/internal/whitelist"
)

// Scanner handles the orchestration of file scanning.
type Scanner struct {
	cfg         *config.Config
	logger      *zap.Logger
	jobs        chan models.Job
	results     chan models.ScanResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	done        chan struct{}
	factory     *extractor.Factory
	Report      *reporting.Report
	Whitelist   *whitelist.Whitelist
	ScanModelID uint // ID of the current scan in the DB
}

// NewScanner builds a scanner from the configuration. An invalid
// leniency spelling is an error; a missing whitelist file is not.
func NewScanner(cfg *config.Config, logger *zap.Logger) (*Scanner, error) {
	ctx, cancel := context.WithCancel(context.Background())

	leniency, err := matcher.ParseLeniency(cfg.Leniency)
	if err != nil {
		cancel()
		return nil, err
	}
	maxTries := cfg.MaxTries
	if maxTries <= 0 {
		maxTries = math.MaxInt32
	}

	wl, err := whitelist.NewWhitelist(cfg.WhitelistPath)
	if err != nil {
		logger.Warn("could not load whitelist, continuing without",
			zap.String("path", cfg.WhitelistPath), zap.Error(err))
		wl = whitelist.Empty()
	}

	s := &Scanner{
		cfg:     cfg,
		logger:  logger,
		jobs:    make(chan models.Job, cfg.Workers*4), // Buffer relative to workers
		results: make(chan models.ScanResult, cfg.Workers*4),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		factory: extractor.NewFactory(extractor.Options{
			Region:   cfg.Region,
			Leniency: leniency,
			MaxTries: maxTries,
		}),
		Report:    reporting.NewReport(),
		Whitelist: wl,
	}
	s.Report.Summary.RootPath = cfg.RootPath
	s.Report.Summary.Region = cfg.Region
	s.Report.Summary.Leniency = leniency.String()
	return s, nil
}

// Start initializes the worker pool and starts the scan.
func (s *Scanner) Start() {
	scanModel, err := storage.CreateScan(s.cfg.RootPath, s.cfg.Region, s.cfg.Leniency)
	if err == nil {
		s.ScanModelID = scanModel.ID
	} else {
		s.logger.Warn("failed to create scan record", zap.Error(err))
	}

	for i := 0; i < s.cfg.Workers; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	// Result processor and file walker run in the background.
	go s.processResults()
	go s.walkFiles()
}

// Wait blocks until scanning is complete.
func (s *Scanner) Wait() {
	s.wg.Wait()      // Wait for all workers to finish
	close(s.results) // correct place to close results
	<-s.done         // Wait for result processor to finish
}

// Stop cancels an in-flight scan.
func (s *Scanner) Stop() {
	s.cancel()
}
