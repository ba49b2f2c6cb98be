package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/digimosa/phonescan/internal/config"
	"github.com/digimosa/phonescan/internal/matcher"
	"github.com/digimosa/phonescan/internal/scanner"
	"github.com/digimosa/phonescan/internal/server"
	"github.com/digimosa/phonescan/internal/storage"
)

func main() {
	// Parse CLI flags
	rootPath := flag.String("path", ".", "Root directory to scan")
	scan := flag.Bool("scan", false, "Execute scan immediately (CLI mode)")
	text := flag.String("text", "", "Scan a literal string instead of files and print matches")
	region := flag.String("region", "US", "Preferred region for numbers without a country code")
	leniency := flag.String("leniency", "valid", "Verification tier: possible, valid, strict, exact")
	maxTries := flag.Int("max-tries", 0, "Cap on rejected candidates per text (0 = unlimited)")
	workers := flag.Int("workers", 0, "Number of concurrent workers (default: auto)")
	verbose := flag.Bool("verbose", false, "Enable verbose logging")
	serve := flag.Bool("serve", false, "Start a web server to review results and manage the whitelist")
	port := flag.String("port", "8080", "Port for the web server")
	fast := flag.Bool("fast", false, "Skip files larger than 1MB")
	flag.Parse()

	logger := newLogger(*verbose)
	defer logger.Sync()

	// Setup configuration
	cfg := config.DefaultConfig()
	cfg.RootPath = *rootPath
	cfg.Region = *region
	cfg.Leniency = *leniency
	cfg.MaxTries = *maxTries
	cfg.Verbose = *verbose
	cfg.FastMode = *fast
	if *workers > 0 {
		cfg.Workers = *workers
	}

	// One-shot mode: scan a literal string and exit.
	if *text != "" {
		if err := scanText(*text, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Initialize storage
	fmt.Printf("Initializing database at: %s\n", cfg.DBPath)
	if err := storage.Init(cfg.DBPath); err != nil {
		logger.Error("failed to initialize database", zap.Error(err))
		return
	}

	fmt.Printf("Starting phone number scan on: %s\n", cfg.RootPath)
	fmt.Printf("Workers: %d, Region: %s, Leniency: %s\n", cfg.Workers, cfg.Region, cfg.Leniency)

	s, err := scanner.NewScanner(cfg, logger)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return
	}

	// CLI Mode: Scan immediately if requested
	if *scan {
		start := time.Now()

		// The Start method runs the walker and workers in background
		s.Start()
		s.Wait()

		fmt.Printf("\nScan complete in %s\n", time.Since(start))

		// Save Reports
		jsonFile := "scan_report.json"
		if err := s.Report.SaveJSON(jsonFile); err != nil {
			logger.Error("error saving JSON report", zap.Error(err))
		} else {
			fmt.Printf("JSON report saved to: %s\n", jsonFile)
		}

		htmlFile := "scan_report.html"
		if err := s.Report.SaveHTML(htmlFile); err != nil {
			logger.Error("error saving HTML report", zap.Error(err))
		} else {
			fmt.Printf("HTML report saved to: %s\n", htmlFile)
		}
	}

	// Server Mode: Start web UI
	if *serve {
		srv := server.NewServer(logger, s.Report, s.Whitelist)
		addr := fmt.Sprintf("0.0.0.0:%s", *port)
		fmt.Printf("\n[SERVER] Starting review server at http://localhost:%s\n", *port)
		fmt.Println("Press Ctrl+C to stop")
		if err := srv.Start(addr); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	} else if !*scan {
		fmt.Println("No action specified.")
		fmt.Println("Use -scan to run a CLI scan immediately.")
		fmt.Println("Use -text to scan a literal string.")
		fmt.Println("Use -serve to start the web dashboard.")
		flag.PrintDefaults()
	}
}

// scanText runs the matcher over a single string and prints each match.
func scanText(text string, cfg *config.Config) error {
	l, err := matcher.ParseLeniency(cfg.Leniency)
	if err != nil {
		return err
	}
	tries := cfg.MaxTries
	if tries <= 0 {
		tries = math.MaxInt32
	}

	m := matcher.NewWithOptions(text, cfg.Region, l, tries)
	count := 0
	for m.HasNext() {
		match, ok := m.Next()
		if !ok {
			break
		}
		count++
		fmt.Printf("%d\t%d\t%q\n", match.Start, match.End(), match.Raw)
	}
	fmt.Printf("%d match(es)\n", count)
	return nil
}

func newLogger(verbose bool) *zap.Logger {
	if verbose {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}
