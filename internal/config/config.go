package config

import (
	"runtime"
)

type Config struct {
	RootPath string
	Workers  int
	Verbose  bool

	// Region is the preferred region for numbers written without a
	// country code, e.g. "US" or "DE".
	Region string
	// Leniency is the verification tier: possible, valid, strict, exact.
	Leniency string
	// MaxTries caps rejected candidate attempts per scanned text. Zero
	// means unlimited.
	MaxTries int

	// FastMode skips files larger than 1MB.
	FastMode bool

	// DBPath is the sqlite database holding scans and findings.
	DBPath string
	// WhitelistPath is the path to the file of numbers to suppress.
	WhitelistPath string
}

func DefaultConfig() *Config {
	return &Config{
		Workers:       runtime.NumCPU() * 2, // I/O bound work
		Region:        "US",
		Leniency:      "valid",
		DBPath:        "phonescan.db",
		WhitelistPath: "whitelist.txt",
	}
}
