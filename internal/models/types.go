package models

import "time"

// Match is a single phone number located in extracted text.
type Match struct {
	// Raw is the literal substring that matched.
	Raw string `json:"raw"`
	// E164 is the canonical +CC form of the parsed number.
	E164 string `json:"e164"`
	// Region is the region the number belongs to, e.g. "US".
	Region string `json:"region,omitempty"`
	// Offset is the position of the match: a byte offset for plain text,
	// a page number for PDFs, a row index for spreadsheets.
	Offset int64 `json:"offset"`
	// Snippet is the surrounding context for review.
	Snippet string `json:"snippet,omitempty"`
}

// Finding is a match as recorded in a scan result, after whitelist
// filtering.
type Finding struct {
	Raw     string `json:"raw"`
	E164    string `json:"e164"`
	Region  string `json:"region,omitempty"`
	Offset  int64  `json:"offset"`
	Snippet string `json:"snippet,omitempty"`
}

// ScanResult represents the outcome of scanning a single file.
type ScanResult struct {
	FilePath  string    `json:"file_path"`
	FileType  string    `json:"file_type"`
	Size      int64     `json:"size"`
	Findings  []Finding `json:"findings"`
	Error     error     `json:"-"` // Internal error tracking
	ErrorMsg  string    `json:"error,omitempty"`
	ScanTime  time.Duration
	Timestamp time.Time
}

// Job represents a file to be scanned by a worker.
type Job struct {
	FilePath string
}
