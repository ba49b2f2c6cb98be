package reporting

import (
	"encoding/json"
	"html/template"
	"io"
	"os"
	"sync"
	"time"

	"github.com/digimosa/phonescan/internal/models"
	"github.com/digimosa/phonescan/internal/templates"
)

type Summary struct {
	TotalFilesScanned     int64         `json:"total_files_scanned"`
	TotalFilesWithNumbers int64         `json:"total_files_with_numbers"`
	TotalNumbersFound     int64         `json:"total_numbers_found"`
	ScanDuration          time.Duration `json:"scan_duration"`
	StartTime             time.Time     `json:"start_time"`
	EndTime               time.Time     `json:"end_time"`
	RootPath              string        `json:"root_path"`
	Region                string        `json:"region"`
	Leniency              string        `json:"leniency"`
}

type Report struct {
	Summary  Summary             `json:"summary"`
	Findings []models.ScanResult `json:"findings"`
	mu       sync.Mutex
}

func NewReport() *Report {
	return &Report{
		Summary: Summary{
			StartTime: time.Now(),
		},
		Findings: make([]models.ScanResult, 0),
	}
}

func (r *Report) AddResult(res models.ScanResult) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Summary.TotalFilesScanned++
	if len(res.Findings) > 0 {
		r.Summary.TotalFilesWithNumbers++
		r.Summary.TotalNumbersFound += int64(len(res.Findings))
		r.Findings = append(r.Findings, res)
	}
}

func (r *Report) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Summary.EndTime = time.Now()
	r.Summary.ScanDuration = r.Summary.EndTime.Sub(r.Summary.StartTime)
}

func (r *Report) SaveJSON(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

func (r *Report) SaveHTML(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return r.RenderHTML(file)
}

func (r *Report) RenderHTML(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(template.FuncMap{
		"marshal": func(v interface{}) template.JS {
			b, _ := json.Marshal(v)
			return template.JS(b)
		},
	}).Parse(templates.ReportHTML)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
