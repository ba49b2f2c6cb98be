package server

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/digimosa/phonescan/internal/reporting"
	"github.com/digimosa/phonescan/internal/storage"
	"github.com/digimosa/phonescan/internal/whitelist"
)

// Server exposes the scan report, past scans and whitelist management
// over HTTP for review.
type Server struct {
	logger    *zap.Logger
	report    *reporting.Report
	whitelist *whitelist.Whitelist
}

func NewServer(logger *zap.Logger, report *reporting.Report, wl *whitelist.Whitelist) *Server {
	return &Server{
		logger:    logger,
		report:    report,
		whitelist: wl,
	}
}

func (s *Server) Start(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleReport)
	mux.HandleFunc("/whitelist", s.handleWhitelist)
	mux.HandleFunc("/api/scans", s.handleScans)
	mux.HandleFunc("/api/scans/", s.handleScan)
	mux.HandleFunc("/api/findings/feedback", s.handleFeedback)

	s.logger.Info("starting report server", zap.String("addr", addr))
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if err := s.report.RenderHTML(w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleWhitelist(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Value string `json:"value"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if req.Value == "" {
		http.Error(w, "Value cannot be empty", http.StatusBadRequest)
		return
	}

	if err := s.whitelist.Add(req.Value); err != nil {
		s.logger.Error("failed to add to whitelist", zap.Error(err))
		http.Error(w, "Failed to save to whitelist", http.StatusInternalServerError)
		return
	}

	s.logger.Info("whitelisted number via web UI", zap.String("value", req.Value))
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleScans(w http.ResponseWriter, r *http.Request) {
	scans, err := storage.GetAllScans()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scans)
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Path[len("/api/scans/"):]
	scan, err := storage.GetScanByID(id)
	if err != nil {
		http.Error(w, "Scan not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(scan)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		ID       string `json:"id"`
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}

	if err := storage.UpdateFeedback(req.ID, req.Feedback); err != nil {
		http.Error(w, "Failed to update feedback", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
