// Package server exposes the analysis engine over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"github.com/codecompass/engine/internal/analyzer"
	"github.com/codecompass/engine/internal/model"
	"github.com/codecompass/engine/internal/review"
)

// Server holds the handlers for the engine's HTTP API.
type Server struct {
	analyzer *analyzer.Analyzer
	reviewer review.Service
	logger   hclog.Logger
}

// New creates a Server. A nil reviewer disables the AI review path.
func New(a *analyzer.Analyzer, reviewer review.Service, logger hclog.Logger) *Server {
	if reviewer == nil {
		reviewer = review.Disabled{}
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Server{analyzer: a, reviewer: reviewer, logger: logger}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/analyze-file", s.handleAnalyzeFile)
	mux.HandleFunc("/parse-file", s.handleParseFile)
	return mux
}

type analyzeResponse struct {
	Status        string `json:"status"`
	Opportunities []any  `json:"opportunities"`
}

type parseResponse struct {
	Status       string `json:"status"`
	RootNodeType string `json:"root_node_type"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "CodeCompass Analysis Engine is running.",
	})
}

func (s *Server) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, req.Language, err)
		return
	}

	opportunities := make([]any, 0, len(result.Opportunities))
	for _, o := range result.Opportunities {
		opportunities = append(opportunities, o)
	}
	for _, o := range s.reviewer.Review(r.Context(), req.Language, req.Content) {
		opportunities = append(opportunities, o)
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Status:        result.Status,
		Opportunities: opportunities,
	})
}

func (s *Server) handleParseFile(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	rootType, err := s.analyzer.RootNodeType(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, req.Language, err)
		return
	}

	writeJSON(w, http.StatusOK, parseResponse{
		Status:       model.StatusParsed,
		RootNodeType: rootType,
	})
}

// decodeRequest validates the method and body. It writes the error response
// itself and reports ok=false when the request is unusable.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (model.AnalysisRequest, bool) {
	var req model.AnalysisRequest
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return req, false
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return req, false
	}
	if req.Language == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "language is required"})
		return req, false
	}
	return req, true
}

func (s *Server) writeAnalysisError(w http.ResponseWriter, language string, err error) {
	if errors.Is(err, analyzer.ErrUnsupportedLanguage) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	s.logger.Error("analysis failed", "language", language, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "analysis failed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
