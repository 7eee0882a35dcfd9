package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"unicode/utf8"

	"github.com/chira-platforms/csvimport/internal/core"
	"github.com/chira-platforms/csvimport/internal/logging"
)

// loadRequest is the body of POST /api/load.
type loadRequest struct {
	Path      string `json:"path"`
	Delimiter string `json:"delimiter,omitempty"` // single character; empty enables sniffing
	Encoding  string `json:"encoding,omitempty"`
}

// rowsResponse wraps row-returning endpoints.
type rowsResponse struct {
	Count int        `json:"count"`
	Rows  []core.Row `json:"rows"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, r, "invalid JSON body")
		return
	}
	if req.Path == "" {
		s.respondBadRequest(w, r, "path is required")
		return
	}

	opts := core.Options{
		Encoding: req.Encoding,
		MaxBytes: s.cfg.Import.MaxFileSize,
	}
	if opts.Encoding == "" {
		opts.Encoding = s.cfg.Import.DefaultEncoding
	}
	if req.Delimiter != "" {
		if utf8.RuneCountInString(req.Delimiter) != 1 {
			s.respondBadRequest(w, r, "delimiter must be a single character")
			return
		}
		d, _ := utf8.DecodeRuneInString(req.Delimiter)
		opts.Delimiter = d
	}

	rep, err := s.importer.Load(req.Path, opts)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.WithFields(r.Context(), "load_id", rep.LoadID, "path", rep.SourcePath).Info("file loaded",
		"rows", rep.RowCount,
		"columns", rep.ColumnCount,
		"delimiter", rep.Delimiter,
		"bytes", rep.BytesRead,
	)
	respondJSON(w, http.StatusOK, rep)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"loads": s.importer.History()})
}

func (s *Server) handleHeaders(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{"headers": s.importer.Headers()})
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	rows := s.importer.Rows()
	respondJSON(w, http.StatusOK, rowsResponse{Count: len(rows), Rows: rows})
}

func (s *Server) handleSample(w http.ResponseWriter, r *http.Request) {
	n := parseIntParam(r, "n", s.cfg.Import.SampleRows)

	res, err := s.importer.Sample(n)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, res)
}

func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	column := r.URL.Query().Get("column")
	if column == "" {
		s.respondBadRequest(w, r, "column parameter is required")
		return
	}
	value := r.URL.Query().Get("value")

	rows, err := s.importer.Filter(column, value)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rowsResponse{Count: len(rows), Rows: rows})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.importer.Summarize()
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if _, err := sum.WriteTo(w); err != nil {
			// Headers are already sent; all we can do is log it.
			logging.FromContext(r.Context()).Error("write summary response", "error", err)
		}
		return
	}
	respondJSON(w, http.StatusOK, sum)
}

func (s *Server) handleExportSummary(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondBadRequest(w, r, "invalid JSON body")
		return
	}
	if req.Path == "" {
		s.respondBadRequest(w, r, "path is required")
		return
	}

	if err := s.importer.ExportSummary(req.Path); err != nil {
		s.respondError(w, r, err)
		return
	}

	logging.FromContext(r.Context()).Info("summary exported", "path", req.Path)
	respondJSON(w, http.StatusOK, map[string]string{"path": req.Path})
}

// respondJSON writes v as a JSON response with the given status.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil || i < 1 {
		return defaultVal
	}
	return i
}
