package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"cadence/internal/core"
	"cadence/internal/pipeline"
	"cadence/internal/render"
)

const maxRequestBody = 64 << 10

// HealthResponse is returned by /health
type HealthResponse struct {
	Status string `json:"status"`
}

// CategoryInfo describes one topic pool
type CategoryInfo struct {
	Name      core.Category `json:"name"`
	Label     string        `json:"label"`
	Keywords  []string      `json:"keywords"`
	Topics    int           `json:"topics"`
	AnchorTag string        `json:"anchor_tag"`
}

// PlanRequest is the body of POST /api/plans
type PlanRequest struct {
	Theme  string `json:"theme"`
	Days   int    `json:"days"` // 0 selects the default length
	UseLLM bool   `json:"use_llm"`
	Seed   int64  `json:"seed"`
}

// ErrorResponse is the body of every non-2xx JSON response
type ErrorResponse struct {
	Error string `json:"error"`
}

// handleHealth handles the /health endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// handleListCategories handles GET /api/categories
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	var out []CategoryInfo
	for _, name := range core.Categories() {
		p := s.opts.Catalog.Pool(name)
		out = append(out, CategoryInfo{
			Name:      p.Name,
			Label:     p.Label,
			Keywords:  append([]string{}, p.Keywords...),
			Topics:    len(p.Topics),
			AnchorTag: "#" + p.AnchorTag(),
		})
	}
	s.respondJSON(w, http.StatusOK, out)
}

// handleCreatePlan handles POST /api/plans
func (s *Server) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	var req PlanRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if req.Days == 0 {
		req.Days = pipeline.DefaultDays
	}

	format := render.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		parsed, err := render.ParseFormat(f)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		format = parsed
	}

	b := pipeline.NewBuilder().WithCatalog(s.opts.Catalog).WithSeed(req.Seed)
	if req.UseLLM {
		if s.opts.Enhancer != nil {
			b = b.WithEnhancer(s.opts.Enhancer)
		} else {
			b = b.WithLLM(s.opts.LLM, "")
		}
		b = b.WithWorkers(s.opts.LLM.Workers)
	}
	p, err := b.Build()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := p.Run(r.Context(), req.Theme, req.Days)
	if err != nil {
		var rangeErr *core.InvalidRangeError
		if errors.As(err, &rangeErr) || errors.Is(err, core.ErrEmptyTheme) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.log.Error().Err(err).Msg("Plan generation failed")
		s.respondError(w, http.StatusInternalServerError, "plan generation failed")
		return
	}

	if format == render.FormatCSV {
		filename := render.SuggestedFilename(strings.TrimSpace(req.Theme), req.Days, render.FormatCSV)
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		if err := render.WriteCSV(w, result.ContentPlan); err != nil {
			s.log.Error().Err(err).Msg("Failed to write CSV response")
		}
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, ErrorResponse{Error: message})
}
