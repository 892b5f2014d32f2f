// Package server exposes the scenario engine and template store over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/loan-scenarios/internal/compare"
	"github.com/iwvelando/loan-scenarios/internal/config"
	"github.com/iwvelando/loan-scenarios/internal/scenario"
	"github.com/iwvelando/loan-scenarios/internal/template"
	"github.com/iwvelando/loan-scenarios/pkg/constants"
	"github.com/iwvelando/loan-scenarios/pkg/output"
	"github.com/iwvelando/loan-scenarios/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type handler struct {
	logger        *zap.Logger
	engine        *scenario.Engine
	store         template.Store
	maxUploadSize int64
	version       string
}

// Options tunes the handler returned by NewHandler.
type Options struct {
	MaxUploadSize int64
	RateLimit     RateLimitConfig
	Version       string
}

// NewHandler constructs the HTTP handler that serves the scenario and template API.
func NewHandler(logger *zap.Logger, store template.Store, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = template.NewMemoryStore()
	}

	maxUploadSize := opts.MaxUploadSize
	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		engine:        scenario.NewEngine(logger),
		store:         store,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
	}

	mux := http.NewServeMux()

	// Scenario computation and comparison
	mux.HandleFunc("/api/scenarios/compute", h.handleCompute)

	// CLI configuration export for a set of scenarios
	mux.HandleFunc("/api/scenarios/export", h.handleExport)

	// Template collection and items
	mux.HandleFunc("/api/templates", h.handleTemplates)
	mux.HandleFunc("/api/templates/", h.handleTemplate)

	// Program catalog for UI metadata
	mux.HandleFunc("/api/programs", h.handlePrograms)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return h.requestLog(h.rateLimit(opts.RateLimit, mux))
}

type scenariosRequest struct {
	Scenarios []scenario.Input `json:"scenarios"`
}

type computeResponse struct {
	Results    []scenario.Result  `json:"results"`
	Comparison compare.Comparison `json:"comparison"`
	CSV        string             `json:"csv"`
	Duration   string             `json:"duration"`
}

type templateRequest struct {
	Title    string         `json:"title"`
	Scenario scenario.Input `json:"scenario"`
}

type exportDocument struct {
	Output    config.OutputConfig `yaml:"output,omitempty"`
	Scenarios []config.Scenario   `yaml:"scenarios"`
}

func (h *handler) handleCompute(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompute"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	inputs, ok := h.decodeScenarios(w, r, op)
	if !ok {
		return
	}

	results, err := h.engine.ComputeBatch(r.Context(), inputs)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute scenarios: %v", err), op)
		return
	}

	comparison, err := compare.Compare(inputs, results)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to compare scenarios: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("scenarios computed",
		zap.String("op", op),
		zap.Int("scenarios", len(results)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, computeResponse{
		Results:    results,
		Comparison: comparison,
		CSV:        output.CsvString(results),
		Duration:   elapsed.String(),
	})
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	inputs, ok := h.decodeScenarios(w, r, op)
	if !ok {
		return
	}

	doc := exportDocument{
		Output:    config.OutputConfig{Format: constants.OutputFormatPretty},
		Scenarios: make([]config.Scenario, 0, len(inputs)),
	}
	for _, in := range inputs {
		doc.Scenarios = append(doc.Scenarios, config.Scenario{Active: true, Input: in})
	}

	yamlBytes, err := yaml.Marshal(doc)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode configuration: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"configYaml": string(yamlBytes),
	})
}

func (h *handler) handleTemplates(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTemplates(w, r)
	case http.MethodPost:
		h.createTemplate(w, r)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	const op = "server.listTemplates"
	templates, err := h.store.List(r.Context())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to list templates: %v", err), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string][]template.Template{
		"templates": templates,
	})
}

func (h *handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	const op = "server.createTemplate"

	var req templateRequest
	if !h.decodeJSON(w, r, &req, op) {
		return
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "template title is required", op)
		return
	}
	req.Scenario.Name = title
	if err := validation.ValidateScenario(req.Scenario); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	created, err := h.store.Create(r.Context(), template.NewDraft(title, req.Scenario))
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to save template: %v", err), op)
		return
	}

	h.logger.Info("template created",
		zap.String("op", op),
		zap.String("id", created.ID),
		zap.String("title", created.Title),
	)
	h.writeJSON(w, http.StatusCreated, created)
}

func (h *handler) handleTemplate(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleTemplate"

	id := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	if id == "" || strings.Contains(id, "/") {
		h.respondErrorWithOp(w, http.StatusNotFound, template.ErrNotFound.Error(), op)
		return
	}

	switch r.Method {
	case http.MethodGet:
		found, err := h.store.Get(r.Context(), id)
		if err != nil {
			h.respondStoreError(w, err, id, op)
			return
		}
		h.writeJSON(w, http.StatusOK, found)
	case http.MethodDelete:
		if err := h.store.Delete(r.Context(), id); err != nil {
			h.respondStoreError(w, err, id, op)
			return
		}
		h.logger.Info("template deleted",
			zap.String("op", op),
			zap.String("id", id),
		)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handlePrograms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"programs": scenario.ProgramCatalog(),
		"pmiTypes": scenario.PMITypes,
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeScenarios reads a scenarios request and validates every scenario in it.
// It writes the error response itself and reports whether decoding succeeded.
func (h *handler) decodeScenarios(w http.ResponseWriter, r *http.Request, op string) ([]scenario.Input, bool) {
	var req scenariosRequest
	if !h.decodeJSON(w, r, &req, op) {
		return nil, false
	}

	if len(req.Scenarios) == 0 {
		h.respondErrorWithOp(w, http.StatusBadRequest, "at least one scenario is required", op)
		return nil, false
	}
	if len(req.Scenarios) > constants.MaxScenariosPerRequest {
		h.respondErrorWithOp(w, http.StatusBadRequest,
			fmt.Sprintf("at most %d scenarios may be computed at once, got %d", constants.MaxScenariosPerRequest, len(req.Scenarios)), op)
		return nil, false
	}
	if err := validation.ValidateScenarios(req.Scenarios); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return nil, false
	}
	return req.Scenarios, true
}

func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, id string, op string) {
	if errors.Is(err, template.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, fmt.Sprintf("template %s not found", id), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
