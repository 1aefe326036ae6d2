package api

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/maksimkurb/cgproxy/src/internal/config"
	"github.com/maksimkurb/cgproxy/src/internal/errors"
	"github.com/maksimkurb/cgproxy/src/internal/log"
)

// maxBodySize bounds request bodies; a configuration document is a few hundred bytes.
const maxBodySize = 1 << 20

// Handler serves the control API. It owns the Config and serializes every
// access to it.
type Handler struct {
	mu         sync.Mutex
	cfg        *config.Config
	configPath string
}

// NewHandler creates a handler around cfg. Updates are persisted to
// configPath; an empty configPath keeps them in memory only.
func NewHandler(cfg *config.Config, configPath string) *Handler {
	return &Handler{
		cfg:        cfg,
		configPath: configPath,
	}
}

// Config returns a copy of the current configuration.
func (h *Handler) Config() *config.Config {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cfg.Clone()
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(DataResponse{Data: data})
}

// writeJSONData writes a successful JSON response with data.
func writeJSONData(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, data)
}

// readBody reads the request body up to maxBodySize.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
}

// snapshot returns the document and fingerprint of cfg.
func snapshot(cfg *config.Config) (json.RawMessage, string, error) {
	data, err := cfg.ToJSON()
	if err != nil {
		return nil, "", err
	}
	hash, err := cfg.Hash()
	if err != nil {
		return nil, "", err
	}
	return data, hash, nil
}

// GetConfig returns the current configuration.
// GET /api/v1/config
func (h *Handler) GetConfig(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	data, hash, err := snapshot(h.cfg)
	h.mu.Unlock()

	if err != nil {
		WriteInternalError(w, "Failed to serialize configuration: "+err.Error())
		return
	}

	w.Header().Set("ETag", quoteETag(hash))
	writeJSONData(w, ConfigResponse{Config: data, Hash: hash})
}

// UpdateConfig applies a partial JSON document (supports partial updates).
// The document goes through the same validation as the configuration file;
// a rejected document changes nothing.
// PATCH /api/v1/config
func (h *Handler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		WriteInvalidRequest(w, "Failed to read request body: "+err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if ifMatch := r.Header.Get("If-Match"); ifMatch != "" {
		current, err := h.cfg.Hash()
		if err != nil {
			WriteInternalError(w, "Failed to hash configuration: "+err.Error())
			return
		}
		if ifMatch != "*" && ifMatch != quoteETag(current) {
			WritePreconditionFailed(w, "Configuration was modified")
			return
		}
	}

	// Work on a copy so a failed save leaves the served config untouched
	updated := h.cfg.Clone()
	report, err := updated.LoadFromJSON(body)
	if err != nil {
		if errors.IsParamError(err) {
			WriteValidationError(w, "Configuration validation failed", validationDetails(err))
			return
		}
		WriteInternalError(w, err.Error())
		return
	}

	saved := false
	if h.configPath != "" {
		if err := updated.SaveToFile(h.configPath); err != nil {
			WriteStorageError(w, err.Error())
			return
		}
		saved = true
	}
	h.cfg = updated

	for _, skipped := range report.Skipped() {
		log.Warnf("Control API: field %s not applied: %s", skipped.Field, skipped.Reason)
	}
	log.Infof("Configuration updated via control API (fields: %v)", report.Applied())

	data, hash, err := snapshot(h.cfg)
	if err != nil {
		WriteInternalError(w, "Failed to serialize configuration: "+err.Error())
		return
	}

	w.Header().Set("ETag", quoteETag(hash))
	writeJSONData(w, UpdateResponse{Config: data, Hash: hash, Report: report, Saved: saved})
}

// ValidateConfig checks a document without applying it.
// POST /api/v1/config/validate
func (h *Handler) ValidateConfig(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		WriteInvalidRequest(w, "Failed to read request body: "+err.Error())
		return
	}

	response := ValidateResponse{Valid: true}
	if err := config.ValidateJSON(body); err != nil {
		response.Valid = false
		response.Errors = validationErrorList(err)
	}
	writeJSONData(w, response)
}

// GetEnv returns the variables the interception worker would receive.
// GET /api/v1/env
func (h *Handler) GetEnv(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	environment := h.cfg.Clone().ToEnv()
	h.mu.Unlock()

	writeJSONData(w, environment.Map())
}

// CheckHealth reports that the server is alive.
// GET /api/v1/health
func (h *Handler) CheckHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONData(w, HealthResponse{Status: "ok"})
}

func validationErrorList(err error) []config.ValidationError {
	var validationErrors config.ValidationErrors
	if stderrors.As(err, &validationErrors) {
		return validationErrors
	}
	return []config.ValidationError{{FieldPath: "$", Message: err.Error()}}
}

func validationDetails(err error) map[string]interface{} {
	return map[string]interface{}{
		"errors": validationErrorList(err),
	}
}

func quoteETag(hash string) string {
	return fmt.Sprintf("%q", hash)
}
