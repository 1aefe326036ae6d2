package api

import (
	"encoding/json"

	"github.com/maksimkurb/cgproxy/src/internal/config"
)

// DataResponse wraps successful responses with a "data" field.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// ConfigResponse returns the configuration document and its fingerprint.
type ConfigResponse struct {
	Config json.RawMessage `json:"config"`
	Hash   string          `json:"hash"`
}

// UpdateResponse is returned by a successful PATCH.
type UpdateResponse struct {
	Config json.RawMessage    `json:"config"`
	Hash   string             `json:"hash"`
	Report *config.LoadReport `json:"report"`
	Saved  bool               `json:"saved"`
}

// ValidateResponse is returned by the dry-run validation endpoint.
type ValidateResponse struct {
	Valid  bool                     `json:"valid"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

// HealthResponse reports liveness.
type HealthResponse struct {
	Status string `json:"status"`
}
