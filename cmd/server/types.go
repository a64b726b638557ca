package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vedicmetrics/ChandasDNA/pkg/models"
)

// MaxShlokaBytes bounds the request body; even a long Sragdhara verse with
// transliteration combining marks stays far below this.
const MaxShlokaBytes = 8192

// IdentifyRequest is the request body for POST /api/chandas/identify
type IdentifyRequest struct {
	Shloka string `json:"shloka"`
	// Hint optionally names the meter the caller expects. It can only
	// boost a candidate, never exclude one.
	Hint string `json:"hint,omitempty"`
}

// Validate checks if the request is valid
func (r *IdentifyRequest) Validate() error {
	if strings.TrimSpace(r.Shloka) == "" {
		return fmt.Errorf("shloka cannot be empty")
	}
	if len(r.Shloka) > MaxShlokaBytes {
		return fmt.Errorf("shloka too large: %d bytes (maximum: %d)", len(r.Shloka), MaxShlokaBytes)
	}
	if !utf8.ValidString(r.Shloka) {
		return fmt.Errorf("shloka is not valid UTF-8")
	}
	return nil
}

// AddMeterRequest is the request body for POST /api/meters
type AddMeterRequest struct {
	models.MeterDefinition
}

// Validate performs the cheap structural checks; the catalogue layer
// validates pattern alphabets and free position ranges.
func (r *AddMeterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if r.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	return nil
}

// AddMeterResponse is returned after registering a meter
type AddMeterResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListMetersResponse is the response for GET /api/meters
type ListMetersResponse struct {
	Meters []models.MeterSummary `json:"meters"`
	Count  int                   `json:"count"`
}

// MetricsResponse is the response for GET /api/health/metrics
type MetricsResponse struct {
	Status       string `json:"status"`
	DatabasePath string `json:"database_path"`
	MeterCount   int    `json:"meter_count"`
	ModelBacked  bool   `json:"model_backed"`
}

// ErrorResponse is the uniform error body
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
