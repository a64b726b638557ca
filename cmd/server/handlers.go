package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/vedicmetrics/ChandasDNA/internal/storage"
	"github.com/vedicmetrics/ChandasDNA/pkg/chandasdna"
	"github.com/vedicmetrics/ChandasDNA/pkg/logger"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service    chandasdna.Service
	identifier chandasdna.Identifier
	config     *ServerConfig
	log        chandasdna.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	ModelBacked    bool
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service chandasdna.Service, identifier chandasdna.Identifier, config *ServerConfig) *Server {
	return &Server{
		service:    service,
		identifier: identifier,
		config:     config,
		log:        logger.GetLogger(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "ChandasDNA API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":       "GET /health",
			"metrics":      "GET /api/health/metrics",
			"identify":     "POST /api/chandas/identify",
			"meters":       "GET /api/meters",
			"addMeter":     "POST /api/meters",
			"getMeter":     "GET /api/meters/{name}",
			"deleteMeter":  "DELETE /api/meters/{name}",
			"meterContext": "GET /api/meters/{name}/context",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleMetrics handles GET /api/health/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	meters, err := s.service.ListMeters()
	if err != nil {
		s.log.Errorf("Failed to get meter count: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve metrics")
		return
	}

	s.respondJSON(w, http.StatusOK, MetricsResponse{
		Status:       "healthy",
		DatabasePath: s.config.DBPath,
		MeterCount:   len(meters),
		ModelBacked:  s.config.ModelBacked,
	})
}

// handleIdentify handles POST /api/chandas/identify
func (s *Server) handleIdentify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Only POST is allowed")
		return
	}

	var req IdentifyRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxShlokaBytes+1024)).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.identifier.Identify(r.Context(), req.Shloka, req.Hint)
	if err != nil {
		s.log.Errorf("Identification failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Identification failed")
		return
	}

	s.respondJSON(w, http.StatusOK, result)
}

// handleMeters handles GET and POST /api/meters
func (s *Server) handleMeters(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListMeters(w, r)
	case http.MethodPost:
		s.handleAddMeter(w, r)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Only GET and POST are allowed")
	}
}

// handleListMeters handles GET /api/meters
func (s *Server) handleListMeters(w http.ResponseWriter, r *http.Request) {
	meters, err := s.service.ListMeters()
	if err != nil {
		s.log.Errorf("Failed to list meters: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve meters")
		return
	}

	s.respondJSON(w, http.StatusOK, ListMetersResponse{
		Meters: meters,
		Count:  len(meters),
	})
}

// handleAddMeter handles POST /api/meters
func (s *Server) handleAddMeter(w http.ResponseWriter, r *http.Request) {
	var req AddMeterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.service.AddMeter(req.MeterDefinition)
	if err != nil {
		s.log.Warnf("Failed to add meter %q: %v", req.Name, err)
		s.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.log.Infof("Registered meter %q (ID=%s)", req.Name, id)
	s.respondJSON(w, http.StatusCreated, AddMeterResponse{ID: id, Name: req.Name})
}

// handleMeter handles GET/DELETE /api/meters/{name} and
// GET /api/meters/{name}/context
func (s *Server) handleMeter(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/meters/")
	if rest == "" {
		s.respondError(w, http.StatusBadRequest, "Meter name is required")
		return
	}

	if name, ok := strings.CutSuffix(rest, "/context"); ok {
		if r.Method != http.MethodGet {
			s.respondError(w, http.StatusMethodNotAllowed, "Only GET is allowed")
			return
		}
		s.handleMeterContext(w, r, name)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleGetMeter(w, r, rest)
	case http.MethodDelete:
		s.handleDeleteMeter(w, r, rest)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Only GET and DELETE are allowed")
	}
}

// handleGetMeter handles GET /api/meters/{name}
func (s *Server) handleGetMeter(w http.ResponseWriter, r *http.Request, name string) {
	m, err := s.service.GetMeter(name)
	if err != nil {
		if errors.Is(err, storage.ErrMeterNotFound) {
			s.respondError(w, http.StatusNotFound, fmt.Sprintf("Meter %q not found", name))
			return
		}
		s.log.Errorf("Failed to get meter %q: %v", name, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve meter")
		return
	}
	s.respondJSON(w, http.StatusOK, m)
}

// handleDeleteMeter handles DELETE /api/meters/{name}
func (s *Server) handleDeleteMeter(w http.ResponseWriter, r *http.Request, name string) {
	if err := s.service.DeleteMeter(name); err != nil {
		if errors.Is(err, storage.ErrMeterNotFound) {
			s.respondError(w, http.StatusNotFound, fmt.Sprintf("Meter %q not found", name))
			return
		}
		s.log.Errorf("Failed to delete meter %q: %v", name, err)
		s.respondError(w, http.StatusInternalServerError, "Failed to delete meter")
		return
	}

	s.log.Infof("Deleted meter %q", name)
	s.respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Meter %q deleted", name),
	})
}

// handleMeterContext handles GET /api/meters/{name}/context
func (s *Server) handleMeterContext(w http.ResponseWriter, r *http.Request, name string) {
	ctxInfo, err := s.service.MeterContext(name)
	if err != nil {
		if errors.Is(err, storage.ErrMeterNotFound) {
			s.respondError(w, http.StatusNotFound, fmt.Sprintf("Meter %q not found", name))
			return
		}
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, ctxInfo)
}
