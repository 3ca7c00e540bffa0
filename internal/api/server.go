// Package api exposes the chat router over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"food-assistant/internal/chat/router"
	"food-assistant/internal/common/database"
	apperrors "food-assistant/internal/common/errors"
	"food-assistant/internal/common/logger"
	"food-assistant/internal/models"
)

const (
	maxBodyBytes      = 64 << 10
	readyCheckTimeout = 2 * time.Second
)

// Chatter answers one chat message. *router.Router implements it.
type Chatter interface {
	Handle(ctx context.Context, req router.Request) models.Reply
}

type Server struct {
	chat   Chatter
	checks []database.Pinger
	errors *apperrors.ErrorHandler
	logger logger.Logger
	schema *gojsonschema.Schema
	tracer trace.Tracer
}

type chatRequest struct {
	Message     string           `json:"message"`
	UserID      string           `json:"userId"`
	Coordinates *models.Location `json:"coordinates,omitempty"`
}

func NewServer(chat Chatter, checks []database.Pinger, log logger.Logger) (*Server, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(chatRequestSchema))
	if err != nil {
		return nil, fmt.Errorf("compile chat request schema: %w", err)
	}
	log = log.WithFields(map[string]interface{}{"component": "api"})
	return &Server{
		chat:   chat,
		checks: checks,
		errors: apperrors.NewErrorHandler(log),
		logger: log,
		schema: schema,
		tracer: otel.Tracer("chat/api"),
	}, nil
}

// Handler returns the routed and instrumented HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /api/chat", s.instrument("chat", s.handleChat))
	mux.Handle("GET /health", s.instrument("health", s.handleHealth))
	mux.Handle("GET /ready", s.instrument("ready", s.handleReady))
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.errors.WriteHTTPError(w, r, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	if err := s.validate(body); err != nil {
		s.errors.WriteHTTPError(w, r, err)
		return
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errors.WriteHTTPError(w, r, apperrors.NewInvalidRequestError(err.Error()))
		return
	}

	reply := s.chat.Handle(r.Context(), router.Request{
		Message:     req.Message,
		UserID:      req.UserID,
		Coordinates: req.Coordinates,
	})
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) validate(body []byte) error {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return apperrors.NewInvalidRequestError(err.Error())
	}
	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return apperrors.NewInvalidRequestError(strings.Join(errs, "; "))
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	for _, check := range s.checks {
		ctx, cancel := context.WithTimeout(r.Context(), readyCheckTimeout)
		err := check.Ping(ctx)
		cancel()
		if err != nil {
			s.errors.WriteHTTPError(w, r, apperrors.NewDependencyUnavailableError(check.Name(), err))
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
