// Package server exposes the pipeline over a thin JSON API. Routing and
// encoding live here; all product logic stays in the pipeline packages.
package server

import (
	"context"
	"encoding/json"
	"net/http"

	apperrors "trendscout/internal/common/errors"
	"trendscout/internal/common/logger"
	"trendscout/internal/models"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recommender is the pipeline capability the handlers are built on.
type Recommender interface {
	GenerateRecommendations(ctx context.Context) (*models.RecommendationsResult, error)
	CalculateMargins(title string, price float64) *models.MarginsResult
}

type Server struct {
	svc    Recommender
	logger logger.Logger
}

func New(svc Recommender, log logger.Logger) *Server {
	return &Server{
		svc:    svc,
		logger: log.WithFields(map[string]interface{}{"component": "server"}),
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/recommendations/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/margins/calculate", s.handleMargins)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	return mux
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	result, err := s.svc.GenerateRecommendations(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type marginsRequest struct {
	Title string  `json:"title"`
	Price float64 `json:"price"`
}

func (s *Server) handleMargins(w http.ResponseWriter, r *http.Request) {
	var req marginsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, apperrors.NewInvalidMarginRequestError("request body is not valid JSON"))
		return
	}
	if req.Price <= 0 {
		s.writeError(w, apperrors.NewInvalidMarginRequestError("price must be greater than zero"))
		return
	}
	if req.Title == "" {
		req.Title = "Untitled product"
	}

	s.writeJSON(w, http.StatusOK, s.svc.CalculateMargins(req.Title, req.Price))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// writeError maps the taxonomy onto status codes. Upstream messages pass
// through verbatim; everything else is already user-safe.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Success: false, Code: "INTERNAL_ERROR", Message: err.Error()}

	if se, ok := err.(*apperrors.StandardError); ok {
		resp.Code = string(se.Code)
		resp.Message = se.Message
		resp.Details = se.Details
		switch se.Code {
		case apperrors.ErrCodeUpstreamAuthFailed:
			status = http.StatusBadGateway
		case apperrors.ErrCodeUpstreamUnavailable, apperrors.ErrCodeUpstreamBadResponse:
			status = http.StatusBadGateway
		case apperrors.ErrCodeInvalidMarginRequest:
			status = http.StatusBadRequest
		}
	}

	s.logger.Warn("request failed", map[string]interface{}{
		"code":   resp.Code,
		"status": status,
	})
	s.writeJSON(w, status, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encode failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
