package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/fbp-service/internal/domain"
	"github.com/couchcryptid/fbp-service/internal/fbp"
)

const maxBodyBytes = 1 << 20

// Evaluator predicts fire behaviour for a decoded observation.
type Evaluator interface {
	Evaluate(ctx context.Context, obs domain.Observation) ([]domain.FireBehaviorEvent, error)
}

// PredictionStore lists archived predictions.
type PredictionStore interface {
	ListByStation(ctx context.Context, stationID string, limit int) ([]domain.FireBehaviorEvent, error)
}

// Server exposes health, readiness, metrics, and the fire behaviour API.
type Server struct {
	httpServer *http.Server
	eval       Evaluator
	store      PredictionStore
	logger     *slog.Logger
}

// NewServer creates an HTTP server with /healthz, /readyz, /metrics, and
// the /v1 prediction routes. store may be nil when archiving is disabled.
func NewServer(addr string, ready sharedobs.ReadinessChecker, eval Evaluator, store PredictionStore, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		eval:   eval,
		store:  store,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/fire-behavior", s.handleEvaluate)
	mux.HandleFunc("GET /v1/stations/{station}/fire-behavior", s.handleStationHistory)

	return s
}

// AllReady combines readiness checks; the first failure is reported.
func AllReady(checks ...sharedobs.ReadinessChecker) sharedobs.ReadinessChecker {
	return readinessChecks(checks)
}

type readinessChecks []sharedobs.ReadinessChecker

func (rc readinessChecks) CheckReadiness(ctx context.Context) error {
	for _, c := range rc {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

type predictionsResponse struct {
	Predictions []domain.FireBehaviorEvent `json:"predictions"`
}

type errorResponse struct {
	Error  string       `json:"error"`
	Fields []fieldError `json:"fields,omitempty"`
}

type fieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		s.writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
		return
	}

	// Requests without observed_at are evaluated as of now.
	obs, err := domain.ParseObservation(domain.RawEvent{Value: body, Timestamp: time.Now()})
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	events, err := s.eval.Evaluate(r.Context(), obs)
	if err != nil {
		if verrs := fbp.ValidationErrors(err); len(verrs) > 0 {
			s.writeJSON(w, http.StatusUnprocessableEntity, validationResponse(verrs))
			return
		}
		s.logger.Error("evaluate observation", "station_id", obs.StationID, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "evaluation failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, predictionsResponse{Predictions: events})
}

func (s *Server) handleStationHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "prediction archive is disabled"})
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}
		limit = n
	}

	station := r.PathValue("station")
	events, err := s.store.ListByStation(r.Context(), station, limit)
	if err != nil {
		s.logger.Error("list station predictions", "station_id", station, "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "listing predictions failed"})
		return
	}
	s.writeJSON(w, http.StatusOK, predictionsResponse{Predictions: events})
}

// validationResponse reports the offending fields. Values are left out since
// a non-finite one cannot be encoded as JSON.
func validationResponse(verrs []*fbp.ValidationError) errorResponse {
	resp := errorResponse{Error: "invalid observation"}
	for _, ve := range verrs {
		resp.Fields = append(resp.Fields, fieldError{Field: ve.Field, Reason: ve.Reason})
	}
	return resp
}

// writeJSON marshals v before writing the header. Encoding failures are
// reported as 500.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"encoding response failed"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n')) //nolint:errcheck // client may have gone away
}
