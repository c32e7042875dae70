// internal/webhook/handler.go
package webhook

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"minimart-assistant/internal/catalog"
	"minimart-assistant/internal/common/alerts"
	apperrors "minimart-assistant/internal/common/errors"
	"minimart-assistant/internal/common/logger"
	"minimart-assistant/internal/common/metrics"
	"minimart-assistant/internal/common/observability"
	"minimart-assistant/internal/stockquery"
)

const maxBodyBytes = 64 * 1024

// Handler is the HTTP boundary for fulfillment requests. It validates the
// payload, fetches a catalog snapshot, and hands the pure engine the rest.
type Handler struct {
	provider catalog.Provider
	engine   *stockquery.Engine
	notifier alerts.Notifier
	obs      *observability.Observability
	logger   logger.Logger
}

func NewHandler(provider catalog.Provider, engine *stockquery.Engine, notifier alerts.Notifier, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		provider: provider,
		engine:   engine,
		notifier: notifier,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "webhook"}),
	}
}

// Fulfill handles POST /v1/fulfillment. Resolution failures never surface as
// HTTP errors: the platform expects a fulfillment body, so only malformed
// payloads get a 4xx.
func (h *Handler) Fulfill(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID := uuid.NewString()
	log := h.logger.WithFields(map[string]interface{}{"requestId": requestID})

	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{
			Code:    string(apperrors.ErrCodeInvalidRequest),
			Message: "method not allowed",
		})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    string(apperrors.ErrCodeInvalidRequest),
			Message: "failed to read request body",
		})
		return
	}

	if violations := ValidateRequest(body); violations != nil {
		log.Warn("request failed schema validation", map[string]interface{}{
			"violations": violations,
		})
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    string(apperrors.ErrCodeInvalidRequest),
			Message: "request payload failed validation",
			Errors:  violations,
		})
		return
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Code:    string(apperrors.ErrCodeInvalidRequest),
			Message: "request payload failed validation",
			Errors:  []string{err.Error()},
		})
		return
	}

	q := stockquery.Query{
		Intent:       req.QueryResult.Intent.DisplayName,
		Product:      req.QueryResult.Parameters["product"],
		Location:     req.QueryResult.Parameters["location"],
		RawQueryText: req.QueryResult.QueryText,
	}
	metrics.QueriesReceived.WithLabelValues(q.Intent).Inc()

	// The help path needs no catalog data; skip the fetch so a catalog
	// outage cannot break parameterless welcome/fallback turns.
	if strings.TrimSpace(q.Product) == "" && strings.TrimSpace(q.Location) == "" {
		text, res := h.engine.Handle(q, nil)
		h.record(r, q, string(res.Kind), start)
		writeJSON(w, http.StatusOK, Response{FulfillmentText: text})
		return
	}

	fetchStart := time.Now()
	snap, err := h.provider.Snapshot(r.Context())
	metrics.CatalogFetchDuration.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		stdErr := apperrors.NewCatalogUnavailableError(err)
		log.WithError(err).Error("catalog snapshot fetch failed", map[string]interface{}{
			"intent": q.Intent,
		})
		metrics.CatalogFailures.Inc()
		h.notifier.Alert(r.Context(), "minimart-assistant catalog unavailable",
			fmt.Sprintf("requestId=%s: %s", requestID, stdErr.Details))

		h.record(r, q, string(apperrors.ErrCodeCatalogUnavailable), start)
		writeJSON(w, http.StatusOK, Response{FulfillmentText: stockquery.ComposeCatalogUnavailable()})
		return
	}

	text, res := h.engine.Handle(q, snap)

	outcome := string(res.Kind)
	if res.Kind == stockquery.ResultError {
		outcome = string(res.Code)
	}
	metrics.ResolutionOutcomes.WithLabelValues("query", outcome).Inc()

	log.Info("fulfillment composed", map[string]interface{}{
		"intent":    q.Intent,
		"rawQuery":  q.RawQueryText,
		"outcome":   outcome,
		"elapsedMs": time.Since(start).Milliseconds(),
	})

	h.record(r, q, outcome, start)
	writeJSON(w, http.StatusOK, Response{FulfillmentText: text})
}

// Healthz reports liveness.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) record(r *http.Request, q stockquery.Query, outcome string, start time.Time) {
	elapsed := time.Since(start)
	metrics.RequestDuration.WithLabelValues(q.Intent).Observe(elapsed.Seconds())
	if h.obs != nil {
		h.obs.RecordQueryProcessed(r.Context(), outcome)
		h.obs.RecordQueryDuration(r.Context(), elapsed, outcome)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
