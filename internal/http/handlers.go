package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup-service/internal/lifecycle"
	"github.com/kjstillabower/weather-lookup-service/internal/models"
	"github.com/kjstillabower/weather-lookup-service/internal/observability"
	"github.com/kjstillabower/weather-lookup-service/internal/service"
	"github.com/kjstillabower/weather-lookup-service/internal/traffic"
)

// Messages shown on the form view when a lookup yields no forecast.
const (
	MsgInvalidCoordinates = "Invalid latitude or longitude. Please enter valid coordinates (latitude: -90 to 90, longitude: -180 to 180)."
	MsgNoData             = "Weather data not available for the given location."
	MsgUnexpected         = "An unexpected error occurred. Please try again later."
)

// ForecastGetter looks up a forecast for raw coordinate text.
type ForecastGetter interface {
	GetForecast(ctx context.Context, lat, lon string) (models.Forecast, error)
}

// HealthConfig holds lifecycle thresholds for the health handler.
type HealthConfig struct {
	DegradedWindow   time.Duration
	DegradedErrorPct int
}

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	forecasts        ForecastGetter
	healthConfig     *HealthConfig
	logger           *zap.Logger
	healthStatusMu   sync.Mutex
	healthStatusPrev string
}

// NewHandler returns a new Handler.
func NewHandler(forecasts ForecastGetter, healthConfig *HealthConfig, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		forecasts:    forecasts,
		healthConfig: healthConfig,
		logger:       logger,
	}
}

// ShowForm handles GET /.
func (h *Handler) ShowForm(w http.ResponseWriter, r *http.Request) {
	renderView(w, r, http.StatusOK, indexView, formData{})
}

// SubmitForecast handles POST /getForecast. Renders the results view on success,
// otherwise the form with the message matching the failure.
func (h *Handler) SubmitForecast(w http.ResponseWriter, r *http.Request) {
	var req forecastRequest
	if err := r.ParseForm(); err == nil {
		req = newForecastRequest(r.PostForm.Get("latitude"), r.PostForm.Get("longitude"))
	}
	form := formData{Latitude: req.Latitude, Longitude: req.Longitude}

	if err := validateRequest(req); err != nil {
		form.Error = MsgInvalidCoordinates
		renderView(w, r, http.StatusBadRequest, indexView, form)
		return
	}

	forecast, err := h.lookup(r.Context(), req)
	if err != nil {
		status, msg := formFailure(service.ReasonOf(err))
		form.Error = msg
		renderView(w, r, status, indexView, form)
		return
	}
	renderView(w, r, http.StatusOK, resultsView, resultsData{Forecast: forecast})
}

// GetForecastJSON handles GET /api/forecast?lat=&lon=.
func (h *Handler) GetForecastJSON(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := newForecastRequest(q.Get("lat"), q.Get("lon"))
	if err := validateRequest(req); err != nil {
		writeError(w, r, http.StatusBadRequest, "INVALID_COORDINATES", describeInvalid(err))
		return
	}

	forecast, err := h.lookup(r.Context(), req)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

// lookup calls the fetcher and feeds the outcome to the health error-rate window.
// "No forecast" is an answer from the upstream, so it counts as success.
func (h *Handler) lookup(ctx context.Context, req forecastRequest) (models.Forecast, error) {
	forecast, err := h.forecasts.GetForecast(ctx, req.Latitude, req.Longitude)
	switch service.ReasonOf(err) {
	case service.ReasonTransport, service.ReasonRemoteRejection, service.ReasonUnexpected:
		traffic.RecordError()
	case service.ReasonInvalidInput:
	default:
		traffic.RecordSuccess()
	}
	return forecast, err
}

// formFailure maps a lookup reason to the form status and message. Every
// fetch failure other than an unexpected one reads as "no data" to the user.
func formFailure(reason service.Reason) (int, string) {
	switch reason {
	case service.ReasonInvalidInput:
		return http.StatusBadRequest, MsgInvalidCoordinates
	case service.ReasonNotFound:
		return http.StatusNotFound, MsgNoData
	case service.ReasonTransport, service.ReasonRemoteRejection:
		return http.StatusBadGateway, MsgNoData
	default:
		return http.StatusInternalServerError, MsgUnexpected
	}
}

// healthResult holds the computed health status and metadata for logging.
type healthResult struct {
	status     string
	statusCode int
	reason     string
}

// GetHealth handles GET /health.
func (h *Handler) GetHealth(w http.ResponseWriter, r *http.Request) {
	result := h.computeHealthStatus()

	h.healthStatusMu.Lock()
	prev := h.healthStatusPrev
	if prev != "" && prev != result.status {
		h.logger.Info("health status transition",
			zap.String("previous_status", prev),
			zap.String("current_status", result.status),
			zap.String("reason", result.reason))
	}
	h.healthStatusPrev = result.status
	h.healthStatusMu.Unlock()

	weatherAPI := "healthy"
	if result.status == "degraded" {
		weatherAPI = "unhealthy"
	}
	writeJSON(w, result.statusCode, map[string]interface{}{
		"status":        result.status,
		"service":       observability.ServiceName,
		"version":       "dev",
		"checks":        map[string]string{"weatherApi": weatherAPI},
		"uptimeSeconds": int64(lifecycle.Uptime().Seconds()),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// computeHealthStatus evaluates shutting-down first, then the lookup error rate.
func (h *Handler) computeHealthStatus() healthResult {
	if lifecycle.IsShuttingDown() {
		return healthResult{"shutting-down", http.StatusServiceUnavailable, "signal"}
	}
	if h.healthConfig != nil && h.healthConfig.DegradedWindow > 0 && h.healthConfig.DegradedErrorPct > 0 {
		errors, total := traffic.ErrorRate(h.healthConfig.DegradedWindow)
		if total > 0 {
			pct := float64(errors) * 100 / float64(total)
			if pct >= float64(h.healthConfig.DegradedErrorPct) {
				return healthResult{"degraded", http.StatusServiceUnavailable, "error_rate_breach"}
			}
		}
	}
	return healthResult{"healthy", http.StatusOK, ""}
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response in the standard error format with code, message,
// and requestId (correlation ID) if available in request context.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]string{
			"code":      code,
			"message":   message,
			"requestId": correlationID(r),
		},
	})
}

// writeLookupError maps a lookup reason to the JSON error envelope.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch service.ReasonOf(err) {
	case service.ReasonInvalidInput:
		writeError(w, r, http.StatusBadRequest, "INVALID_COORDINATES", MsgInvalidCoordinates)
	case service.ReasonNotFound:
		writeError(w, r, http.StatusNotFound, "FORECAST_NOT_FOUND", MsgNoData)
	case service.ReasonTransport, service.ReasonRemoteRejection:
		writeError(w, r, http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE", "Unable to fetch weather data")
	default:
		writeError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", MsgUnexpected)
	}
	requestLogger(r).Debug("forecast lookup failed", zap.Error(err))
}

func correlationID(r *http.Request) string {
	if v, ok := r.Context().Value("correlation_id").(string); ok {
		return v
	}
	return ""
}

func requestLogger(r *http.Request) *zap.Logger {
	if logger, ok := r.Context().Value("logger").(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

func wantsJSON(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/api/")
}
