package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup-service/internal/observability"
)

// NewRouter wires the handler routes and middleware chain. Only the forecast
// routes carry the request deadline.
func NewRouter(h *Handler, logger *zap.Logger, requestTimeout time.Duration) *mux.Router {
	router := mux.NewRouter()
	router.Use(CorrelationIDMiddleware(logger))
	router.Use(MetricsMiddleware)
	router.Use(RecoverMiddleware)
	router.HandleFunc("/health", h.GetHealth).Methods(http.MethodGet)
	router.Handle("/metrics", observability.MetricsHandler()).Methods(http.MethodGet)
	router.HandleFunc("/", h.ShowForm).Methods(http.MethodGet)

	forecastRouter := router.NewRoute().Subrouter()
	forecastRouter.Use(TimeoutMiddleware(requestTimeout))
	forecastRouter.HandleFunc("/getForecast", h.SubmitForecast).Methods(http.MethodPost)
	forecastRouter.HandleFunc("/api/forecast", h.GetForecastJSON).Methods(http.MethodGet)
	return router
}
