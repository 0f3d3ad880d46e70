package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry *prometheus.Registry

	// HTTP request rate by route template. Watch for: sudden drops or spikes.
	HTTPRequestsTotal *prometheus.CounterVec

	// HTTP request latency per request. Includes both upstream calls on forecast routes.
	HTTPRequestDuration *prometheus.HistogramVec

	// Concurrent requests in flight. Watch for: saturation.
	HTTPRequestsInFlight prometheus.Gauge

	// NWS API call rate by endpoint (points, forecast) and status class.
	WeatherAPICallsTotal *prometheus.CounterVec

	// NWS API latency. Watch for: p95 near weather_api.timeout.
	WeatherAPIDuration *prometheus.HistogramVec

	// NWS API failures by error category (timeout, network, upstream_4xx, ...).
	WeatherAPIErrorsTotal *prometheus.CounterVec

	// Forecast lookups by outcome: success or the absence reason.
	ForecastLookupsTotal *prometheus.CounterVec

	// Periods returned per successful lookup, after truncation.
	ForecastPeriodsReturned prometheus.Histogram
)

func init() {
	registry = prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "httpRequestsTotal",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "statusCode"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "httpRequestDurationSeconds",
			Help:    "HTTP request latency in seconds (per request)",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	HTTPRequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "httpRequestsInFlight",
			Help: "Number of HTTP requests currently being served",
		},
	)
	WeatherAPICallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiCallsTotal",
			Help: "Total number of NWS API calls",
		},
		[]string{"endpoint", "status"},
	)
	WeatherAPIDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "weatherApiDurationSeconds",
			Help:    "NWS API latency in seconds (per call)",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "status"},
	)
	WeatherAPIErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "weatherApiErrorsTotal",
			Help: "Total number of failed NWS API calls by category",
		},
		[]string{"endpoint", "category"},
	)
	ForecastLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecastLookupsTotal",
			Help: "Forecast lookups by outcome (success or absence reason)",
		},
		[]string{"outcome"},
	)
	ForecastPeriodsReturned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "forecastPeriodsReturned",
			Help:    "Number of periods in each successful forecast",
			Buckets: []float64{0, 1, 2, 3, 4, 5},
		},
	)

	registry.MustRegister(
		HTTPRequestsTotal, HTTPRequestDuration, HTTPRequestsInFlight,
		WeatherAPICallsTotal, WeatherAPIDuration, WeatherAPIErrorsTotal,
		ForecastLookupsTotal, ForecastPeriodsReturned,
	)
}

// RecordForecastLookup counts one lookup outcome ("success" or a reason label).
func RecordForecastLookup(outcome string) {
	ForecastLookupsTotal.WithLabelValues(outcome).Inc()
}

// MetricsHandler returns an http.Handler that serves application and runtime metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
