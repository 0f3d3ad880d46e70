package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kjstillabower/weather-lookup-service/internal/observability"
)

// ForecastClient is the two-call NWS surface the forecast service depends on.
type ForecastClient interface {
	GetPoint(ctx context.Context, lat, lon string) (PointResponse, error)
	GetForecast(ctx context.Context, forecastURL string) (ForecastResponse, error)
}

var (
	// ErrTransport covers connection failures, timeouts and cancellation.
	ErrTransport = errors.New("transport failure")
	// ErrRemoteStatus is returned for any non-2xx response. Use errors.As with *StatusError for the code.
	ErrRemoteStatus = errors.New("upstream rejected request")
	// ErrDecode is returned when a response body is not valid JSON.
	ErrDecode = errors.New("decode response")
	// ErrInvalidBaseURL is returned by NewNWSClient for an unusable base URL.
	ErrInvalidBaseURL = errors.New("invalid API base URL")
)

const (
	DefaultBaseURL   = "https://api.weather.gov"
	DefaultUserAgent = "weather-lookup-service (ops@example.com)"

	endpointPoints   = "points"
	endpointForecast = "forecast"

	maxBodyBytes = 4 << 20
)

// StatusError carries the HTTP status of a rejected upstream call.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s HTTP %d", ErrRemoteStatus, e.Endpoint, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrRemoteStatus
}

// NWSClient calls api.weather.gov. It holds no per-request state and is safe for
// concurrent use.
type NWSClient struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	client    *http.Client
}

// NewNWSClient returns a client for baseURL. Each call is bounded by timeout.
func NewNWSClient(baseURL, userAgent string, timeout time.Duration) (*NWSClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &NWSClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		timeout:   timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// PointsURL is {base}/points/{lat},{lon} with the coordinate text embedded as given.
func (c *NWSClient) PointsURL(lat, lon string) string {
	return c.baseURL + "/points/" + lat + "," + lon
}

// GetPoint fetches location metadata for a coordinate.
func (c *NWSClient) GetPoint(ctx context.Context, lat, lon string) (PointResponse, error) {
	var resp PointResponse
	if err := c.getJSON(ctx, endpointPoints, c.PointsURL(lat, lon), &resp); err != nil {
		return PointResponse{}, err
	}
	return resp, nil
}

// GetForecast fetches forecast detail from the URL the points response named.
// The URL is used as-is.
func (c *NWSClient) GetForecast(ctx context.Context, forecastURL string) (ForecastResponse, error) {
	var resp ForecastResponse
	if err := c.getJSON(ctx, endpointForecast, forecastURL, &resp); err != nil {
		return ForecastResponse{}, err
	}
	return resp, nil
}

func (c *NWSClient) getJSON(ctx context.Context, endpoint, rawURL string, v interface{}) error {
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(reqCtx, rawURL)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		observability.WeatherAPICallsTotal.WithLabelValues(endpoint, "error").Inc()
		observability.WeatherAPIDuration.WithLabelValues(endpoint, "error").Observe(time.Since(start).Seconds())
		err = fmt.Errorf("%w: %s request: %w", ErrTransport, endpoint, err)
		observability.WeatherAPIErrorsTotal.WithLabelValues(endpoint, string(CategorizeError(err))).Inc()
		return err
	}
	defer resp.Body.Close()

	status := statusLabel(resp.StatusCode)
	observability.WeatherAPICallsTotal.WithLabelValues(endpoint, status).Inc()
	observability.WeatherAPIDuration.WithLabelValues(endpoint, status).Observe(time.Since(start).Seconds())

	if err := handleErrorResponse(endpoint, resp); err != nil {
		observability.WeatherAPIErrorsTotal.WithLabelValues(endpoint, string(CategorizeError(err))).Inc()
		return err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		err = fmt.Errorf("%w: %s read body: %w", ErrTransport, endpoint, err)
		observability.WeatherAPIErrorsTotal.WithLabelValues(endpoint, string(CategorizeError(err))).Inc()
		return err
	}

	if err := json.Unmarshal(body, v); err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrDecode, endpoint, err)
		observability.WeatherAPIErrorsTotal.WithLabelValues(endpoint, string(CategorizeError(err))).Inc()
		return err
	}
	return nil
}

func (c *NWSClient) buildRequest(ctx context.Context, rawURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/geo+json")
	// NWS answers 403 to requests without a User-Agent.
	req.Header.Set("User-Agent", c.userAgent)
	if corrID := extractCorrelationID(ctx); corrID != "" {
		req.Header.Set("X-Correlation-ID", corrID)
	}
	return req, nil
}

func handleErrorResponse(endpoint string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	// Drain a little so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
}

func extractCorrelationID(ctx context.Context) string {
	if corrIDVal := ctx.Value("correlation_id"); corrIDVal != nil {
		if corrID, ok := corrIDVal.(string); ok {
			return corrID
		}
	}
	return ""
}

func statusLabel(statusCode int) string {
	if statusCode >= 200 && statusCode < 300 {
		return "success"
	}
	if statusCode == 429 {
		return "rate_limited"
	}
	if statusCode >= 400 && statusCode < 500 {
		return "client_error"
	}
	if statusCode >= 500 {
		return "server_error"
	}
	return "error"
}
