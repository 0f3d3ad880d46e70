package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup-service/internal/client"
	"github.com/kjstillabower/weather-lookup-service/internal/models"
	"github.com/kjstillabower/weather-lookup-service/internal/observability"
	"github.com/kjstillabower/weather-lookup-service/internal/validation"
)

const (
	defaultTitle   = "Forecast"
	defaultName    = "N/A"
	defaultDetails = "No details available."
)

// ForecastService turns a coordinate into a Forecast using two sequential NWS calls:
// points metadata, then the forecast URL it names. It keeps no per-lookup state and
// is safe to share across concurrent requests.
type ForecastService struct {
	client client.ForecastClient
	logger *zap.Logger
}

// NewForecastService creates a ForecastService. logger is used when the request
// context carries none; nil means no logging.
func NewForecastService(client client.ForecastClient, logger *zap.Logger) *ForecastService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ForecastService{client: client, logger: logger}
}

// loggerFromContext extracts a zap.Logger from request context if present.
// Returns nil if logger is not found or context is invalid.
func loggerFromContext(ctx context.Context) *zap.Logger {
	if v := ctx.Value("logger"); v != nil {
		if l, ok := v.(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return nil
}

// GetForecast looks up the forecast for the given latitude and longitude text.
// On failure the error is a *LookupError; use ReasonOf or errors.Is with the
// package sentinels to branch on it. Coordinates are re-validated here and no
// network call is made when they are invalid.
func (s *ForecastService) GetForecast(ctx context.Context, lat, lon string) (forecast models.Forecast, err error) {
	logger := loggerFromContext(ctx)
	if logger == nil {
		logger = s.logger
	}
	logger = logger.With(zap.String("lat", lat), zap.String("lon", lon))

	defer func() {
		if r := recover(); r != nil {
			forecast = models.Forecast{}
			err = newLookupError(ReasonUnexpected, fmt.Errorf("panic: %v", r))
		}
		s.record(logger, forecast, err)
	}()

	return s.lookup(ctx, logger, lat, lon)
}

func (s *ForecastService) lookup(ctx context.Context, logger *zap.Logger, lat, lon string) (models.Forecast, error) {
	if err := validation.ValidateCoordinates(lat, lon); err != nil {
		return models.Forecast{}, newLookupError(ReasonInvalidInput, err)
	}

	logger.Debug("calling points API")
	point, err := s.client.GetPoint(ctx, lat, lon)
	if err != nil {
		return models.Forecast{}, classifyUpstream(fmt.Errorf("points: %w", err))
	}
	if point.Properties == nil {
		return models.Forecast{}, newLookupError(ReasonUnexpected, errors.New("points response has no properties"))
	}

	forecastURL := point.Properties.Forecast.Or("")
	if forecastURL == "" {
		return models.Forecast{}, newLookupError(ReasonNotFound, errors.New("points response has no forecast URL"))
	}
	if err := checkForecastURL(forecastURL); err != nil {
		return models.Forecast{}, newLookupError(ReasonUnexpected, err)
	}
	city := point.Properties.City()
	state := point.Properties.State()

	logger.Debug("calling forecast API", zap.String("forecast_url", forecastURL))
	detail, err := s.client.GetForecast(ctx, forecastURL)
	if err != nil {
		return models.Forecast{}, classifyUpstream(fmt.Errorf("forecast: %w", err))
	}
	if detail.Properties == nil {
		return models.Forecast{}, newLookupError(ReasonUnexpected, errors.New("forecast response has no properties"))
	}

	periods, ok := detail.Properties.PeriodList()
	if !ok || len(periods) == 0 {
		return models.Forecast{}, newLookupError(ReasonNotFound, errors.New("forecast response has no periods"))
	}

	return buildForecast(detail.Properties.Updated.Or(defaultTitle), city, state, periods)
}

// checkForecastURL rejects a forecast link that is not an absolute http(s) URL.
// Such a link is malformed upstream content, not a connectivity failure.
func checkForecastURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("forecast URL %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("forecast URL %q is not an http(s) URL", raw)
	}
	return nil
}

// buildForecast maps upstream periods, keeping at most models.MaxForecastPeriods
// in upstream order and filling blank fields with fixed defaults.
func buildForecast(title, city, state string, periods []client.Period) (models.Forecast, error) {
	forecast, err := models.NewForecast(title, city, state)
	if err != nil {
		return models.Forecast{}, newLookupError(ReasonUnexpected, err)
	}
	n := len(periods)
	if n > models.MaxForecastPeriods {
		n = models.MaxForecastPeriods
	}
	for _, p := range periods[:n] {
		if err := forecast.AddPeriod(p.Name.Or(defaultName), p.DetailedForecast.Or(defaultDetails)); err != nil {
			return models.Forecast{}, newLookupError(ReasonUnexpected, err)
		}
	}
	return forecast, nil
}

// classifyUpstream maps a client error onto the lookup taxonomy.
func classifyUpstream(err error) *LookupError {
	switch {
	case errors.Is(err, client.ErrTransport),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return newLookupError(ReasonTransport, err)
	case errors.Is(err, client.ErrRemoteStatus):
		return newLookupError(ReasonRemoteRejection, err)
	default:
		return newLookupError(ReasonUnexpected, err)
	}
}

// record logs the outcome at a level matching its reason and counts it.
func (s *ForecastService) record(logger *zap.Logger, forecast models.Forecast, err error) {
	if err == nil {
		observability.RecordForecastLookup("success")
		observability.ForecastPeriodsReturned.Observe(float64(len(forecast.Periods)))
		logger.Debug("forecast served", zap.String("city", forecast.City), zap.Int("periods", len(forecast.Periods)))
		return
	}

	reason := ReasonOf(err)
	observability.RecordForecastLookup(string(reason))
	switch reason {
	case ReasonInvalidInput:
		logger.Warn("invalid coordinates", zap.Error(err))
	case ReasonNotFound:
		logger.Warn("no forecast available", zap.Error(err))
	case ReasonTransport:
		logger.Error("network error", zap.Error(err))
	case ReasonRemoteRejection:
		logger.Error("HTTP error while fetching forecast", zap.Error(err))
	default:
		logger.Error("unexpected error", zap.Error(err), zap.Stack("stack"))
	}
}
