//go:build integration
// +build integration

package service

import (
	"context"
	"os"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kjstillabower/weather-lookup-service/internal/client"
)

// TestForecastService_LiveNWS hits api.weather.gov. Set NWS_LIVE=1 to run.
func TestForecastService_LiveNWS(t *testing.T) {
	if os.Getenv("NWS_LIVE") == "" {
		t.Skip("NWS_LIVE not set, skipping integration test")
	}
	nws, err := client.NewNWSClient(client.DefaultBaseURL, client.DefaultUserAgent, 10*time.Second)
	if err != nil {
		t.Fatalf("NewNWSClient: %v", err)
	}
	svc := NewForecastService(nws, zap.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	t.Run("inside coverage", func(t *testing.T) {
		forecast, err := svc.GetForecast(ctx, "38.8894", "-77.0352")
		if err != nil {
			t.Fatalf("GetForecast() error = %v", err)
		}
		if forecast.Title == "" || len(forecast.Periods) == 0 || len(forecast.Periods) > 5 {
			t.Errorf("forecast = %+v", forecast)
		}
	})

	t.Run("outside coverage", func(t *testing.T) {
		_, err := svc.GetForecast(ctx, "0", "0")
		if err == nil {
			t.Fatal("GetForecast() error = nil for mid-Atlantic point")
		}
		if r := ReasonOf(err); r != ReasonRemoteRejection && r != ReasonNotFound {
			t.Errorf("ReasonOf() = %s, want remote_rejection or not_found", r)
		}
	})
}
