package mockapi

import (
	"context"
	"time"

	"github.com/voyago-poc/server/internal/agent/model"
	logx "github.com/voyago-poc/server/pkg/logger"
)

// WeatherAPI simulates a forecast provider with network latency.
type WeatherAPI struct {
	Latency time.Duration
}

func NewWeatherAPI(latency time.Duration) *WeatherAPI {
	return &WeatherAPI{Latency: latency}
}

type dayWeather struct {
	temperature float64
	condition   string
	humidity    float64
}

var weatherTables = map[string][]dayWeather{
	"Paris": {
		{8.5, "Cloudy", 72}, {7.2, "Rainy", 85}, {9.1, "Partly Cloudy", 68},
		{6.8, "Clear", 55}, {5.5, "Cold", 48}, {6.3, "Overcast", 62}, {7.8, "Cloudy", 70},
	},
	"Tokyo": {
		{15.3, "Clear", 45}, {14.8, "Sunny", 42}, {16.2, "Clear", 48},
		{17.1, "Sunny", 50}, {15.9, "Partly Cloudy", 55}, {14.5, "Rainy", 68}, {13.2, "Windy", 60},
	},
	"New York": {
		{2.1, "Snowy", 80}, {0.5, "Freezing", 75}, {1.3, "Snow", 82},
		{3.2, "Clear", 60}, {4.5, "Partly Cloudy", 65}, {2.8, "Cloudy", 70}, {1.9, "Cold", 75},
	},
	"London": {
		{9.2, "Rainy", 78}, {8.5, "Cloudy", 75}, {10.1, "Partly Cloudy", 70},
		{9.8, "Overcast", 72}, {8.3, "Rainy", 80}, {7.9, "Drizzle", 76}, {9.5, "Cloudy", 74},
	},
	"Sydney": {
		{26.5, "Sunny", 45}, {27.2, "Clear", 42}, {25.8, "Partly Cloudy", 48},
		{24.3, "Cloudy", 55}, {22.9, "Rainy", 68}, {23.5, "Showers", 72}, {25.1, "Clear", 50},
	},
}

// Forecast returns a 7-day forecast starting tomorrow. Unknown cities get a
// generated fallback so the assistant always has something to show.
func (w *WeatherAPI) Forecast(ctx context.Context, city string) ([]model.ForecastPoint, error) {
	if err := sleep(ctx, w.Latency); err != nil {
		return nil, err
	}

	base := time.Now()
	dates := make([]string, 7)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i+1).Format("2006-01-02")
	}

	table, ok := weatherTables[city]
	if !ok {
		logx.Debug().Str("city", city).Msg("weather api: no table, generating fallback forecast")
		points := make([]model.ForecastPoint, 7)
		conditions := []string{"Sunny", "Cloudy", "Rainy"}
		for i := range points {
			points[i] = model.ForecastPoint{
				Date:        dates[i],
				Temperature: float64(15 + i%3),
				Condition:   conditions[i%3],
				Humidity:    float64(60 + (i%2)*10),
			}
		}
		return points, nil
	}

	points := make([]model.ForecastPoint, len(table))
	for i, d := range table {
		points[i] = model.ForecastPoint{
			Date:        dates[i],
			Temperature: d.temperature,
			Condition:   d.condition,
			Humidity:    d.humidity,
		}
	}
	return points, nil
}

// sleep waits for the simulated latency, honoring context cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
