package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"shopspotlight/config"
	"shopspotlight/models"
	"shopspotlight/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// defaultVisibilityM is assumed when the forecast omits visibility.
const defaultVisibilityM = 10000

// cacheTTL bounds how often the same coordinate hits the upstream API.
const cacheTTL = 10 * time.Minute

// Service answers current-weather lookups for a coordinate.
type Service interface {
	Current(ctx context.Context, lat, lng float64) (*models.WeatherReport, error)
}

// OpenMeteoService implements Service against the Open-Meteo forecast API,
// with a short-lived Redis cache in front. A nil Cache disables caching.
type OpenMeteoService struct {
	Client *http.Client
	Cache  *redis.Client
}

// NewOpenMeteoService creates a weather service with a bounded HTTP client
// and the shared cache.
func NewOpenMeteoService() *OpenMeteoService {
	return &OpenMeteoService{
		Client: &http.Client{Timeout: 10 * time.Second},
		Cache:  utils.GetCacheClient(),
	}
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		Visibility []float64 `json:"visibility"`
	} `json:"hourly"`
}

// Current fetches the condensed weather report for the coordinate.
func (s *OpenMeteoService) Current(ctx context.Context, lat, lng float64) (*models.WeatherReport, error) {
	logger := utils.GetLogger()

	key := cacheKey(lat, lng)
	if s.Cache != nil {
		if cached, err := s.Cache.Get(ctx, key).Result(); err == nil {
			var report models.WeatherReport
			if json.Unmarshal([]byte(cached), &report) == nil {
				return &report, nil
			}
		}
	}

	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(lng, 'f', 4, 64))
	q.Set("current_weather", "true")
	q.Set("hourly", "visibility")
	q.Set("forecast_days", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.AppConfig.WeatherBaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}
	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather lookup failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather lookup returned status %d", resp.StatusCode)
	}

	var body forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	visibility := float64(defaultVisibilityM)
	if len(body.Hourly.Visibility) > 0 {
		visibility = body.Hourly.Visibility[0]
	}
	report := &models.WeatherReport{
		Temperature: body.CurrentWeather.Temperature,
		WeatherCode: body.CurrentWeather.WeatherCode,
		WindSpeed:   body.CurrentWeather.WindSpeed,
		VisibilityM: visibility,
		Kind:        Classify(body.CurrentWeather.WeatherCode),
	}

	if s.Cache != nil {
		if raw, err := json.Marshal(report); err == nil {
			if err := s.Cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
				logger.Warn("Failed to cache weather report", zap.Error(err))
			}
		}
	}
	return report, nil
}

// Classify maps a WMO weather code to the small display classification.
func Classify(code int) models.WeatherKind {
	switch {
	case code == 0:
		return models.WeatherClear
	case code <= 3:
		return models.WeatherPartlyCloudy
	case code <= 67:
		return models.WeatherRain
	case code <= 77:
		return models.WeatherSnow
	default:
		return models.WeatherWindy
	}
}

func cacheKey(lat, lng float64) string {
	return "weather:" + strconv.FormatFloat(lat, 'f', 2, 64) + "," + strconv.FormatFloat(lng, 'f', 2, 64)
}
