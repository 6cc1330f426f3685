package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"verdant/config"
	"verdant/models"
	"verdant/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// WeatherService fetches weather for a location. The upstream payload is
// passed through unshaped.
type WeatherService interface {
	GetWeather(ctx context.Context, city string) (*models.WeatherReport, error)
}

// DefaultWeatherService proxies the configured provider with a Redis cache in
// front of it.
type DefaultWeatherService struct {
	Cache  *redis.Client
	Client *http.Client
}

func NewDefaultWeatherService() *DefaultWeatherService {
	return &DefaultWeatherService{
		Cache:  utils.GetCacheClient(),
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

// GetWeather returns the cached payload for the city when fresh, otherwise
// fetches from the upstream provider and caches the result.
func (s *DefaultWeatherService) GetWeather(ctx context.Context, city string) (*models.WeatherReport, error) {
	logger := utils.GetLogger()
	cacheKey := utils.WeatherCachePrefix + city

	if cached, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
		var report models.WeatherReport
		if err := json.Unmarshal([]byte(cached), &report); err == nil {
			return &report, nil
		}
	} else if err != redis.Nil {
		logger.Warn("Weather cache read failed", zap.String("city", city), zap.Error(err))
	}

	raw, err := s.fetch(ctx, city)
	if err != nil {
		return nil, err
	}

	report := &models.WeatherReport{
		City:      city,
		Raw:       raw,
		FetchedAt: time.Now(),
	}

	if b, err := json.Marshal(report); err == nil {
		if err := s.Cache.Set(ctx, cacheKey, b, utils.WeatherCacheTTL).Err(); err != nil {
			logger.Warn("Weather cache write failed", zap.String("city", city), zap.Error(err))
		}
	}
	return report, nil
}

func (s *DefaultWeatherService) fetch(ctx context.Context, city string) (json.RawMessage, error) {
	endpoint := config.AppConfig.WeatherAPIURL
	q := url.Values{}
	q.Set("q", city)
	if key := config.AppConfig.WeatherAPIKey; key != "" {
		q.Set("appid", key)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read weather response: %w", err)
	}
	return json.RawMessage(body), nil
}
