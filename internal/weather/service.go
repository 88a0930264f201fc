package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jamesstrohm55/ALFRED/internal/logger"
)

const (
	locationCacheTTL = 5 * time.Minute
	weatherCacheTTL  = 3 * time.Minute
	defaultTimeout   = 10 * time.Second
)

type weatherEntry struct {
	response string
	ts       time.Time
}

type locationEntry struct {
	city    string
	country string
	ts      time.Time
}

// Service fetches weather and IP-derived location data, caching replies
// so repeated questions within the TTL don't hit the network.
type Service struct {
	apiKey  string
	baseURL string
	geoURL  string
	client  *http.Client
	now     func() time.Time

	mu       sync.Mutex
	location *locationEntry
	cache    map[string]weatherEntry
}

// NewService creates a weather service. baseURL and geoURL may be empty
// for the default providers.
func NewService(apiKey, baseURL, geoURL string, timeout time.Duration) *Service {
	if baseURL == "" {
		baseURL = "http://api.openweathermap.org/data/2.5/weather"
	}
	if geoURL == "" {
		geoURL = "http://ip-api.com/json/"
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		apiKey:  apiKey,
		baseURL: baseURL,
		geoURL:  geoURL,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
		cache:   make(map[string]weatherEntry),
	}
}

type geoResponse struct {
	Status  string `json:"status"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// LocationFromIP resolves the user's city and country from their IP
// address, returning a cached answer when it is still fresh.
func (s *Service) LocationFromIP(ctx context.Context) (string, string, bool) {
	s.mu.Lock()
	if s.location != nil && s.now().Sub(s.location.ts) < locationCacheTTL {
		city, country := s.location.city, s.location.country
		s.mu.Unlock()
		logger.Debug("Using cached location data")
		return city, country, true
	}
	s.mu.Unlock()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.geoURL, nil)
	if err != nil {
		logger.Warn("Could not determine location from IP: %v", err)
		return "", "", false
	}
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Could not determine location from IP: %v", err)
		return "", "", false
	}
	defer resp.Body.Close()

	var payload geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Warn("Invalid location response: %v", err)
		return "", "", false
	}
	if payload.Status != "success" {
		return "", "", false
	}

	s.mu.Lock()
	s.location = &locationEntry{city: payload.City, country: payload.Country, ts: s.now()}
	s.mu.Unlock()

	return payload.City, payload.Country, true
}

type weatherResponse struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
}

// Get returns a formatted weather report for location, using the cache
// for repeated requests within the TTL. Failures degrade to an apology
// string; this never returns an error to the caller.
func (s *Service) Get(ctx context.Context, location string) string {
	cacheKey := strings.ToLower(location)

	s.mu.Lock()
	if entry, ok := s.cache[cacheKey]; ok && s.now().Sub(entry.ts) < weatherCacheTTL {
		s.mu.Unlock()
		logger.Debug("Using cached weather data for %s", location)
		return entry.response
	}
	s.mu.Unlock()

	endpoint := fmt.Sprintf("%s?q=%s&appid=%s&units=metric",
		s.baseURL, url.QueryEscape(location), url.QueryEscape(s.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		logger.Error("Weather API request failed: %v", err)
		return fmt.Sprintf("Could not retrieve weather data for %s.", location)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Error("Weather API request failed: %v", err)
		return fmt.Sprintf("Could not retrieve weather data for %s.", location)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Could not retrieve weather data for %s.", location)
	}

	var payload weatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Error("Invalid weather response: %v", err)
		return fmt.Sprintf("Could not retrieve weather data for %s.", location)
	}
	if len(payload.Weather) == 0 {
		return fmt.Sprintf("Could not retrieve weather data for %s.", location)
	}

	result := fmt.Sprintf(
		"Weather in %s: %s. Temperature: %g°C (feels like %g°C). Humidity: %d%%.",
		location, payload.Weather[0].Description,
		payload.Main.Temp, payload.Main.FeelsLike, payload.Main.Humidity,
	)

	s.mu.Lock()
	s.cache[cacheKey] = weatherEntry{response: result, ts: s.now()}
	s.mu.Unlock()

	return result
}

// ClearCache drops all cached weather and location data.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]weatherEntry)
	s.location = nil
	logger.Info("Weather cache cleared")
}
