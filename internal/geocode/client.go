package geocode

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"github.com/joshua-takyi/eventscape/internal/errdef"
	"github.com/joshua-takyi/eventscape/internal/metrics"
	"github.com/joshua-takyi/eventscape/internal/models"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	opForward = "forward"
	opReverse = "reverse"

	breakerName = "geocoding-api"
)

type Config struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	Rate     float64 // requests per second
	Burst    int
	CacheTTL time.Duration
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[*apiResponse]
	cache      Cache
	cacheTTL   time.Duration
	logger     *slog.Logger
}

// NewClient builds a client. cache may be nil, in which case every lookup goes to the provider.
func NewClient(cfg Config, cache Cache, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	c := &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		logger:     logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*apiResponse](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// A lookup that matched nothing is a healthy provider.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrNoResults)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("geocoding circuit breaker state change", "from", from.String(), "to", to.String())
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, from.String(), to.String()).Inc()
		},
	})

	return c
}

// Geocode resolves an address to the coordinates of the first match.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	if address == "" {
		return nil, errdef.NewBadRequest("address is required")
	}

	resp, err := c.lookup(ctx, opForward, url.Values{"address": {address}})
	if err != nil {
		return nil, err
	}

	first := resp.Results[0]
	return &Result{
		Longitude:        first.Geometry.Location.Lng,
		Latitude:         first.Geometry.Location.Lat,
		FormattedAddress: first.FormattedAddress,
	}, nil
}

// ReverseGeocode resolves a point to a structured address using the first match.
func (c *Client) ReverseGeocode(ctx context.Context, lng, lat float64) (*models.Address, error) {
	if err := models.ValidateLngLat(lng, lat); err != nil {
		return nil, err
	}

	resp, err := c.lookup(ctx, opReverse, url.Values{"latlng": {CoordinatesDestination(lng, lat)}})
	if err != nil {
		return nil, err
	}

	addr, err := addressFromComponents(resp.Results[0].AddressComponents)
	if err != nil {
		return nil, errdef.NewGeocoding("%v", err)
	}
	return addr, nil
}

func (c *Client) lookup(ctx context.Context, op string, params url.Values) (*apiResponse, error) {
	key := cacheKey(op, params.Encode())
	if resp, ok := c.fromCache(ctx, key); ok {
		metrics.RecordGeocode(op, "cache_hit")
		return resp, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocoding rate limiter: %w", err)
	}

	resp, err := c.breaker.Execute(func() (*apiResponse, error) {
		return c.fetch(ctx, params)
	})
	switch {
	case errors.Is(err, ErrNoResults):
		metrics.RecordGeocode(op, "no_results")
		return nil, errdef.NewNotFound("%w for %s", ErrNoResults, params.Encode())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordGeocode(op, "rejected")
		return nil, errdef.NewGeocoding("geocoding provider unavailable: %v", err)
	case err != nil:
		metrics.RecordGeocode(op, "error")
		return nil, err
	}

	metrics.RecordGeocode(op, "ok")
	c.toCache(ctx, key, resp)
	return resp, nil
}

func (c *Client) fetch(ctx context.Context, params url.Values) (*apiResponse, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = v
	}
	if c.apiKey != "" {
		q.Set("key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error building geocoding request: %w", err)
	}

	start := time.Now()
	res, err := c.httpClient.Do(req)
	metrics.GeocodeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, errdef.NewGeocoding("geocoding request failed: %v", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, errdef.NewGeocoding("geocoding provider returned %d: %s", res.StatusCode, body)
	}

	var out apiResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, errdef.NewGeocoding("error decoding geocoding response: %v", err)
	}

	switch out.Status {
	case "OK":
		if len(out.Results) == 0 {
			return nil, ErrNoResults
		}
		return &out, nil
	case "ZERO_RESULTS":
		return nil, ErrNoResults
	default:
		return nil, errdef.NewGeocoding("geocoding provider status %s: %s", out.Status, out.ErrorMessage)
	}
}

func (c *Client) fromCache(ctx context.Context, key string) (*apiResponse, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		c.logger.Warn("geocoding cache read failed", "error", err)
		return nil, false
	}
	if !ok {
		return nil, false
	}
	var resp apiResponse
	if err := json.Unmarshal(raw, &resp); err != nil || len(resp.Results) == 0 {
		return nil, false
	}
	return &resp, true
}

func (c *Client) toCache(ctx context.Context, key string, resp *apiResponse) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
		c.logger.Warn("geocoding cache write failed", "error", err)
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}
