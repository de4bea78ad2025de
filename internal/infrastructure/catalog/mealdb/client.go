// Package mealdb provides the recipe catalog adapter for TheMealDB-compatible
// JSON APIs
package mealdb

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/alchemorsel/matchmaker/internal/domain/recipe"
	"github.com/alchemorsel/matchmaker/internal/ports/outbound"
)

// DefaultBaseURL is the public TheMealDB v1 endpoint with the test key
const DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"

const maxBodyBytes = 4 << 20

// Config holds catalog client settings
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	// Consecutive failures that open the breaker
	BreakerFailures uint32
	// How long the breaker stays open before probing again
	BreakerTimeout time.Duration
}

// CallObserver receives the outcome of every catalog call
type CallObserver interface {
	ObserveCatalogCall(endpoint, outcome string, duration time.Duration)
}

// StatusError is returned for non-2xx catalog responses
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s returned HTTP %d", e.Endpoint, e.StatusCode)
}

// Client talks to the catalog over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	observer   CallObserver
	logger     *zap.Logger
}

var _ outbound.CatalogSource = (*Client)(nil)

// NewClient creates a catalog client. observer may be nil.
func NewClient(cfg Config, observer CallObserver, logger *zap.Logger) *Client {
	logger = logger.Named("mealdb")

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "mealdb",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			// Caller cancellations say nothing about catalog health.
			return err == nil || stderrors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Catalog circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		limiter:  rate.NewLimiter(limit, cfg.Burst),
		breaker:  breaker,
		observer: observer,
		logger:   logger,
	}
}

// mealsEnvelope is the catalog response shape; "meals" is null when
// nothing matched.
type mealsEnvelope[T any] struct {
	Meals []T `json:"meals"`
}

// FilterByCategory lists summaries of recipes in category
func (c *Client) FilterByCategory(ctx context.Context, category string) ([]recipe.CatalogSummary, error) {
	return fetch[recipe.CatalogSummary](ctx, c, "filter.php", url.Values{"c": {category}})
}

// FilterByArea lists summaries of recipes from area
func (c *Client) FilterByArea(ctx context.Context, area string) ([]recipe.CatalogSummary, error) {
	return fetch[recipe.CatalogSummary](ctx, c, "filter.php", url.Values{"a": {area}})
}

// Search returns full records whose name contains term
func (c *Client) Search(ctx context.Context, term string) ([]recipe.RawCatalogRecord, error) {
	return fetch[recipe.RawCatalogRecord](ctx, c, "search.php", url.Values{"s": {term}})
}

// Lookup returns the record with id, or nil when there is none
func (c *Client) Lookup(ctx context.Context, id string) (*recipe.RawCatalogRecord, error) {
	records, err := fetch[recipe.RawCatalogRecord](ctx, c, "lookup.php", url.Values{"i": {id}})
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

// Random returns one random record
func (c *Client) Random(ctx context.Context) (*recipe.RawCatalogRecord, error) {
	records, err := fetch[recipe.RawCatalogRecord](ctx, c, "random.php", nil)
	if err != nil || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}

func fetch[T any](ctx context.Context, c *Client, endpoint string, params url.Values) ([]T, error) {
	body, err := c.get(ctx, endpoint, params)
	if err != nil {
		return nil, err
	}

	var envelope mealsEnvelope[T]
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return envelope.Meals, nil
}

// get performs one rate-limited, breaker-guarded GET and returns the body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	start := time.Now()

	if err := c.limiter.Wait(ctx); err != nil {
		c.observe(endpoint, "rate_limited", start)
		return nil, fmt.Errorf("wait for catalog rate limit: %w", err)
	}

	reqURL := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	body, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	})
	if err != nil {
		outcome := "error"
		if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
			outcome = "rejected"
		}
		c.observe(endpoint, outcome, start)
		c.logger.Debug("Catalog call failed", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, err
	}

	c.observe(endpoint, "ok", start)
	return body, nil
}

func (c *Client) observe(endpoint, outcome string, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveCatalogCall(endpoint, outcome, time.Since(start))
	}
}
