// Package exchange fetches currency exchange rates for display. The ledger
// never depends on it.
package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/HeyDYF/Money-Manager/internal/logger"
)

const (
	defaultBaseURL  = "https://v6.exchangerate-api.com/v6"
	defaultBase     = "USD"
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = time.Hour
)

// Fetch results reported to observers.
const (
	ResultSuccess = "success"
	ResultCached  = "cached"
	ResultError   = "error"
)

var (
	// ErrUnknownCurrency is returned when a rate table has no entry for a code.
	ErrUnknownCurrency = errors.New("exchange: unknown currency")
	// ErrNoAPIKey is returned when the client is used without a key.
	ErrNoAPIKey = errors.New("exchange: api key not configured")
)

// Config configures a Client. Zero values take defaults.
type Config struct {
	BaseURL  string
	APIKey   string
	Base     string
	Timeout  time.Duration
	CacheTTL time.Duration
	// RatePerSecond caps outgoing requests. Zero means one request per second.
	RatePerSecond float64
}

// RateTable holds rates relative to Base, which counts as 1.
type RateTable struct {
	Base      string                     `json:"base"`
	UpdatedAt string                     `json:"updated_at"`
	Rates     map[string]decimal.Decimal `json:"rates"`
}

// Rate returns how many units of to one unit of from buys.
func (t RateTable) Rate(from, to string) (decimal.Decimal, error) {
	fromRate, err := t.lookup(from)
	if err != nil {
		return decimal.Zero, err
	}
	toRate, err := t.lookup(to)
	if err != nil {
		return decimal.Zero, err
	}
	return toRate.Div(fromRate), nil
}

func (t RateTable) lookup(code string) (decimal.Decimal, error) {
	code = strings.ToUpper(code)
	if code == t.Base {
		return decimal.NewFromInt(1), nil
	}
	r, ok := t.Rates[code]
	if !ok || !r.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}
	return r, nil
}

type latestResponse struct {
	Result          string                     `json:"result"`
	ErrorType       string                     `json:"error-type"`
	BaseCode        string                     `json:"base_code"`
	LastUpdateUTC   string                     `json:"time_last_update_utc"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// Client talks to an exchangerate-api compatible endpoint. The latest table
// is cached for the configured TTL.
type Client struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
	apiKey     string
	base       string
	ttl        time.Duration
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	log        *zap.SugaredLogger
	now        func() time.Time
	observers  []func(result string)

	mu        sync.RWMutex
	cached    *RateTable
	fetchedAt time.Time
}

// NewClient builds a client from cfg.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Base == "" {
		cfg.Base = defaultBase
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.RatePerSecond <= 0 {
		cfg.RatePerSecond = 1
	}

	st := gobreaker.Settings{
		Name:     "exchange",
		Interval: 60 * time.Second,
		Timeout:  30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		base:       strings.ToUpper(cfg.Base),
		ttl:        cfg.CacheTTL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1),
		breaker:    gobreaker.NewCircuitBreaker(st),
		log:        logger.Named("exchange"),
		now:        time.Now,
	}
}

// OnFetch registers a callback that receives ResultSuccess, ResultCached or
// ResultError for every Latest call.
func (c *Client) OnFetch(fn func(result string)) {
	c.observers = append(c.observers, fn)
}

func (c *Client) report(result string) {
	for _, fn := range c.observers {
		fn(result)
	}
}

// Latest returns the current rate table, from cache when it is fresh.
func (c *Client) Latest(ctx context.Context) (RateTable, error) {
	c.mu.RLock()
	if c.cached != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		table := *c.cached
		c.mu.RUnlock()
		c.report(ResultCached)
		return table, nil
	}
	c.mu.RUnlock()

	table, err := c.fetch(ctx)
	if err != nil {
		c.report(ResultError)
		c.log.Warnw("exchange rate fetch failed", "error", err)
		return RateTable{}, err
	}

	c.mu.Lock()
	c.cached = &table
	c.fetchedAt = c.now()
	c.mu.Unlock()

	c.report(ResultSuccess)
	return table, nil
}

// Convert quotes amount of from in to using the latest table.
func (c *Client) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (Quote, error) {
	table, err := c.Latest(ctx)
	if err != nil {
		return Quote{}, err
	}
	return NewQuote(table, from, to, amount)
}

func (c *Client) fetch(ctx context.Context) (RateTable, error) {
	if c.apiKey == "" {
		return RateTable{}, ErrNoAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return RateTable{}, fmt.Errorf("waiting for exchange rate limiter: %w", err)
	}

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetchLatest(ctx)
	})
	if err != nil {
		return RateTable{}, err
	}
	return res.(RateTable), nil
}

func (c *Client) fetchLatest(ctx context.Context) (RateTable, error) {
	url := fmt.Sprintf("%s/%s/latest/%s", c.baseURL, c.apiKey, c.base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return RateTable{}, fmt.Errorf("building exchange request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RateTable{}, fmt.Errorf("exchange http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return RateTable{}, fmt.Errorf("exchange request: unexpected status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return RateTable{}, fmt.Errorf("decoding exchange response: %w", err)
	}
	if body.Result != "success" {
		return RateTable{}, fmt.Errorf("exchange api error: %s", body.ErrorType)
	}
	if len(body.ConversionRates) == 0 {
		return RateTable{}, errors.New("exchange api returned no rates")
	}

	base := strings.ToUpper(body.BaseCode)
	if base == "" {
		base = c.base
	}
	return RateTable{
		Base:      base,
		UpdatedAt: body.LastUpdateUTC,
		Rates:     body.ConversionRates,
	}, nil
}
