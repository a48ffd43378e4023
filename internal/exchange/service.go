// Package exchange fetches the AUD to KRW exchange rate by scraping a
// third-party page, and caches the parsed value for a fixed TTL.
package exchange

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker"

	"github.com/familytrip/tripboard/internal/domain"
)

const maxPageBytes = 2 << 20

// Config describes where and how to scrape the rate.
type Config struct {
	URL        string
	ClassToken string
	Source     string
	TTL        time.Duration
	Timeout    time.Duration
}

// Observer receives one outcome per Rate call: "cache", "fetched",
// "unavailable" or "unparsable".
type Observer interface {
	ObserveRateLookup(outcome string)
}

type nopObserver struct{}

func (nopObserver) ObserveRateLookup(string) {}

// Service serves the exchange rate from a TTL cache, scraping the configured
// page on a miss. Concurrent misses are collapsed into a single fetch.
type Service struct {
	cfg      Config
	client   *http.Client
	breaker  *gobreaker.CircuitBreaker
	observer Observer
	log      *slog.Logger
	now      func() time.Time

	fetchMu sync.Mutex // serializes page fetches

	mu     sync.Mutex
	cached *domain.ExchangeRate
}

// Option customizes a Service.
type Option func(*Service)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option { return func(s *Service) { s.client = c } }

// WithObserver reports lookup outcomes, e.g. to metrics.
func WithObserver(o Observer) Option { return func(s *Service) { s.observer = o } }

// WithLogger sets the logger used for breaker state changes.
func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.log = l } }

// WithClock replaces time.Now for cache expiry.
func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// NewService builds a Service. Zero-valued ClassToken, Source, TTL and
// Timeout fall back to "rate", the URL, one hour and ten seconds.
func NewService(cfg Config, opts ...Option) *Service {
	if cfg.ClassToken == "" {
		cfg.ClassToken = "rate"
	}
	if cfg.Source == "" {
		cfg.Source = cfg.URL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	s := &Service{
		cfg:      cfg,
		client:   &http.Client{Timeout: cfg.Timeout},
		observer: nopObserver{},
		log:      slog.Default(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "exchange-rate",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			s.log.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return s
}

// Rate returns the current rate. Cached values younger than the TTL are
// returned with Cached set. Errors wrap domain.ErrRateUnavailable when the
// page cannot be fetched and domain.ErrRateUnparsable when it holds no rate.
func (s *Service) Rate(ctx context.Context) (domain.ExchangeRate, error) {
	if r, ok := s.fresh(); ok {
		s.observer.ObserveRateLookup("cache")
		return r, nil
	}

	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	// Another caller may have refreshed the cache while we waited.
	if r, ok := s.fresh(); ok {
		s.observer.ObserveRateLookup("cache")
		return r, nil
	}

	body, err := s.fetch(ctx)
	if err != nil {
		s.observer.ObserveRateLookup("unavailable")
		return domain.ExchangeRate{}, fmt.Errorf("exchange.Service.Rate: %w", err)
	}
	value, err := ParseRate(body, s.cfg.ClassToken)
	if err != nil {
		s.observer.ObserveRateLookup("unparsable")
		return domain.ExchangeRate{}, fmt.Errorf("exchange.Service.Rate: %w", err)
	}

	rate := domain.ExchangeRate{
		Rate:      value,
		Base:      domain.CurrencyAUD,
		Quote:     domain.CurrencyKRW,
		FetchedAt: s.now().UTC(),
		Source:    s.cfg.Source,
	}
	s.mu.Lock()
	s.cached = &rate
	s.mu.Unlock()

	s.observer.ObserveRateLookup("fetched")
	return rate, nil
}

func (s *Service) fresh() (domain.ExchangeRate, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached == nil || s.now().Sub(s.cached.FetchedAt) >= s.cfg.TTL {
		return domain.ExchangeRate{}, false
	}
	r := *s.cached
	r.Cached = true
	return r, true
}

// fetch downloads the page through the circuit breaker.
func (s *Service) fetch(ctx context.Context) (io.Reader, error) {
	out, err := s.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "tripboard/1.0 (+exchange-rate)")
		req.Header.Set("Accept", "text/html")

		resp, err := s.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: source temporarily disabled: %v", domain.ErrRateUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	return bytes.NewReader(out.([]byte)), nil
}
