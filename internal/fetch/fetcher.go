// File: internal/fetch/fetcher.go
package fetch

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/dverbeek84/limelight-cli/internal/config"
)

// Fetcher retrieves pages by key, consulting the cache first and rate
// limiting every request that actually goes out on the wire. All collector
// traffic funnels through a single Fetcher, so the limiter also serializes
// outbound requests.
type Fetcher struct {
	client  HTTPClient
	cache   *Cache
	limiter *rate.Limiter
	retries int
	backoff time.Duration
	logger  *zap.Logger
}

// New builds a Fetcher from configuration. The cache is owned by the caller
// so a run can share one cache between collectors.
func New(cfg config.FetcherConfig, client HTTPClient, cache *Cache, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	retries := cfg.Retries
	if retries < 0 {
		// The attempt loop runs retries+1 times; a negative value would run
		// it zero times and return neither body nor error.
		retries = 0
	}
	return &Fetcher{
		client:  client,
		cache:   cache,
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		retries: retries,
		backoff: cfg.RetryBackoff,
		logger:  logger.Named("fetch"),
	}
}

// Fetch returns the raw content for url, keyed by key in the cache. A cache
// hit involves no network traffic and no limiter wait. On a miss the request
// is retried a bounded number of times with linear backoff for transient
// failures; the final error is a *Error describing the last failure.
func (f *Fetcher) Fetch(ctx context.Context, key, url string) ([]byte, error) {
	if f.cache != nil {
		if body, ok := f.cache.Get(key); ok {
			f.logger.Debug("Cache hit", zap.String("key", key))
			return body, nil
		}
	}

	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			f.logger.Debug("Retrying fetch",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := f.sleep(ctx, time.Duration(attempt)*f.backoff); err != nil {
				return nil, err
			}
		}

		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		body, status, err := f.client.Get(ctx, url)
		if err != nil {
			lastErr = err
			if fe, ok := err.(*Error); !ok || !retryable(fe.Kind, fe.Status) {
				return nil, err
			}
			continue
		}

		if status < 200 || status > 299 {
			kind := statusKind(status)
			lastErr = &Error{Kind: kind, URL: url, Status: status}
			if !retryable(kind, status) {
				return nil, lastErr
			}
			continue
		}

		if f.cache != nil {
			f.cache.Put(key, body)
		}
		return body, nil
	}
	return nil, lastErr
}

// sleep blocks for d or until the context is cancelled.
func (f *Fetcher) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
