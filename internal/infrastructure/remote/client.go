package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sathishthangasamy/healthcare-product-selector/internal/domain"
)

const (
	maxAttempts    = 3
	backoffBase    = 500 * time.Millisecond
	maxBodyBytes   = 10 << 20 // Catalog files are small; anything larger is rejected
	defaultTimeout = 30 * time.Second
)

// Client downloads catalog files over HTTP with rate limiting and retries
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      *zap.Logger
}

// NewClient creates a new remote catalog client.
// requestsPerSecond <= 0 disables rate limiting.
func NewClient(timeout time.Duration, requestsPerSecond float64, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(limit, 1),
		backoff:     exponentialBackoff,
		logger:      logger,
	}
}

// Fetch downloads the file at url. Server errors and 429 responses are retried;
// a 404 is reported as domain.ErrSourceNotFound.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	c.logger.Debug("fetching remote catalog", zap.String("url", url))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleep(ctx, c.backoff(attempt-1)); err != nil {
				return nil, err
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, retry, err := c.fetchOnce(ctx, url)
		if err == nil {
			c.logger.Debug("fetched remote catalog", zap.String("url", url), zap.Int("bytes", len(body)))
			return body, nil
		}
		if !retry {
			return nil, err
		}

		c.logger.Warn("remote catalog request failed",
			zap.String("url", url),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		lastErr = err
	}

	return nil, lastErr
}

// fetchOnce performs a single GET and reports whether a failure is worth retrying
func (c *Client) fetchOnce(ctx context.Context, url string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "HealthcareSelector/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("%w: %v", domain.ErrRemoteFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, url)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return nil, true, fmt.Errorf("%w: status %d", domain.ErrRemoteFailure, resp.StatusCode)
	default:
		return nil, false, fmt.Errorf("%w: status %d", domain.ErrRemoteFailure, resp.StatusCode)
	}

	body, err := readLimitedBody(resp.Body, maxBodyBytes+1)
	if err != nil {
		return nil, true, fmt.Errorf("%w: read body: %v", domain.ErrRemoteFailure, err)
	}
	if len(body) > maxBodyBytes {
		return nil, false, fmt.Errorf("%w: catalog exceeds %d bytes", domain.ErrRemoteFailure, maxBodyBytes)
	}
	return body, false, nil
}

// exponentialBackoff returns the wait before retry number attempt (1-based)
func exponentialBackoff(attempt int) time.Duration {
	return backoffBase * time.Duration(1<<(attempt-1))
}

// readLimitedBody reads at most limit bytes from r
func readLimitedBody(r io.Reader, limit int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, limit))
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
