// Package httpclient provides a rate-limited HTTP client used for all
// osu! API traffic.
package httpclient

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const defaultRetryCount = 3

// Client wraps an http.Client to pace requests and retry transport errors.
// Status-code handling (404, 429, …) is left to the caller so typed error
// mapping happens in one place.
type Client struct {
	httpClient *http.Client

	minRequestInterval time.Duration
	lastRequest        time.Time
	mu                 sync.Mutex
}

// NewClient creates a new rate-limited HTTP client. A nil httpClient gets a
// sane default transport with a request timeout.
func NewClient(httpClient *http.Client, minRequestInterval time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		}
	}
	return &Client{
		httpClient:         httpClient,
		minRequestInterval: minRequestInterval,
	}
}

// Do executes an HTTP request, waiting for the pacing slot first. Transport
// errors are retried with a linear backoff; any received response is
// returned as-is.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt < defaultRetryCount; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		c.mu.Lock()
		now := time.Now()
		nextAllowed := c.lastRequest.Add(c.minRequestInterval)
		var waitTime time.Duration
		if now.Before(nextAllowed) {
			waitTime = nextAllowed.Sub(now)
			c.lastRequest = nextAllowed
		} else {
			c.lastRequest = now
		}
		c.mu.Unlock()

		if waitTime > 0 {
			timer := time.NewTimer(waitTime)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		// A prior attempt consumed the body; rewind it or the retry
		// sends an empty request.
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			req.Body = body
		}

		resp, err := c.httpClient.Do(req.WithContext(ctx))
		if err == nil {
			return resp, nil
		}
		lastErr = err

		backoffTimer := time.NewTimer(time.Duration(attempt+1) * time.Second)
		select {
		case <-ctx.Done():
			backoffTimer.Stop()
			return nil, ctx.Err()
		case <-backoffTimer.C:
		}
	}
	return nil, lastErr
}

// Defer waits until at least d has passed before the next paced request.
// Used after a rate-limit response so the cooldown also delays unrelated
// callers sharing this client.
func (c *Client) Defer(d time.Duration) {
	c.mu.Lock()
	next := time.Now().Add(d)
	if c.lastRequest.Before(next) {
		c.lastRequest = next.Add(-c.minRequestInterval)
	}
	c.mu.Unlock()
}

// RetryAfter reads a Retry-After header and returns the duration to wait.
func RetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}
