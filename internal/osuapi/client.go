// Package osuapi is the typed client for the osu! v1 and v2 APIs.
package osuapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/mapmirror/mapmirror/internal/httpclient"
)

const (
	defaultBaseURL  = "https://osu.ppy.sh/api/v2"
	defaultTokenURL = "https://osu.ppy.sh/oauth/token"
	defaultV1URL    = "https://osu.ppy.sh/api"

	// RateLimitCooldown is how long to back off after a 429 before
	// retrying the same request.
	RateLimitCooldown = 60 * time.Second

	// minRequestInterval keeps us around half of the published
	// 1200 req/min API budget.
	minRequestInterval = 100 * time.Millisecond
)

// Client talks to the osu! APIs. All methods are safe for concurrent use;
// the token is refreshed by the auth task and read under a lock.
type Client struct {
	http *httpclient.Client

	clientID     string
	clientSecret string
	v1Key        string

	baseURL  string
	tokenURL string
	v1URL    string

	mu    sync.RWMutex
	token string
}

func NewClient(clientID, clientSecret, v1Key string) *Client {
	return &Client{
		http:         httpclient.NewClient(nil, minRequestInterval),
		clientID:     clientID,
		clientSecret: clientSecret,
		v1Key:        v1Key,
		baseURL:      defaultBaseURL,
		tokenURL:     defaultTokenURL,
		v1URL:        defaultV1URL,
	}
}

// NewClientWithBase is used by tests to point the client at a local server.
func NewClientWithBase(clientID, clientSecret, v1Key, base, tokenURL, v1URL string) *Client {
	c := NewClient(clientID, clientSecret, v1Key)
	c.baseURL = base
	c.tokenURL = tokenURL
	c.v1URL = v1URL
	return c
}

// Authenticate obtains a fresh client-credentials token. The auth scheduler
// task calls this on a fixed cadence, well inside the token lifetime.
func (c *Client) Authenticate(ctx context.Context) error {
	form := url.Values{
		"client_id":     {c.clientID},
		"client_secret": {c.clientSecret},
		"grant_type":    {"client_credentials"},
		"scope":         {"public"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("token request returned status %d", resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("token response contained no access token")
	}

	c.mu.Lock()
	c.token = payload.AccessToken
	c.mu.Unlock()
	return nil
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// GetBeatmapset fetches one set by ID. Returns ErrNotFound for unknown IDs
// and ErrRateLimited on 429; both are expected outcomes for callers.
func (c *Client) GetBeatmapset(ctx context.Context, id int64) (*Beatmapset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/beatmapsets/%d", c.baseURL, id), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.bearer())
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("beatmapset %d request failed: %w", id, err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		if wait := httpclient.RetryAfter(resp); wait > 0 {
			c.http.Defer(wait)
		}
		return nil, ErrRateLimited
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("beatmapset %d returned status %d: %s", id, resp.StatusCode, body)
	}

	var set Beatmapset
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return nil, fmt.Errorf("failed to decode beatmapset %d: %w", id, err)
	}
	return &set, nil
}

// FetchBeatmapset is the rate-limit-aware fetch wrapper: on ErrRateLimited
// it sleeps the fixed cooldown and retries the same ID, so an ID is never
// skipped because of throttling. All other outcomes pass through.
func (c *Client) FetchBeatmapset(ctx context.Context, id int64) (*Beatmapset, error) {
	for {
		set, err := c.GetBeatmapset(ctx, id)
		if err == nil || !errors.Is(err, ErrRateLimited) {
			return set, err
		}

		timer := time.NewTimer(RateLimitCooldown)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
