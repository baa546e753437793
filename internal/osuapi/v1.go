package osuapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mapmirror/mapmirror/internal/httpclient"
)

// RecentBeatmap is one row of the v1 get_beatmaps feed. The v1 API returns
// every numeric field as a string; only what the recent scan needs is kept.
type RecentBeatmap struct {
	BeatmapsetID string `json:"beatmapset_id"`
	BeatmapID    string `json:"beatmap_id"`
	Approved     string `json:"approved"`
	ApprovedDate string `json:"approved_date"`
	LastUpdate   string `json:"last_update"`
}

// SetID returns the parsed beatmapset ID, or 0 when the field is not numeric.
func (r *RecentBeatmap) SetID() int64 {
	id, err := strconv.ParseInt(r.BeatmapsetID, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// GetRecentBeatmaps fetches the v1 "changed since" feed for one day. The
// since argument is formatted as the v1 API expects (YYYY-MM-DD HH:MM:SS).
func (c *Client) GetRecentBeatmaps(ctx context.Context, since time.Time) ([]RecentBeatmap, error) {
	q := url.Values{
		"k":     {c.v1Key},
		"since": {since.UTC().Format("2006-01-02 15:04:05")},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.v1URL+"/get_beatmaps?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("get_beatmaps request failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		if wait := httpclient.RetryAfter(resp); wait > 0 {
			c.http.Defer(wait)
		}
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("get_beatmaps returned status %d", resp.StatusCode)
	}

	var maps []RecentBeatmap
	if err := json.NewDecoder(resp.Body).Decode(&maps); err != nil {
		return nil, fmt.Errorf("failed to decode get_beatmaps response: %w", err)
	}
	return maps, nil
}
