package osuapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(srv *httptest.Server) *Client {
	return NewClientWithBase("id", "secret", "v1key",
		srv.URL+"/api/v2", srv.URL+"/oauth/token", srv.URL+"/api")
}

func TestAuthenticate(t *testing.T) {
	var gotGrant, gotClientID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/token" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		gotGrant = r.PostForm.Get("grant_type")
		gotClientID = r.PostForm.Get("client_id")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_in":   86400,
		})
	}))
	defer srv.Close()

	c := testClient(srv)
	if err := c.Authenticate(context.Background()); err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if gotGrant != "client_credentials" {
		t.Errorf("Expected client_credentials grant, got %q", gotGrant)
	}
	if gotClientID != "id" {
		t.Errorf("Expected client_id 'id', got %q", gotClientID)
	}
	if c.bearer() != "tok-123" {
		t.Errorf("Expected stored token, got %q", c.bearer())
	}
}

func TestAuthenticateEmptyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"expires_in": 86400})
	}))
	defer srv.Close()

	if err := testClient(srv).Authenticate(context.Background()); err == nil {
		t.Error("Expected an error for a token-less response")
	}
}

func TestGetBeatmapset(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/beatmapsets/123" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"id":           123,
			"artist":       "Artist",
			"title":        "Title",
			"status":       "ranked",
			"last_updated": "2024-03-01T12:00:00Z",
			"availability": map[string]any{"download_disabled": true},
			"genre":        map[string]any{"id": 2, "name": "Video Game"},
			"beatmaps": []map[string]any{
				{"id": 1231, "beatmapset_id": 123, "mode": "osu", "version": "Hard"},
			},
		})
	}))
	defer srv.Close()

	c := testClient(srv)
	c.token = "tok"

	set, err := c.GetBeatmapset(context.Background(), 123)
	if err != nil {
		t.Fatalf("GetBeatmapset failed: %v", err)
	}
	if gotAuth != "Bearer tok" {
		t.Errorf("Expected bearer header, got %q", gotAuth)
	}
	if set.ID != 123 || set.Artist != "Artist" || set.Status != "ranked" {
		t.Errorf("Unexpected payload: %+v", set)
	}
	if set.LastUpdated == nil || set.LastUpdated.UTC() != time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) {
		t.Errorf("Unexpected last_updated: %v", set.LastUpdated)
	}
	if !set.Availability.DownloadDisabled {
		t.Error("Expected download_disabled=true")
	}
	if set.Genre == nil || set.Genre.ID == nil || *set.Genre.ID != 2 {
		t.Errorf("Unexpected genre: %+v", set.Genre)
	}
	if len(set.Beatmaps) != 1 || set.Beatmaps[0].Version != "Hard" {
		t.Errorf("Unexpected beatmaps: %+v", set.Beatmaps)
	}
}

func TestGetBeatmapsetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := testClient(srv).GetBeatmapset(context.Background(), 999)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestGetBeatmapsetRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := testClient(srv).GetBeatmapset(context.Background(), 1)
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Expected ErrRateLimited, got %v", err)
	}
}

func TestGetBeatmapsetUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := testClient(srv).GetBeatmapset(context.Background(), 1)
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized, got %v", err)
	}
}

func TestFetchBeatmapsetCancelDuringCooldown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	done := make(chan error, 1)
	go func() {
		_, err := testClient(srv).FetchBeatmapset(ctx, 1)
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("FetchBeatmapset did not honor cancellation during cooldown")
	}
}

func TestGetRecentBeatmaps(t *testing.T) {
	var gotKey, gotSince string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/get_beatmaps" {
			t.Errorf("Unexpected path %s", r.URL.Path)
		}
		gotKey = r.URL.Query().Get("k")
		gotSince = r.URL.Query().Get("since")
		json.NewEncoder(w).Encode([]map[string]any{
			{"beatmapset_id": "777", "beatmap_id": "7771", "approved": "1"},
			{"beatmapset_id": "778", "beatmap_id": "7781", "approved": "4"},
		})
	}))
	defer srv.Close()

	since := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	recent, err := testClient(srv).GetRecentBeatmaps(context.Background(), since)
	if err != nil {
		t.Fatalf("GetRecentBeatmaps failed: %v", err)
	}
	if gotKey != "v1key" {
		t.Errorf("Expected API key in query, got %q", gotKey)
	}
	if gotSince != "2024-03-01 00:00:00" {
		t.Errorf("Unexpected since value %q", gotSince)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(recent))
	}
	if recent[0].SetID() != 777 || recent[1].SetID() != 778 {
		t.Errorf("Unexpected set IDs: %d, %d", recent[0].SetID(), recent[1].SetID())
	}
}

func TestRecentBeatmapSetID(t *testing.T) {
	if got := (&RecentBeatmap{BeatmapsetID: "42"}).SetID(); got != 42 {
		t.Errorf("Expected 42, got %d", got)
	}
	if got := (&RecentBeatmap{BeatmapsetID: "junk"}).SetID(); got != 0 {
		t.Errorf("Expected 0 for a non-numeric ID, got %d", got)
	}
}
