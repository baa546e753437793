package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mapmirror/mapmirror/internal/domain"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testBeatmapset(id int64) *domain.Beatmapset {
	updated := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Beatmapset{
		ID:           id,
		Artist:       "Artist",
		Title:        "Title",
		Creator:      "creator",
		UserID:       42,
		Status:       domain.StatusRanked,
		BPM:          180,
		LastUpdated:  &updated,
		BeatmapCount: 1,
		ModeOsuCount: 1,
	}
}

func TestUpsertBeatmapsetInsertAndUpdate(t *testing.T) {
	db := setupTestDB(t)

	set := testBeatmapset(1)
	if err := db.UpsertBeatmapset(set); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	set.Title = "Renamed"
	set.FavouriteCount = 7
	if err := db.UpsertBeatmapset(set); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := db.GetBeatmapset(1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected a row")
	}
	if got.Title != "Renamed" {
		t.Errorf("Expected title 'Renamed', got %q", got.Title)
	}
	if got.FavouriteCount != 7 {
		t.Errorf("Expected favourite_count 7, got %d", got.FavouriteCount)
	}
	if got.LastUpdated == nil || got.LastUpdated.Unix() != set.LastUpdated.Unix() {
		t.Errorf("Expected last_updated %v, got %v", set.LastUpdated, got.LastUpdated)
	}
}

func TestGetBeatmapsetMissing(t *testing.T) {
	db := setupTestDB(t)

	got, err := db.GetBeatmapset(999)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil for a missing row, got %+v", got)
	}

	exists, err := db.BeatmapsetExists(999)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Expected exists=false for a missing row")
	}
}

func TestSetDownloaded(t *testing.T) {
	db := setupTestDB(t)

	if err := db.UpsertBeatmapset(testBeatmapset(1)); err != nil {
		t.Fatal(err)
	}

	size := int64(4096)
	if err := db.SetDownloaded(1, true, &size); err != nil {
		t.Fatalf("SetDownloaded failed: %v", err)
	}

	got, err := db.GetBeatmapset(1)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Downloaded {
		t.Error("Expected downloaded=true")
	}
	if got.FileSize == nil || *got.FileSize != 4096 {
		t.Errorf("Expected file_size 4096, got %v", got.FileSize)
	}

	// A nil size leaves the recorded size alone.
	if err := db.SetDownloaded(1, false, nil); err != nil {
		t.Fatalf("SetDownloaded failed: %v", err)
	}
	got, err = db.GetBeatmapset(1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Downloaded {
		t.Error("Expected downloaded=false")
	}
	if got.FileSize == nil || *got.FileSize != 4096 {
		t.Errorf("Expected file_size preserved at 4096, got %v", got.FileSize)
	}
}

func TestListMissingBeatmapsetIDs(t *testing.T) {
	db := setupTestDB(t)

	for id := int64(1); id <= 3; id++ {
		if err := db.UpsertBeatmapset(testBeatmapset(id)); err != nil {
			t.Fatal(err)
		}
	}
	size := int64(1)
	if err := db.SetDownloaded(2, true, &size); err != nil {
		t.Fatal(err)
	}

	missing, err := db.ListMissingBeatmapsetIDs()
	if err != nil {
		t.Fatalf("ListMissing failed: %v", err)
	}
	if len(missing) != 2 {
		t.Fatalf("Expected 2 missing sets, got %d: %v", len(missing), missing)
	}
	for _, id := range missing {
		if id == 2 {
			t.Error("Set 2 is downloaded; it must not be listed as missing")
		}
	}

	all, err := db.ListBeatmapsetIDs()
	if err != nil {
		t.Fatalf("ListBeatmapsetIDs failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 ids, got %d", len(all))
	}
}

func TestUpsertBeatmap(t *testing.T) {
	db := setupTestDB(t)

	if err := db.UpsertBeatmapset(testBeatmapset(1)); err != nil {
		t.Fatal(err)
	}

	bm := &domain.Beatmap{
		ID:               11,
		BeatmapsetID:     1,
		Mode:             domain.ModeOsu,
		Status:           domain.StatusRanked,
		Version:          "Insane",
		DifficultyRating: 4.5,
	}
	if err := db.UpsertBeatmap(bm); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	bm.Version = "Extra"
	bm.DifficultyRating = 5.2
	if err := db.UpsertBeatmap(bm); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	list, err := db.ListBeatmapsBySet(1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("Expected 1 beatmap, got %d", len(list))
	}
	if list[0].Version != "Extra" {
		t.Errorf("Expected version 'Extra', got %q", list[0].Version)
	}
}

func TestScanCursorMonotonic(t *testing.T) {
	db := setupTestDB(t)

	cursor, err := db.GetScanCursor()
	if err != nil {
		t.Fatalf("GetScanCursor failed: %v", err)
	}
	if cursor != 0 {
		t.Errorf("Expected initial cursor 0, got %d", cursor)
	}

	if err := db.SetScanCursor(600); err != nil {
		t.Fatalf("SetScanCursor failed: %v", err)
	}

	// A stale writer must never move the cursor backwards.
	if err := db.SetScanCursor(500); err != nil {
		t.Fatalf("SetScanCursor failed: %v", err)
	}

	cursor, err = db.GetScanCursor()
	if err != nil {
		t.Fatal(err)
	}
	if cursor != 600 {
		t.Errorf("Expected cursor 600 after stale write, got %d", cursor)
	}
}

func TestRefreshStats(t *testing.T) {
	db := setupTestDB(t)

	ranked := testBeatmapset(1)
	size := int64(100)
	ranked.Downloaded = true
	ranked.FileSize = &size
	if err := db.UpsertBeatmapset(ranked); err != nil {
		t.Fatal(err)
	}

	loved := testBeatmapset(2)
	loved.Status = domain.StatusLoved
	if err := db.UpsertBeatmapset(loved); err != nil {
		t.Fatal(err)
	}

	if err := db.UpsertBeatmap(&domain.Beatmap{ID: 11, BeatmapsetID: 1, Mode: domain.ModeOsu}); err != nil {
		t.Fatal(err)
	}

	if err := db.SetScanCursor(1234); err != nil {
		t.Fatal(err)
	}

	if err := db.RefreshStats(); err != nil {
		t.Fatalf("RefreshStats failed: %v", err)
	}

	stats, err := db.GetStats()
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}
	if stats.BeatmapsetCount != 2 {
		t.Errorf("Expected 2 beatmapsets, got %d", stats.BeatmapsetCount)
	}
	if stats.BeatmapCount != 1 {
		t.Errorf("Expected 1 beatmap, got %d", stats.BeatmapCount)
	}
	if stats.RankedCount != 1 {
		t.Errorf("Expected 1 ranked set, got %d", stats.RankedCount)
	}
	if stats.LovedCount != 1 {
		t.Errorf("Expected 1 loved set, got %d", stats.LovedCount)
	}
	if stats.MissingCount != 1 {
		t.Errorf("Expected 1 missing set, got %d", stats.MissingCount)
	}
	if stats.TotalSize != 100 {
		t.Errorf("Expected total size 100, got %d", stats.TotalSize)
	}
	if stats.ScanCursor != 1234 {
		t.Errorf("RefreshStats must not touch the cursor; got %d", stats.ScanCursor)
	}
}
