package store

import (
	"fmt"

	"github.com/mapmirror/mapmirror/internal/domain"
)

// UpsertBeatmap inserts or replaces one difficulty row.
func (db *DB) UpsertBeatmap(b *domain.Beatmap) error {
	query := `INSERT INTO beatmaps (
		id, beatmapset_id, mode, mode_int, status, version,
		difficulty_rating, ar, cs, drain, accuracy, bpm,
		count_circles, count_sliders, count_spinners,
		hit_length, total_length, max_combo, is_scoreable,
		playcount, passcount, checksum, user_id, convert, url,
		last_updated, deleted_at
	) VALUES (
		:id, :beatmapset_id, :mode, :mode_int, :status, :version,
		:difficulty_rating, :ar, :cs, :drain, :accuracy, :bpm,
		:count_circles, :count_sliders, :count_spinners,
		:hit_length, :total_length, :max_combo, :is_scoreable,
		:playcount, :passcount, :checksum, :user_id, :convert, :url,
		:last_updated, :deleted_at
	)
	ON CONFLICT(id) DO UPDATE SET
		beatmapset_id = excluded.beatmapset_id,
		mode = excluded.mode,
		mode_int = excluded.mode_int,
		status = excluded.status,
		version = excluded.version,
		difficulty_rating = excluded.difficulty_rating,
		ar = excluded.ar,
		cs = excluded.cs,
		drain = excluded.drain,
		accuracy = excluded.accuracy,
		bpm = excluded.bpm,
		count_circles = excluded.count_circles,
		count_sliders = excluded.count_sliders,
		count_spinners = excluded.count_spinners,
		hit_length = excluded.hit_length,
		total_length = excluded.total_length,
		max_combo = excluded.max_combo,
		is_scoreable = excluded.is_scoreable,
		playcount = excluded.playcount,
		passcount = excluded.passcount,
		checksum = excluded.checksum,
		user_id = excluded.user_id,
		convert = excluded.convert,
		url = excluded.url,
		last_updated = excluded.last_updated,
		deleted_at = excluded.deleted_at`

	if _, err := db.NamedExec(query, b); err != nil {
		return fmt.Errorf("failed to upsert beatmap %d: %w", b.ID, err)
	}
	return nil
}

// ListBeatmapsBySet returns the stored difficulties of one set.
func (db *DB) ListBeatmapsBySet(beatmapsetID int64) ([]domain.Beatmap, error) {
	var maps []domain.Beatmap
	err := db.Select(&maps, `SELECT * FROM beatmaps WHERE beatmapset_id = ? ORDER BY id ASC`, beatmapsetID)
	return maps, err
}
