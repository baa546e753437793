package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/mapmirror/mapmirror/internal/domain"
)

// UpsertBeatmapset inserts or replaces one flattened beatmapset row. The
// statement is idempotent by primary key so concurrent loops touching the
// same ID converge instead of losing updates.
func (db *DB) UpsertBeatmapset(b *domain.Beatmapset) error {
	query := `INSERT INTO beatmapsets (
		id, artist, artist_unicode, title, title_unicode, creator, user_id,
		source, tags, status, bpm, favourite_count, playcount, rating,
		nsfw, video, storyboard, spotlight, is_scoreable, genre_id, language_id,
		preview_url, submitted_date, ranked_date, last_updated, deleted_at,
		card, card_2x, cover, cover_2x, list, list_2x, slimcover, slimcover_2x,
		download_disabled, more_information,
		beatmap_count, mode_osu_count, mode_taiko_count, mode_fruits_count, mode_mania_count,
		downloaded, file_size
	) VALUES (
		:id, :artist, :artist_unicode, :title, :title_unicode, :creator, :user_id,
		:source, :tags, :status, :bpm, :favourite_count, :playcount, :rating,
		:nsfw, :video, :storyboard, :spotlight, :is_scoreable, :genre_id, :language_id,
		:preview_url, :submitted_date, :ranked_date, :last_updated, :deleted_at,
		:card, :card_2x, :cover, :cover_2x, :list, :list_2x, :slimcover, :slimcover_2x,
		:download_disabled, :more_information,
		:beatmap_count, :mode_osu_count, :mode_taiko_count, :mode_fruits_count, :mode_mania_count,
		:downloaded, :file_size
	)
	ON CONFLICT(id) DO UPDATE SET
		artist = excluded.artist,
		artist_unicode = excluded.artist_unicode,
		title = excluded.title,
		title_unicode = excluded.title_unicode,
		creator = excluded.creator,
		user_id = excluded.user_id,
		source = excluded.source,
		tags = excluded.tags,
		status = excluded.status,
		bpm = excluded.bpm,
		favourite_count = excluded.favourite_count,
		playcount = excluded.playcount,
		rating = excluded.rating,
		nsfw = excluded.nsfw,
		video = excluded.video,
		storyboard = excluded.storyboard,
		spotlight = excluded.spotlight,
		is_scoreable = excluded.is_scoreable,
		genre_id = excluded.genre_id,
		language_id = excluded.language_id,
		preview_url = excluded.preview_url,
		submitted_date = excluded.submitted_date,
		ranked_date = excluded.ranked_date,
		last_updated = excluded.last_updated,
		deleted_at = excluded.deleted_at,
		card = excluded.card,
		card_2x = excluded.card_2x,
		cover = excluded.cover,
		cover_2x = excluded.cover_2x,
		list = excluded.list,
		list_2x = excluded.list_2x,
		slimcover = excluded.slimcover,
		slimcover_2x = excluded.slimcover_2x,
		download_disabled = excluded.download_disabled,
		more_information = excluded.more_information,
		beatmap_count = excluded.beatmap_count,
		mode_osu_count = excluded.mode_osu_count,
		mode_taiko_count = excluded.mode_taiko_count,
		mode_fruits_count = excluded.mode_fruits_count,
		mode_mania_count = excluded.mode_mania_count,
		downloaded = excluded.downloaded,
		file_size = excluded.file_size`

	if _, err := db.NamedExec(query, b); err != nil {
		return fmt.Errorf("failed to upsert beatmapset %d: %w", b.ID, err)
	}
	return nil
}

// GetBeatmapset returns the stored row, or nil when the set is unknown.
func (db *DB) GetBeatmapset(id int64) (*domain.Beatmapset, error) {
	var b domain.Beatmapset
	err := db.Get(&b, `SELECT * FROM beatmapsets WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (db *DB) BeatmapsetExists(id int64) (bool, error) {
	var count int
	err := db.Get(&count, `SELECT COUNT(*) FROM beatmapsets WHERE id = ?`, id)
	return count > 0, err
}

// ListBeatmapsetIDs returns every known set ID in ascending order, for the
// full-catalog refresh loop.
func (db *DB) ListBeatmapsetIDs() ([]int64, error) {
	var ids []int64
	err := db.Select(&ids, `SELECT id FROM beatmapsets ORDER BY id ASC`)
	return ids, err
}

// ListMissingBeatmapsetIDs returns sets with no recorded download, for the
// missing-file rescan.
func (db *DB) ListMissingBeatmapsetIDs() ([]int64, error) {
	var ids []int64
	err := db.Select(&ids, `SELECT id FROM beatmapsets WHERE downloaded = 0 ORDER BY id ASC`)
	return ids, err
}

// SetDownloaded updates the local archive flags for one set. A nil size
// leaves file_size untouched.
func (db *DB) SetDownloaded(id int64, downloaded bool, size *int64) error {
	if size != nil {
		_, err := db.Exec(`UPDATE beatmapsets SET downloaded = ?, file_size = ? WHERE id = ?`, downloaded, *size, id)
		return err
	}
	_, err := db.Exec(`UPDATE beatmapsets SET downloaded = ? WHERE id = ?`, downloaded, id)
	return err
}
