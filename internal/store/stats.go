package store

import (
	"time"

	"github.com/mapmirror/mapmirror/internal/domain"
)

// ensureStatsRow creates the singleton stats row on first use.
func (db *DB) ensureStatsRow() error {
	_, err := db.Exec(`INSERT INTO stats (scan_cursor)
		SELECT 0 WHERE NOT EXISTS (SELECT 1 FROM stats)`)
	return err
}

// GetScanCursor returns the persisted discovery cursor.
func (db *DB) GetScanCursor() (int64, error) {
	if err := db.ensureStatsRow(); err != nil {
		return 0, err
	}
	var cursor int64
	err := db.Get(&cursor, `SELECT scan_cursor FROM stats LIMIT 1`)
	return cursor, err
}

// SetScanCursor persists the discovery cursor. The guard keeps the cursor
// monotonic even if two advances race.
func (db *DB) SetScanCursor(cursor int64) error {
	if err := db.ensureStatsRow(); err != nil {
		return err
	}
	_, err := db.Exec(`UPDATE stats SET scan_cursor = ? WHERE scan_cursor < ?`, cursor, cursor)
	return err
}

// GetStats returns the current aggregate row.
func (db *DB) GetStats() (*domain.Stats, error) {
	if err := db.ensureStatsRow(); err != nil {
		return nil, err
	}
	var s domain.Stats
	err := db.Get(&s, `SELECT * FROM stats LIMIT 1`)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// RefreshStats recomputes the aggregate counters from the mirrored tables.
// The scan cursor is owned by the discovery loop and left untouched.
func (db *DB) RefreshStats() error {
	if err := db.ensureStatsRow(); err != nil {
		return err
	}
	_, err := db.Exec(`UPDATE stats SET
		beatmapset_count = (SELECT COUNT(*) FROM beatmapsets),
		beatmap_count = (SELECT COUNT(*) FROM beatmaps),
		ranked_count = (SELECT COUNT(*) FROM beatmapsets WHERE status = 'ranked'),
		approved_count = (SELECT COUNT(*) FROM beatmapsets WHERE status = 'approved'),
		loved_count = (SELECT COUNT(*) FROM beatmapsets WHERE status = 'loved'),
		graveyard_count = (SELECT COUNT(*) FROM beatmapsets WHERE status = 'graveyard'),
		wip_count = (SELECT COUNT(*) FROM beatmapsets WHERE status = 'wip'),
		qualified_count = (SELECT COUNT(*) FROM beatmapsets WHERE status = 'qualified'),
		pending_count = (SELECT COUNT(*) FROM beatmapsets WHERE status = 'pending'),
		total_size = (SELECT COALESCE(SUM(file_size), 0) FROM beatmapsets WHERE downloaded = 1 AND file_size IS NOT NULL),
		missing_count = (SELECT COUNT(*) FROM beatmapsets WHERE downloaded = 0),
		updated_at = ?`, time.Now().UTC())
	return err
}
