package mirror

import (
	"context"
	"errors"
	"fmt"

	"github.com/mapmirror/mapmirror/internal/domain"
	"github.com/mapmirror/mapmirror/internal/osuapi"
)

// FetchAndProcess fetches one set and reconciles it. The returned bool
// reports whether the set exists remotely at all, which is what the
// discovery cursor needs: a set with an untracked status still exists.
func (s *Service) FetchAndProcess(ctx context.Context, id int64) (bool, error) {
	remote, err := s.api.FetchBeatmapset(ctx, id)
	if errors.Is(err, osuapi.ErrNotFound) {
		exists, dbErr := s.db.BeatmapsetExists(id)
		if dbErr != nil {
			return false, dbErr
		}
		if exists {
			// The source system never hard-deletes; surface the
			// discrepancy and leave the row alone.
			s.log.Warn("Beatmapset missing remotely but present in DB", "beatmapset_id", id)
		} else {
			s.log.Debug("Beatmapset not found", "beatmapset_id", id)
		}
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if !s.trackAll && !domain.Tracked(remote.Status) {
		s.log.Debug("Skipping beatmapset with untracked status",
			"beatmapset_id", id, "status", remote.Status)
		return true, nil
	}

	if _, err := s.Process(ctx, remote); err != nil {
		return true, err
	}
	return true, nil
}

// Process reconciles one fetched beatmapset against the stored row and the
// on-disk archive, persists the merged row and its difficulties, and
// downloads the artifact when needed. Download failures are logged and
// leave the stored flags truthful; they never fail the pass.
func (s *Service) Process(ctx context.Context, remote *osuapi.Beatmapset) (*domain.Beatmapset, error) {
	dbRow, err := s.db.GetBeatmapset(remote.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load beatmapset %d: %w", remote.ID, err)
	}

	row := flattenBeatmapset(remote)

	// Unavailability is a one-way door: once a set is deleted or DMCA'd we
	// never download again and never flip downloaded back to false for
	// that reason alone.
	unavailable := row.Unavailable()
	fileExists := s.files.Exists(remote.ID)

	downloaded := dbRow != nil && dbRow.Downloaded
	needDownload := false

	switch {
	case dbRow == nil:
		needDownload = !unavailable
	case unavailable:
		// Frozen as-is.
	case downloaded && fileExists:
		if remote.LastUpdated != nil && dbRow.LastUpdated != nil &&
			remote.LastUpdated.After(*dbRow.LastUpdated) {
			needDownload = true
		}
	case !downloaded && fileExists:
		// Crash between download and flag write: fix the flag without
		// touching the network.
		downloaded = true
		s.log.Info("Fixed downloaded flag from disk state", "beatmapset_id", remote.ID)
	default:
		// File missing on disk, whatever the flag says.
		needDownload = true
	}

	row.Downloaded = downloaded
	if dbRow != nil {
		row.FileSize = dbRow.FileSize
	}

	// Metadata freshness is independent of artifact freshness: the row and
	// its difficulties are upserted whether or not a download happens.
	if err := s.db.UpsertBeatmapset(row); err != nil {
		return nil, err
	}
	for i := range remote.Beatmaps {
		if err := s.db.UpsertBeatmap(convertBeatmap(remote.ID, &remote.Beatmaps[i])); err != nil {
			return nil, err
		}
	}

	if needDownload && !unavailable {
		s.download(ctx, row)
	} else if fileExists && row.FileSize == nil {
		s.repairFileSize(row)
	}

	s.log.Info("Processed beatmapset",
		"beatmapset_id", row.ID, "title", row.Title, "artist", row.Artist,
		"status", row.Status, "downloaded", row.Downloaded)
	return row, nil
}

// download fetches the artifact and records the outcome. On failure the
// downloaded flag is only flipped to false when the artifact is confirmed
// absent from disk, so a failed re-download of an existing file does not
// lie about the archive.
func (s *Service) download(ctx context.Context, row *domain.Beatmapset) {
	url, err := s.dl.ResolveURL(ctx, row.ID)
	if err == nil {
		var size int64
		_, size, err = s.dl.StreamToFile(ctx, url, row.ID)
		if err == nil {
			row.FileSize = &size
			row.Downloaded = true
			if upErr := s.db.UpsertBeatmapset(row); upErr != nil {
				s.log.Error("Failed to persist download result", "beatmapset_id", row.ID, "error", upErr)
				return
			}
			if flagErr := s.db.SetDownloaded(row.ID, true, &size); flagErr != nil {
				s.log.Error("Failed to set downloaded flag", "beatmapset_id", row.ID, "error", flagErr)
				return
			}
			s.log.Info("Downloaded beatmapset", "beatmapset_id", row.ID, "bytes", size)
			return
		}
	}

	s.log.Warn("Download failed", "beatmapset_id", row.ID, "error", err)

	if !s.files.Exists(row.ID) {
		row.Downloaded = false
		if flagErr := s.db.SetDownloaded(row.ID, false, nil); flagErr != nil {
			s.log.Error("Failed to clear downloaded flag", "beatmapset_id", row.ID, "error", flagErr)
		}
	}
}

// repairFileSize backfills file_size from disk when a file exists but the
// row has no recorded size. Keeps storage accounting accurate without a
// re-download.
func (s *Service) repairFileSize(row *domain.Beatmapset) {
	size, err := s.files.Size(row.ID)
	if err != nil {
		return
	}
	row.FileSize = &size
	if err := s.db.UpsertBeatmapset(row); err != nil {
		s.log.Error("Failed to persist file size", "beatmapset_id", row.ID, "error", err)
		return
	}
	s.log.Info("Updated file size from disk", "beatmapset_id", row.ID, "bytes", size)
}
