package mirror

import (
	"context"
)

// ScanMissing walks every row with downloaded=false and checks the disk.
// Rows whose artifact actually exists are self-healed: the flag and file
// size are corrected without any network traffic.
func (s *Service) ScanMissing(ctx context.Context) error {
	ids, err := s.db.ListMissingBeatmapsetIDs()
	if err != nil {
		return err
	}

	s.log.Info("Rechecking beatmapsets without a recorded download", "count", len(ids))

	fixed := 0
	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !s.files.Exists(id) {
			continue
		}

		size, err := s.files.Size(id)
		if err != nil {
			s.log.Warn("Failed to stat artifact", "beatmapset_id", id, "error", err)
			continue
		}
		if err := s.db.SetDownloaded(id, true, &size); err != nil {
			return err
		}
		s.log.Info("Marked beatmapset downloaded from disk state", "beatmapset_id", id, "bytes", size)
		fixed++
	}

	s.log.Info("Finished rechecking missing beatmapsets", "fixed", fixed)
	return nil
}
