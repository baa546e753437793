package mirror

import (
	"context"
	"time"
)

// ScanRecent walks the v1 "changed since" feed day by day over the trailing
// window and reconciles any set the mirror has never stored. This catches
// sets that became trackable below the discovery cursor, which the
// forward-only scan would never revisit.
func (s *Service) ScanRecent(ctx context.Context) error {
	s.log.Info("Scanning recently changed beatmapsets", "window_days", recentWindowDays)

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for offset := 0; offset < recentWindowDays; offset++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		day := today.AddDate(0, 0, -offset)
		recent, err := s.api.GetRecentBeatmaps(ctx, day)
		if err != nil {
			// One bad day is retried on the next pass; keep walking.
			s.log.Warn("Failed to fetch recent beatmaps", "day", day.Format("2006-01-02"), "error", err)
			continue
		}

		// The feed is per-difficulty; collapse to unique set IDs.
		setIDs := make(map[int64]struct{})
		for i := range recent {
			if id := recent[i].SetID(); id > 0 {
				setIDs[id] = struct{}{}
			}
		}

		s.log.Debug("Recent feed day scanned",
			"day", day.Format("2006-01-02"), "beatmaps", len(recent), "beatmapsets", len(setIDs))

		for id := range setIDs {
			exists, err := s.db.BeatmapsetExists(id)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			s.log.Info("Found undiscovered beatmapset", "beatmapset_id", id)
			if _, err := s.FetchAndProcess(ctx, id); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.log.Warn("Failed to process recent beatmapset", "beatmapset_id", id, "error", err)
			}

			if err := sleep(ctx, s.recentDelay); err != nil {
				return err
			}
		}
	}

	s.log.Info("Finished scanning recently changed beatmapsets")
	return nil
}
