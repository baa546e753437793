package mirror

import (
	"context"
)

// RefreshAll re-fetches and reconciles every known beatmapset. Work is cut
// into fixed-size batches so one bad batch is logged and skipped without
// losing the rest; request pacing is handled by the API client.
func (s *Service) RefreshAll(ctx context.Context) error {
	ids, err := s.db.ListBeatmapsetIDs()
	if err != nil {
		return err
	}

	s.log.Info("Refreshing beatmapsets", "count", len(ids))

	batches := (len(ids) + refreshBatchSize - 1) / refreshBatchSize
	for i := 0; i < len(ids); i += refreshBatchSize {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		end := i + refreshBatchSize
		if end > len(ids) {
			end = len(ids)
		}
		batch := ids[i:end]

		for _, id := range batch {
			if _, err := s.FetchAndProcess(ctx, id); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				s.log.Warn("Failed to refresh beatmapset", "beatmapset_id", id, "error", err)
			}
		}

		s.log.Debug("Processed refresh batch",
			"batch", i/refreshBatchSize+1, "batches", batches,
			"first", batch[0], "last", batch[len(batch)-1])
	}

	s.log.Info("Finished refreshing beatmapsets", "count", len(ids))
	return nil
}
