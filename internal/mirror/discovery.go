package mirror

import (
	"context"
)

// Advance probes the scanStep IDs past cursor and returns the highest ID
// confirmed to exist. Gap IDs do not stall the scan; when nothing is found
// the cursor comes back unchanged. A probe failure ends the advance at the
// last confirmed ID, so every ID below the result has been confirmed
// present or absent. The result is never below the input, so callers can
// persist it unconditionally when it moved.
func (s *Service) Advance(ctx context.Context, cursor int64) (int64, error) {
	s.log.Info("Searching for new beatmapsets",
		"from", cursor+1, "to", cursor+s.scanStep)

	newHighest := cursor
	for id := cursor + 1; id <= cursor+s.scanStep; id++ {
		if id > cursor+1 {
			if err := sleep(ctx, s.scanDelay); err != nil {
				return newHighest, err
			}
		}

		found, err := s.FetchAndProcess(ctx, id)
		if err != nil {
			if ctx.Err() != nil {
				return newHighest, ctx.Err()
			}
			// An unconfirmed ID is terminal for this advance: moving past
			// it would drop it from the forward scan forever. The returned
			// cursor stops at the confirmed prefix, so the next pass
			// re-probes this ID.
			s.log.Warn("Failed to probe beatmapset, stopping advance",
				"beatmapset_id", id, "error", err)
			return newHighest, err
		}
		if found {
			newHighest = id
		}
	}

	if newHighest == cursor {
		s.log.Info("No new beatmapsets found",
			"from", cursor+1, "to", cursor+s.scanStep)
	} else {
		s.log.Info("Updated highest known beatmapset", "cursor", newHighest)
	}
	return newHighest, nil
}

// AdvanceCursor is the discovery task's unit of work: load the persisted
// cursor, advance it, and store it only when it moved. Reading and writing
// through the store keeps the cursor the single source of truth across
// restarts and loops.
func (s *Service) AdvanceCursor(ctx context.Context) error {
	cursor, err := s.db.GetScanCursor()
	if err != nil {
		return err
	}

	newCursor, advanceErr := s.Advance(ctx, cursor)

	// Persist the confirmed prefix even when the advance stopped on a
	// probe failure, so confirmed IDs are not re-probed next pass.
	if newCursor > cursor {
		if err := s.db.SetScanCursor(newCursor); err != nil {
			return err
		}
		s.log.Info("Scan cursor advanced", "from", cursor, "to", newCursor)
	}
	return advanceErr
}
