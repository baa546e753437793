// Package mirror holds the reconciliation engine: for each beatmapset it
// merges remote API state, the stored row, and the on-disk archive into one
// consistent outcome, and the scan loops that drive it.
package mirror

import (
	"context"
	"time"

	"github.com/mapmirror/mapmirror/internal/domain"
	"github.com/mapmirror/mapmirror/internal/logger"
	"github.com/mapmirror/mapmirror/internal/osuapi"
)

// API is the remote catalog surface the mirror consumes.
type API interface {
	FetchBeatmapset(ctx context.Context, id int64) (*osuapi.Beatmapset, error)
	GetRecentBeatmaps(ctx context.Context, since time.Time) ([]osuapi.RecentBeatmap, error)
}

// Store is the persistence surface the mirror consumes.
type Store interface {
	UpsertBeatmapset(b *domain.Beatmapset) error
	UpsertBeatmap(b *domain.Beatmap) error
	GetBeatmapset(id int64) (*domain.Beatmapset, error)
	BeatmapsetExists(id int64) (bool, error)
	ListBeatmapsetIDs() ([]int64, error)
	ListMissingBeatmapsetIDs() ([]int64, error)
	SetDownloaded(id int64, downloaded bool, size *int64) error
	GetScanCursor() (int64, error)
	SetScanCursor(cursor int64) error
}

// Transport resolves transient download URLs and streams artifacts to disk.
type Transport interface {
	ResolveURL(ctx context.Context, beatmapsetID int64) (string, error)
	StreamToFile(ctx context.Context, url string, beatmapsetID int64) (string, int64, error)
}

// Files probes the local artifact archive.
type Files interface {
	Exists(beatmapsetID int64) bool
	Size(beatmapsetID int64) (int64, error)
}

const (
	// scanStep is how many sequential IDs one discovery advance probes.
	scanStep = 10000

	// scanDelay paces the forward ID scan.
	scanDelay = 500 * time.Millisecond

	// recentDelay paces per-set fetches inside the recent-changes scan.
	recentDelay = 100 * time.Millisecond

	// recentWindowDays is the trailing window the recent scan walks.
	recentWindowDays = 30

	// refreshBatchSize bounds per-batch error isolation in the full
	// refresh, mirroring the upstream batch limit.
	refreshBatchSize = 50
)

// Service wires the reconciler to its collaborators. All state lives in the
// store and on disk; the service itself is stateless and safe to share
// between scheduler loops.
type Service struct {
	api      API
	db       Store
	dl       Transport
	files    Files
	trackAll bool
	log      *logger.Logger

	// Pacing knobs, defaulted from the constants above; tests shrink them.
	scanStep    int64
	scanDelay   time.Duration
	recentDelay time.Duration
}

func NewService(api API, db Store, dl Transport, files Files, trackAll bool, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Default()
	}
	return &Service{
		api:         api,
		db:          db,
		dl:          dl,
		files:       files,
		trackAll:    trackAll,
		log:         log.WithComponent("mirror"),
		scanStep:    scanStep,
		scanDelay:   scanDelay,
		recentDelay: recentDelay,
	}
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
