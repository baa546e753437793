package osuapi

import "errors"

var (
	// ErrNotFound means the remote entry does not exist. A valid outcome,
	// not a failure.
	ErrNotFound = errors.New("beatmapset not found")

	// ErrRateLimited means the API asked us to slow down. The request may
	// be retried unchanged after a cooldown.
	ErrRateLimited = errors.New("rate limited by osu! api")

	// ErrUnauthorized means the current token was rejected. The auth task
	// refreshes it on its own schedule.
	ErrUnauthorized = errors.New("osu! api token rejected")
)
