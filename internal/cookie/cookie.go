// Package cookie holds the osu_session browser cookie used by the download
// transport. The cookie is maintained out-of-band (a logged-in browser
// session) and re-read from disk on a schedule.
package cookie

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
)

type Jar struct {
	path string

	mu      sync.RWMutex
	session string
}

func NewJar(path string) *Jar {
	return &Jar{path: path}
}

// Reload re-reads the cookie file. Values that arrive double-encoded
// (containing "%25") are decoded once, matching what the website sets.
func (j *Jar) Reload() error {
	raw, err := os.ReadFile(j.path)
	if err != nil {
		return fmt.Errorf("failed to read cookie file: %w", err)
	}

	session := strings.TrimSpace(string(raw))
	if session == "" {
		return fmt.Errorf("cookie file %s is empty", j.path)
	}
	if strings.Contains(session, "%25") {
		if decoded, err := url.QueryUnescape(session); err == nil {
			session = decoded
		}
	}

	j.mu.Lock()
	j.session = session
	j.mu.Unlock()
	return nil
}

// Session returns the current osu_session value, or "" before the first
// successful Reload.
func (j *Jar) Session() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.session
}
