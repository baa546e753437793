// Package download is the cookie-authenticated transport that fetches .osz
// artifacts into the local archive.
package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/mapmirror/mapmirror/internal/archive"
	"github.com/mapmirror/mapmirror/internal/cookie"
)

// ErrUnavailable means the set has no fetchable artifact (download disabled
// or removed upstream). Callers must freeze state and never retry.
var ErrUnavailable = errors.New("beatmapset download unavailable")

const (
	defaultSiteURL = "https://osu.ppy.sh"

	// Download redirects must land on the beatmap mirror CDN; anything
	// else is the website's "download disabled" interstitial.
	downloadHostPrefix = "https://bm"
)

// Downloader resolves transient download URLs and streams artifacts to the
// archive.
type Downloader struct {
	jar     *cookie.Jar
	archive *archive.Archive

	siteURL    string
	hostPrefix string

	resolver *http.Client
	streamer *retryablehttp.Client
}

func New(jar *cookie.Jar, arc *archive.Archive) *Downloader {
	streamer := retryablehttp.NewClient()
	streamer.RetryMax = 3
	streamer.HTTPClient.Timeout = 10 * time.Minute
	streamer.Logger = nil

	return &Downloader{
		jar:        jar,
		archive:    arc,
		siteURL:    defaultSiteURL,
		hostPrefix: downloadHostPrefix,
		resolver: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		streamer: streamer,
	}
}

// NewWithSite is used by tests to point the downloader at a local server.
func NewWithSite(jar *cookie.Jar, arc *archive.Archive, siteURL, hostPrefix string) *Downloader {
	d := New(jar, arc)
	d.siteURL = siteURL
	d.hostPrefix = hostPrefix
	return d
}

// ResolveURL asks the website for the transient CDN URL of one set. The
// endpoint needs a logged-in session cookie and answers with a redirect;
// a redirect anywhere but the CDN means the download is disabled.
func (d *Downloader) ResolveURL(ctx context.Context, beatmapsetID int64) (string, error) {
	session := d.jar.Session()
	if session == "" {
		return "", fmt.Errorf("no osu_session cookie loaded")
	}

	endpoint := fmt.Sprintf("%s/beatmapsets/%d/download", d.siteURL, beatmapsetID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Cookie", "osu_session="+session)
	req.Header.Set("Referer", fmt.Sprintf("%s/beatmapsets/%d", d.siteURL, beatmapsetID))
	req.Header.Set("Accept", "*/*")

	resp, err := d.resolver.Do(req)
	if err != nil {
		return "", fmt.Errorf("download resolve failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	location := resp.Header.Get("Location")
	if resp.StatusCode < 300 || resp.StatusCode >= 400 || location == "" {
		return "", fmt.Errorf("%w: no redirect from download endpoint (status %d)", ErrUnavailable, resp.StatusCode)
	}
	if !strings.HasPrefix(location, d.hostPrefix) {
		return "", fmt.Errorf("%w: redirect to %s", ErrUnavailable, location)
	}
	return location, nil
}

// StreamToFile downloads the artifact at url into the per-set directory and
// returns the stored path and byte size. Partial files are removed on error.
func (d *Downloader) StreamToFile(ctx context.Context, url string, beatmapsetID int64) (string, int64, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", 0, err
	}

	resp, err := d.streamer.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // deferred cleanup

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	filename, err := filenameFromHeader(resp.Header.Get("Content-Disposition"))
	if err != nil {
		return "", 0, err
	}

	if err := d.archive.EnsureDir(beatmapsetID); err != nil {
		return "", 0, fmt.Errorf("failed to create archive dir: %w", err)
	}
	path := filepath.Join(d.archive.Dir(beatmapsetID), filename)

	f, err := os.Create(path)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}

	written, err := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", 0, fmt.Errorf("failed to stream artifact: %w", err)
	}

	return path, written, nil
}

// filenameFromHeader extracts and sanitizes the artifact filename from a
// Content-Disposition header. The name is untrusted input: it is percent-
// decoded and stripped of path separators before being joined to a
// directory.
func filenameFromHeader(cd string) (string, error) {
	if cd == "" {
		return "", fmt.Errorf("server did not provide a filename")
	}

	var filename string
	if _, params, err := mime.ParseMediaType(cd); err == nil {
		filename = params["filename"]
	}
	if filename == "" {
		// Tolerate headers mime.ParseMediaType rejects, the way browsers do.
		for _, part := range strings.Split(cd, ";") {
			part = strings.TrimSpace(part)
			if rest, ok := strings.CutPrefix(part, "filename*=UTF-8''"); ok {
				filename = rest
				break
			}
			if rest, ok := strings.CutPrefix(part, "filename="); ok {
				filename = strings.Trim(rest, `"`)
				break
			}
		}
	}
	if filename == "" {
		return "", fmt.Errorf("could not extract filename from %q", cd)
	}

	if decoded, err := url.QueryUnescape(filename); err == nil {
		filename = decoded
	}
	return archive.SanitizeFilename(filename), nil
}
