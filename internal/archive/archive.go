// Package archive manages the on-disk .osz store, one directory per
// beatmapset ID.
package archive

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// ArtifactExt is the beatmapset archive extension.
	ArtifactExt = ".osz"

	dirPermissions = 0755
)

// Archive is the local file store rooted at a single directory.
type Archive struct {
	root string
}

func New(root string) *Archive {
	return &Archive{root: root}
}

// Dir returns the directory that holds the artifact for one beatmapset.
func (a *Archive) Dir(beatmapsetID int64) string {
	return filepath.Join(a.root, strconv.FormatInt(beatmapsetID, 10))
}

// EnsureDir creates the per-set directory if missing.
func (a *Archive) EnsureDir(beatmapsetID int64) error {
	return os.MkdirAll(a.Dir(beatmapsetID), dirPermissions)
}

// ArtifactPath returns the path of the first .osz file stored for the set,
// or "" when none exists.
func (a *Archive) ArtifactPath(beatmapsetID int64) string {
	entries, err := os.ReadDir(a.Dir(beatmapsetID))
	if err != nil {
		return ""
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ArtifactExt) {
			return filepath.Join(a.Dir(beatmapsetID), e.Name())
		}
	}
	return ""
}

// Exists reports whether an artifact is present on disk for the set.
func (a *Archive) Exists(beatmapsetID int64) bool {
	return a.ArtifactPath(beatmapsetID) != ""
}

// Size returns the byte size of the stored artifact, or 0 when missing.
func (a *Archive) Size(beatmapsetID int64) (int64, error) {
	path := a.ArtifactPath(beatmapsetID)
	if path == "" {
		return 0, os.ErrNotExist
	}
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// SanitizeFilename makes an untrusted filename safe to join to a directory.
// Path separators are replaced with visually similar non-separator runes
// (U+29F8, U+29F9) so the name can never escape the target directory.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "/", "⧸")
	name = strings.ReplaceAll(name, "\\", "⧹")
	// Strip any remaining relative-path prefix such as "..".
	name = strings.TrimLeft(name, ".")
	if name == "" {
		name = "unnamed" + ArtifactExt
	}
	return name
}
