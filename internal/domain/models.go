package domain

import (
	"strings"
	"time"
)

// Rank statuses as reported by the osu! v2 API.
const (
	StatusRanked    = "ranked"
	StatusApproved  = "approved"
	StatusQualified = "qualified"
	StatusLoved     = "loved"
	StatusPending   = "pending"
	StatusWIP       = "wip"
	StatusGraveyard = "graveyard"
)

// Tracked reports whether a beatmapset status is mirrored by default.
// Everything else is only stored when TRACK_ALL_MAPS is enabled.
func Tracked(status string) bool {
	switch status {
	case StatusRanked, StatusLoved, StatusApproved:
		return true
	}
	return false
}

// Game modes and their mode_int values (osu=0, taiko=1, fruits=2, mania=3).
const (
	ModeOsu    = "osu"
	ModeTaiko  = "taiko"
	ModeFruits = "fruits"
	ModeMania  = "mania"
)

// Beatmapset is one mirrored catalog entry, flattened into a single row.
// Downloaded and FileSize are local archive state and never come from the API.
type Beatmapset struct { //nolint:govet // field ordering follows the schema, not alignment
	ID             int64      `db:"id" json:"id"`
	Artist         string     `db:"artist" json:"artist"`
	ArtistUnicode  string     `db:"artist_unicode" json:"artist_unicode"`
	Title          string     `db:"title" json:"title"`
	TitleUnicode   string     `db:"title_unicode" json:"title_unicode"`
	Creator        string     `db:"creator" json:"creator"`
	UserID         int64      `db:"user_id" json:"user_id"`
	Source         string     `db:"source" json:"source"`
	Tags           string     `db:"tags" json:"tags"`
	Status         string     `db:"status" json:"status"`
	BPM            float64    `db:"bpm" json:"bpm"`
	FavouriteCount int64      `db:"favourite_count" json:"favourite_count"`
	PlayCount      int64      `db:"playcount" json:"playcount"`
	Rating         float64    `db:"rating" json:"rating"`
	NSFW           bool       `db:"nsfw" json:"nsfw"`
	Video          bool       `db:"video" json:"video"`
	Storyboard     bool       `db:"storyboard" json:"storyboard"`
	Spotlight      bool       `db:"spotlight" json:"spotlight"`
	IsScoreable    bool       `db:"is_scoreable" json:"is_scoreable"`
	GenreID        *int64     `db:"genre_id" json:"genre_id,omitempty"`
	LanguageID     *int64     `db:"language_id" json:"language_id,omitempty"`
	PreviewURL     string     `db:"preview_url" json:"preview_url"`
	SubmittedDate  *time.Time `db:"submitted_date" json:"submitted_date,omitempty"`
	RankedDate     *time.Time `db:"ranked_date" json:"ranked_date,omitempty"`
	LastUpdated    *time.Time `db:"last_updated" json:"last_updated,omitempty"`
	DeletedAt      *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`

	// Flattened cover URLs.
	Card        string `db:"card" json:"card"`
	Card2x      string `db:"card_2x" json:"card_2x"`
	Cover       string `db:"cover" json:"cover"`
	Cover2x     string `db:"cover_2x" json:"cover_2x"`
	List        string `db:"list" json:"list"`
	List2x      string `db:"list_2x" json:"list_2x"`
	Slimcover   string `db:"slimcover" json:"slimcover"`
	Slimcover2x string `db:"slimcover_2x" json:"slimcover_2x"`

	// Flattened availability.
	DownloadDisabled bool    `db:"download_disabled" json:"download_disabled"`
	MoreInformation  *string `db:"more_information" json:"more_information,omitempty"`

	// Derived difficulty tallies.
	BeatmapCount    int `db:"beatmap_count" json:"beatmap_count"`
	ModeOsuCount    int `db:"mode_osu_count" json:"mode_osu_count"`
	ModeTaikoCount  int `db:"mode_taiko_count" json:"mode_taiko_count"`
	ModeFruitsCount int `db:"mode_fruits_count" json:"mode_fruits_count"`
	ModeManiaCount  int `db:"mode_mania_count" json:"mode_mania_count"`

	// Local archive state.
	Downloaded bool   `db:"downloaded" json:"downloaded"`
	FileSize   *int64 `db:"file_size" json:"file_size,omitempty"`
}

// Unavailable reports whether the set can never be downloaded again:
// deleted upstream, download disabled, or its availability notice is a
// redirect URL. Once observed true this is a one-way flag for the mirror.
func (b *Beatmapset) Unavailable() bool {
	if b.DeletedAt != nil || b.DownloadDisabled {
		return true
	}
	return b.MoreInformation != nil && strings.HasPrefix(*b.MoreInformation, "http")
}

// Beatmap is a single difficulty belonging to one Beatmapset.
type Beatmap struct { //nolint:govet // field ordering follows the schema, not alignment
	ID               int64      `db:"id" json:"id"`
	BeatmapsetID     int64      `db:"beatmapset_id" json:"beatmapset_id"`
	Mode             string     `db:"mode" json:"mode"`
	ModeInt          int        `db:"mode_int" json:"mode_int"`
	Status           string     `db:"status" json:"status"`
	Version          string     `db:"version" json:"version"`
	DifficultyRating float64    `db:"difficulty_rating" json:"difficulty_rating"`
	AR               float64    `db:"ar" json:"ar"`
	CS               float64    `db:"cs" json:"cs"`
	Drain            float64    `db:"drain" json:"drain"`
	Accuracy         float64    `db:"accuracy" json:"accuracy"`
	BPM              float64    `db:"bpm" json:"bpm"`
	CountCircles     int64      `db:"count_circles" json:"count_circles"`
	CountSliders     int64      `db:"count_sliders" json:"count_sliders"`
	CountSpinners    int64      `db:"count_spinners" json:"count_spinners"`
	HitLength        int64      `db:"hit_length" json:"hit_length"`
	TotalLength      int64      `db:"total_length" json:"total_length"`
	MaxCombo         *int64     `db:"max_combo" json:"max_combo,omitempty"`
	IsScoreable      bool       `db:"is_scoreable" json:"is_scoreable"`
	PlayCount        int64      `db:"playcount" json:"playcount"`
	PassCount        int64      `db:"passcount" json:"passcount"`
	Checksum         string     `db:"checksum" json:"checksum"`
	UserID           int64      `db:"user_id" json:"user_id"`
	Convert          bool       `db:"convert" json:"convert"`
	URL              string     `db:"url" json:"url"`
	LastUpdated      *time.Time `db:"last_updated" json:"last_updated,omitempty"`
	DeletedAt        *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`
}

// Stats is the singleton aggregate/progress row. ScanCursor is the highest
// beatmapset ID confirmed present or absent by the sequential forward scan;
// it is distinct from MAX(id) because old sets can appear below it later.
type Stats struct {
	ScanCursor      int64     `db:"scan_cursor" json:"scan_cursor"`
	BeatmapsetCount int64     `db:"beatmapset_count" json:"beatmapset_count"`
	BeatmapCount    int64     `db:"beatmap_count" json:"beatmap_count"`
	RankedCount     int64     `db:"ranked_count" json:"ranked_count"`
	ApprovedCount   int64     `db:"approved_count" json:"approved_count"`
	LovedCount      int64     `db:"loved_count" json:"loved_count"`
	GraveyardCount  int64     `db:"graveyard_count" json:"graveyard_count"`
	WIPCount        int64     `db:"wip_count" json:"wip_count"`
	QualifiedCount  int64     `db:"qualified_count" json:"qualified_count"`
	PendingCount    int64     `db:"pending_count" json:"pending_count"`
	TotalSize       int64     `db:"total_size" json:"total_size"`
	MissingCount    int64     `db:"missing_count" json:"missing_count"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
