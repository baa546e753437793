package osuapi

import "time"

// Beatmapset is the v2 API payload for one set. Optional fields are
// pointers so "absent" is distinguishable from a zero value; anything the
// mirror branches on is typed here, never re-parsed downstream.
type Beatmapset struct {
	ID             int64      `json:"id"`
	Artist         string     `json:"artist"`
	ArtistUnicode  string     `json:"artist_unicode"`
	Title          string     `json:"title"`
	TitleUnicode   string     `json:"title_unicode"`
	Creator        string     `json:"creator"`
	UserID         int64      `json:"user_id"`
	Source         string     `json:"source"`
	Tags           string     `json:"tags"`
	Status         string     `json:"status"`
	BPM            float64    `json:"bpm"`
	FavouriteCount int64      `json:"favourite_count"`
	PlayCount      int64      `json:"play_count"`
	Rating         float64    `json:"rating"`
	NSFW           bool       `json:"nsfw"`
	Video          bool       `json:"video"`
	Storyboard     bool       `json:"storyboard"`
	Spotlight      bool       `json:"spotlight"`
	IsScoreable    bool       `json:"is_scoreable"`
	PreviewURL     string     `json:"preview_url"`
	SubmittedDate  *time.Time `json:"submitted_date"`
	RankedDate     *time.Time `json:"ranked_date"`
	LastUpdated    *time.Time `json:"last_updated"`
	DeletedAt      *time.Time `json:"deleted_at"`

	Genre    *NamedID `json:"genre"`
	Language *NamedID `json:"language"`

	Covers       Covers       `json:"covers"`
	Availability Availability `json:"availability"`
	Beatmaps     []Beatmap    `json:"beatmaps"`
}

// NamedID is the {id, name} shape used for genre and language.
type NamedID struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// Covers holds the cover image URL variants.
type Covers struct {
	Card        string `json:"card"`
	Card2x      string `json:"card@2x"`
	Cover       string `json:"cover"`
	Cover2x     string `json:"cover@2x"`
	List        string `json:"list"`
	List2x      string `json:"list@2x"`
	Slimcover   string `json:"slimcover"`
	Slimcover2x string `json:"slimcover@2x"`
}

// Availability carries the download restriction flags.
type Availability struct {
	DownloadDisabled bool    `json:"download_disabled"`
	MoreInformation  *string `json:"more_information"`
}

// Beatmap is the v2 API payload for one difficulty.
type Beatmap struct {
	ID               int64      `json:"id"`
	BeatmapsetID     int64      `json:"beatmapset_id"`
	Mode             string     `json:"mode"`
	ModeInt          int        `json:"mode_int"`
	Status           string     `json:"status"`
	Version          string     `json:"version"`
	DifficultyRating float64    `json:"difficulty_rating"`
	AR               float64    `json:"ar"`
	CS               float64    `json:"cs"`
	Drain            float64    `json:"drain"`
	Accuracy         float64    `json:"accuracy"`
	BPM              float64    `json:"bpm"`
	CountCircles     int64      `json:"count_circles"`
	CountSliders     int64      `json:"count_sliders"`
	CountSpinners    int64      `json:"count_spinners"`
	HitLength        int64      `json:"hit_length"`
	TotalLength      int64      `json:"total_length"`
	MaxCombo         *int64     `json:"max_combo"`
	IsScoreable      bool       `json:"is_scoreable"`
	PlayCount        int64      `json:"playcount"`
	PassCount        int64      `json:"passcount"`
	Checksum         string     `json:"checksum"`
	UserID           int64      `json:"user_id"`
	Convert          bool       `json:"convert"`
	URL              string     `json:"url"`
	LastUpdated      *time.Time `json:"last_updated"`
	DeletedAt        *time.Time `json:"deleted_at"`
}
