package mirror

import (
	"github.com/mapmirror/mapmirror/internal/domain"
	"github.com/mapmirror/mapmirror/internal/osuapi"
)

// flattenBeatmapset converts the nested API payload into a storable row:
// covers and availability are lifted to columns and the per-mode difficulty
// tallies are derived. Downloaded and FileSize are left at their zero
// values; the reconciler owns them.
func flattenBeatmapset(set *osuapi.Beatmapset) *domain.Beatmapset {
	row := &domain.Beatmapset{
		ID:             set.ID,
		Artist:         set.Artist,
		ArtistUnicode:  set.ArtistUnicode,
		Title:          set.Title,
		TitleUnicode:   set.TitleUnicode,
		Creator:        set.Creator,
		UserID:         set.UserID,
		Source:         set.Source,
		Tags:           set.Tags,
		Status:         set.Status,
		BPM:            set.BPM,
		FavouriteCount: set.FavouriteCount,
		PlayCount:      set.PlayCount,
		Rating:         set.Rating,
		NSFW:           set.NSFW,
		Video:          set.Video,
		Storyboard:     set.Storyboard,
		Spotlight:      set.Spotlight,
		IsScoreable:    set.IsScoreable,
		PreviewURL:     set.PreviewURL,
		SubmittedDate:  set.SubmittedDate,
		RankedDate:     set.RankedDate,
		LastUpdated:    set.LastUpdated,
		DeletedAt:      set.DeletedAt,

		Card:        set.Covers.Card,
		Card2x:      set.Covers.Card2x,
		Cover:       set.Covers.Cover,
		Cover2x:     set.Covers.Cover2x,
		List:        set.Covers.List,
		List2x:      set.Covers.List2x,
		Slimcover:   set.Covers.Slimcover,
		Slimcover2x: set.Covers.Slimcover2x,

		DownloadDisabled: set.Availability.DownloadDisabled,
		MoreInformation:  set.Availability.MoreInformation,

		BeatmapCount: len(set.Beatmaps),
	}

	if set.Genre != nil {
		row.GenreID = set.Genre.ID
	}
	if set.Language != nil {
		row.LanguageID = set.Language.ID
	}

	for _, bm := range set.Beatmaps {
		switch bm.Mode {
		case domain.ModeOsu:
			row.ModeOsuCount++
		case domain.ModeTaiko:
			row.ModeTaikoCount++
		case domain.ModeFruits:
			row.ModeFruitsCount++
		case domain.ModeMania:
			row.ModeManiaCount++
		}
	}

	return row
}

func convertBeatmap(setID int64, bm *osuapi.Beatmap) *domain.Beatmap {
	return &domain.Beatmap{
		ID:               bm.ID,
		BeatmapsetID:     setID,
		Mode:             bm.Mode,
		ModeInt:          bm.ModeInt,
		Status:           bm.Status,
		Version:          bm.Version,
		DifficultyRating: bm.DifficultyRating,
		AR:               bm.AR,
		CS:               bm.CS,
		Drain:            bm.Drain,
		Accuracy:         bm.Accuracy,
		BPM:              bm.BPM,
		CountCircles:     bm.CountCircles,
		CountSliders:     bm.CountSliders,
		CountSpinners:    bm.CountSpinners,
		HitLength:        bm.HitLength,
		TotalLength:      bm.TotalLength,
		MaxCombo:         bm.MaxCombo,
		IsScoreable:      bm.IsScoreable,
		PlayCount:        bm.PlayCount,
		PassCount:        bm.PassCount,
		Checksum:         bm.Checksum,
		UserID:           bm.UserID,
		Convert:          bm.Convert,
		URL:              bm.URL,
		LastUpdated:      bm.LastUpdated,
		DeletedAt:        bm.DeletedAt,
	}
}
