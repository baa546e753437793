package store

const Schema = `
CREATE TABLE IF NOT EXISTS beatmapsets (
	id INTEGER PRIMARY KEY,
	artist TEXT,
	artist_unicode TEXT,
	title TEXT,
	title_unicode TEXT,
	creator TEXT,
	user_id INTEGER,
	source TEXT,
	tags TEXT,
	status TEXT,
	bpm REAL,
	favourite_count INTEGER,
	playcount INTEGER,
	rating REAL,
	nsfw BOOLEAN,
	video BOOLEAN,
	storyboard BOOLEAN,
	spotlight BOOLEAN,
	is_scoreable BOOLEAN,
	genre_id INTEGER,
	language_id INTEGER,
	preview_url TEXT,
	submitted_date DATETIME,
	ranked_date DATETIME,
	last_updated DATETIME,
	deleted_at DATETIME,

	card TEXT,
	card_2x TEXT,
	cover TEXT,
	cover_2x TEXT,
	list TEXT,
	list_2x TEXT,
	slimcover TEXT,
	slimcover_2x TEXT,

	download_disabled BOOLEAN,
	more_information TEXT,

	beatmap_count INTEGER DEFAULT 0,
	mode_osu_count INTEGER DEFAULT 0,
	mode_taiko_count INTEGER DEFAULT 0,
	mode_fruits_count INTEGER DEFAULT 0,
	mode_mania_count INTEGER DEFAULT 0,

	downloaded BOOLEAN DEFAULT 0,
	file_size INTEGER
);

CREATE INDEX IF NOT EXISTS idx_beatmapsets_status ON beatmapsets(status);
CREATE INDEX IF NOT EXISTS idx_beatmapsets_downloaded ON beatmapsets(downloaded);

CREATE TABLE IF NOT EXISTS beatmaps (
	id INTEGER PRIMARY KEY,
	beatmapset_id INTEGER NOT NULL REFERENCES beatmapsets(id) ON DELETE CASCADE,
	mode TEXT,
	mode_int INTEGER,
	status TEXT,
	version TEXT,
	difficulty_rating REAL,
	ar REAL,
	cs REAL,
	drain REAL,
	accuracy REAL,
	bpm REAL,
	count_circles INTEGER,
	count_sliders INTEGER,
	count_spinners INTEGER,
	hit_length INTEGER,
	total_length INTEGER,
	max_combo INTEGER,
	is_scoreable BOOLEAN,
	playcount INTEGER,
	passcount INTEGER,
	checksum TEXT,
	user_id INTEGER,
	convert BOOLEAN,
	url TEXT,
	last_updated DATETIME,
	deleted_at DATETIME
);

CREATE INDEX IF NOT EXISTS idx_beatmaps_set ON beatmaps(beatmapset_id);

CREATE TABLE IF NOT EXISTS stats (
	scan_cursor INTEGER DEFAULT 0,
	beatmapset_count INTEGER DEFAULT 0,
	beatmap_count INTEGER DEFAULT 0,
	ranked_count INTEGER DEFAULT 0,
	approved_count INTEGER DEFAULT 0,
	loved_count INTEGER DEFAULT 0,
	graveyard_count INTEGER DEFAULT 0,
	wip_count INTEGER DEFAULT 0,
	qualified_count INTEGER DEFAULT 0,
	pending_count INTEGER DEFAULT 0,
	total_size INTEGER DEFAULT 0,
	missing_count INTEGER DEFAULT 0,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);
`
