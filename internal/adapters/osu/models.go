package osu

// v1 get_beatmaps rows: every field arrives as a JSON string, one row per
// difficulty. Rows of the same beatmapset share beatmapset_id and are merged
// downstream.
type osuBeatmap struct {
	BeatmapsetID     string `json:"beatmapset_id"`
	Artist           string `json:"artist"`
	ArtistUnicode    string `json:"artist_unicode"`
	Title            string `json:"title"`
	TitleUnicode     string `json:"title_unicode"`
	Approved         string `json:"approved"`
	AudioUnavailable string `json:"audio_unavailable"`
	Playcount        string `json:"playcount"`
	SubmitDate       string `json:"submit_date"`
}

// v2 beatmapsets/search payload: typed fields, one entry per beatmapset.
type beatmapsetSearchResponse struct {
	Beatmapsets []osuBeatmapset `json:"beatmapsets"`
}

type osuBeatmapset struct {
	ID            int              `json:"id"`
	Artist        string           `json:"artist"`
	ArtistUnicode string           `json:"artist_unicode"`
	Title         string           `json:"title"`
	TitleUnicode  string           `json:"title_unicode"`
	Ranked        int              `json:"ranked"`
	PlayCount     int              `json:"play_count"`
	Availability  availabilityInfo `json:"availability"`
}

type availabilityInfo struct {
	DownloadDisabled bool `json:"download_disabled"`
}
