package domain

import "fmt"

// CatalogRecord is one upstream metadata entry for a song. The external
// source returns several records per song (one per chart variant); they share
// an ID and are merged before sampling. Eligible folds the upstream approval
// and audio-availability checks into a single flag.
type CatalogRecord struct {
	ID               int
	Artist           BilingualText
	Title            BilingualText
	PopularityWeight int
	Eligible         bool
}

// Song is the selected target of a round. Immutable once chosen.
type Song struct {
	ID          int           `json:"id"`
	AudioPath   string        `json:"audioPath"`
	Artist      BilingualText `json:"artist"`
	Title       BilingualText `json:"title"`
	DisplayName BilingualText `json:"displayName"`
}

// NewSong assembles a Song from a merged catalog record.
func NewSong(rec CatalogRecord, audioPath string) Song {
	return Song{
		ID:        rec.ID,
		AudioPath: audioPath,
		Artist:    rec.Artist,
		Title:     rec.Title,
		DisplayName: BilingualText{
			Original:  fmt.Sprintf("%s - %s", rec.Artist.Original, rec.Title.Original),
			Alternate: fmt.Sprintf("%s - %s", rec.Artist.Alternate, rec.Title.Alternate),
		},
	}
}
