package osu

import (
	"strconv"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
)

// mapBeatmapToRecord converts one v1 difficulty row to a catalog record.
// Approved statuses: 4 loved, 3 qualified, 2 approved, 1 ranked, 0 pending,
// -1 WIP, -2 graveyard. Only positive statuses with available audio are
// eligible.
func mapBeatmapToRecord(b osuBeatmap) (domain.CatalogRecord, error) {
	id, err := strconv.Atoi(b.BeatmapsetID)
	if err != nil {
		return domain.CatalogRecord{}, err
	}

	approved, err := strconv.Atoi(b.Approved)
	if err != nil {
		return domain.CatalogRecord{}, err
	}

	// playcount is best-effort; a malformed value just drops the weight.
	playcount, _ := strconv.Atoi(b.Playcount)

	return domain.CatalogRecord{
		ID:               id,
		Artist:           domain.Bilingual(b.Artist, b.ArtistUnicode),
		Title:            domain.Bilingual(b.Title, b.TitleUnicode),
		PopularityWeight: playcount,
		Eligible:         approved > 0 && b.AudioUnavailable == "0",
	}, nil
}

func recordsFromBeatmaps(rows []osuBeatmap) []domain.CatalogRecord {
	records := make([]domain.CatalogRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := mapBeatmapToRecord(row)
		if err != nil {
			continue
		}
		records = append(records, rec)
	}
	return records
}

// mapBeatmapsetToRecord converts one v2 beatmapset to a catalog record.
func mapBeatmapsetToRecord(s osuBeatmapset) domain.CatalogRecord {
	return domain.CatalogRecord{
		ID:               s.ID,
		Artist:           domain.Bilingual(s.Artist, s.ArtistUnicode),
		Title:            domain.Bilingual(s.Title, s.TitleUnicode),
		PopularityWeight: s.PlayCount,
		Eligible:         s.Ranked > 0 && !s.Availability.DownloadDisabled,
	}
}

func recordsFromBeatmapsets(sets []osuBeatmapset) []domain.CatalogRecord {
	records := make([]domain.CatalogRecord, 0, len(sets))
	for _, s := range sets {
		records = append(records, mapBeatmapsetToRecord(s))
	}
	return records
}
