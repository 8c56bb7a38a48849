package domain

import (
	"sort"
	"strings"
)

// GuessVocabulary holds the artist and title options offered to the player
// for a round, derived from the full candidate pool. Both lists are
// deduplicated by lower-cased original form and sorted on that key, matching
// what an autocomplete list presents.
type GuessVocabulary struct {
	Artists []BilingualText `json:"artists"`
	Titles  []BilingualText `json:"titles"`
}

// NewVocabulary builds the option lists from the merged candidate pool.
func NewVocabulary(pool []CatalogRecord) GuessVocabulary {
	artists := make([]BilingualText, 0, len(pool))
	titles := make([]BilingualText, 0, len(pool))
	for _, rec := range pool {
		artists = append(artists, rec.Artist)
		titles = append(titles, rec.Title)
	}
	return GuessVocabulary{
		Artists: sortUnique(artists),
		Titles:  sortUnique(titles),
	}
}

// sortUnique deduplicates on the lower-cased original form, keeping the last
// occurrence, then sorts by that key.
func sortUnique(list []BilingualText) []BilingualText {
	byKey := make(map[string]BilingualText, len(list))
	for _, t := range list {
		byKey[strings.ToLower(t.Original)] = t
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]BilingualText, 0, len(keys))
	for _, k := range keys {
		out = append(out, byKey[k])
	}
	return out
}

// LookupArtist resolves a displayed artist string back to its vocabulary
// entry. The value must equal the entry's form in the requested language
// exactly as offered.
func (v GuessVocabulary) LookupArtist(value string, useAlternate bool) (BilingualText, bool) {
	return lookup(v.Artists, value, useAlternate)
}

// LookupTitle resolves a displayed title string back to its vocabulary entry.
func (v GuessVocabulary) LookupTitle(value string, useAlternate bool) (BilingualText, bool) {
	return lookup(v.Titles, value, useAlternate)
}

func lookup(list []BilingualText, value string, useAlternate bool) (BilingualText, bool) {
	for _, t := range list {
		if t.In(useAlternate) == value {
			return t, true
		}
	}
	return BilingualText{}, false
}

// HasArtist reports membership by exact original form.
func (v GuessVocabulary) HasArtist(original string) bool {
	return contains(v.Artists, original)
}

// HasTitle reports membership by exact original form.
func (v GuessVocabulary) HasTitle(original string) bool {
	return contains(v.Titles, original)
}

func contains(list []BilingualText, original string) bool {
	for _, t := range list {
		if t.Original == original {
			return true
		}
	}
	return false
}
