package domain

import "testing"

func TestNewVocabulary_DedupAndSort(t *testing.T) {
	pool := []CatalogRecord{
		{ID: 1, Artist: Bilingual("nanahira", "ななひら"), Title: Bilingual("Berry Go!!", "")},
		{ID: 2, Artist: Bilingual("Nanahira", "ななひら"), Title: Bilingual("Monosugoi", "")},
		{ID: 3, Artist: Bilingual("Aitsuki Nakuru", ""), Title: Bilingual("berry go!!", "")},
	}

	v := NewVocabulary(pool)

	if got := len(v.Artists); got != 2 {
		t.Fatalf("expected 2 deduplicated artists, got %d", got)
	}
	if v.Artists[0].Original != "Aitsuki Nakuru" {
		t.Fatalf("artists not sorted case-insensitively: first is %q", v.Artists[0].Original)
	}
	// "nanahira" and "Nanahira" share the dedup key lower(original).
	if v.Artists[1].In(true) != "ななひら" {
		t.Fatalf("merged artist lost alternate form: %q", v.Artists[1].In(true))
	}

	if got := len(v.Titles); got != 2 {
		t.Fatalf("expected 2 deduplicated titles, got %d", got)
	}
	if v.Titles[0].Original != "berry go!!" && v.Titles[0].Original != "Berry Go!!" {
		t.Fatalf("unexpected first title %q", v.Titles[0].Original)
	}
}

func TestVocabulary_Lookup(t *testing.T) {
	v := NewVocabulary([]CatalogRecord{
		{ID: 1, Artist: Bilingual("ZUN", "上海アリス幻樂団"), Title: Bilingual("Necrofantasia", "ネクロファンタジア")},
	})

	tests := []struct {
		name         string
		value        string
		useAlternate bool
		wantOK       bool
	}{
		{name: "original form", value: "ZUN", useAlternate: false, wantOK: true},
		{name: "alternate form", value: "上海アリス幻樂団", useAlternate: true, wantOK: true},
		{name: "wrong language flag", value: "上海アリス幻樂団", useAlternate: false, wantOK: false},
		{name: "free text", value: "zun ", useAlternate: false, wantOK: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entry, ok := v.LookupArtist(tc.value, tc.useAlternate)
			if ok != tc.wantOK {
				t.Fatalf("lookup %q (alt=%v): ok=%v, want %v", tc.value, tc.useAlternate, ok, tc.wantOK)
			}
			if ok && entry.Original != "ZUN" {
				t.Fatalf("resolved wrong entry: %+v", entry)
			}
		})
	}
}

func TestVocabulary_Membership(t *testing.T) {
	v := NewVocabulary([]CatalogRecord{
		{ID: 1, Artist: Bilingual("Camellia", ""), Title: Bilingual("GHOST", "")},
	})

	if !v.HasArtist("Camellia") || !v.HasTitle("GHOST") {
		t.Fatal("expected membership by exact original form")
	}
	if v.HasArtist("camellia") {
		t.Fatal("membership must be exact, not case-folded")
	}
}
