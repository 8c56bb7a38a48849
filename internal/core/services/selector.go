package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/ports"
	"github.com/vekt0r-github/osu-heardle/internal/random"
)

const (
	// DefaultPopularityExponent biases selection toward popular songs while
	// keeping tail entries reachable. Hand-tuned constant carried over from
	// the deployed game; do not re-derive.
	DefaultPopularityExponent = 0.5

	// DefaultMaxRetries bounds re-selection when a draw collides with an
	// already-played song.
	DefaultMaxRetries = 10

	// DefaultAudioPathPattern locates the 30-second preview clip for a song.
	DefaultAudioPathPattern = "//b.ppy.sh/preview/%d.mp3"
)

// SelectorConfig tunes round selection. Zero values take the defaults above.
type SelectorConfig struct {
	PopularityExponent float64
	MaxRetries         int
	AudioPathPattern   string
}

// Selector picks one song plus a guess vocabulary for a round, reproducibly
// for everyone sharing a room code.
type Selector struct {
	catalog      ports.CatalogProvider
	exponent     float64
	maxRetries   int
	audioPattern string
}

// NewSelector constructs a Selector over a catalog provider.
func NewSelector(catalog ports.CatalogProvider, cfg SelectorConfig) *Selector {
	if cfg.PopularityExponent == 0 {
		cfg.PopularityExponent = DefaultPopularityExponent
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.AudioPathPattern == "" {
		cfg.AudioPathPattern = DefaultAudioPathPattern
	}
	return &Selector{
		catalog:      catalog,
		exponent:     cfg.PopularityExponent,
		maxRetries:   cfg.MaxRetries,
		audioPattern: cfg.AudioPathPattern,
	}
}

// SelectRound derives a sub-seed from the room code and attempt index,
// fetches a candidate pool, and samples one song weighted by popularity.
// Songs in excluded are never returned: each collision retries with a fresh
// sub-seed (and therefore a fresh pool), bounded by the retry cap so an
// exhausted catalog cannot recurse forever.
func (s *Selector) SelectRound(ctx context.Context, roomCode string, attemptIndex int, excluded map[int]struct{}) (*domain.Round, error) {
	room := strings.ToUpper(roomCode)

	for retry := 0; retry <= s.maxRetries; retry++ {
		seed := fmt.Sprintf("%s|%d|%d", room, attemptIndex, retry)

		records, err := s.catalog.FetchCandidatePool(ctx, seed)
		if err != nil {
			return nil, ports.NoEligibleCandidateError{Room: room, Retries: retry, Err: err}
		}

		pool := mergePool(records)
		if len(pool) == 0 {
			return nil, ports.NoEligibleCandidateError{Room: room, Retries: retry}
		}

		weights := make([]float64, len(pool))
		for i, rec := range pool {
			weights[i] = math.Round(math.Pow(float64(rec.PopularityWeight), s.exponent))
		}

		g := random.New(seed)
		target, err := random.Choose(g, pool, weights)
		if err != nil {
			return nil, fmt.Errorf("selector: sample pool: %w", err)
		}

		if _, played := excluded[target.ID]; played {
			continue
		}

		song := domain.NewSong(target, fmt.Sprintf(s.audioPattern, target.ID))
		return domain.NewRound(song, domain.NewVocabulary(pool)), nil
	}

	return nil, ports.NoEligibleCandidateError{Room: room, Retries: s.maxRetries}
}

// mergePool drops ineligible records and folds duplicate records for the
// same song into one candidate, summing their popularity weights. First-seen
// order is preserved so sampling stays deterministic.
func mergePool(records []domain.CatalogRecord) []domain.CatalogRecord {
	index := make(map[int]int, len(records))
	pool := make([]domain.CatalogRecord, 0, len(records))

	for _, rec := range records {
		if !rec.Eligible {
			continue
		}
		if i, ok := index[rec.ID]; ok {
			pool[i].PopularityWeight += rec.PopularityWeight
			continue
		}
		index[rec.ID] = len(pool)
		pool = append(pool, rec)
	}
	return pool
}
