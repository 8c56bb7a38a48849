package domain

import "errors"

// ErrRoundActive rejects summarizing a round that has not reached a terminal
// state.
var ErrRoundActive = errors.New("domain: round still active")

// AttemptResult is the per-field correctness of one recorded attempt. A skip
// is a recorded attempt with both fields false and Skipped set; attempts the
// player never made simply have no row.
type AttemptResult struct {
	Artist  bool `json:"artist"`
	Title   bool `json:"title"`
	Skipped bool `json:"skipped,omitempty"`
}

// RoundSummary is the immutable ledger entry for a completed round. It keeps
// the round's vocabulary so a past round can be revisited in full.
type RoundSummary struct {
	Song       Song            `json:"song"`
	Vocabulary GuessVocabulary `json:"vocabulary"`
	Results    []AttemptResult `json:"results"`
	Score      int             `json:"score"`
}

// Summarize freezes a finished round into its ledger entry.
func Summarize(r *Round) (RoundSummary, error) {
	if r.Status == StatusActive {
		return RoundSummary{}, ErrRoundActive
	}

	results := make([]AttemptResult, 0, len(r.Guesses))
	for _, g := range r.Guesses {
		results = append(results, AttemptResult{
			Artist:  r.artistCorrect(g),
			Title:   r.titleCorrect(g),
			Skipped: g.IsSkip(),
		})
	}

	return RoundSummary{
		Song:       r.Song,
		Vocabulary: r.Vocabulary,
		Results:    results,
		Score:      r.Score(),
	}, nil
}
