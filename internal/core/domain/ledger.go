package domain

import "errors"

// ErrDuplicateRound signals a ledger append for a song that already has an
// entry. Callers treat it as an idempotent no-op, never a fault.
var ErrDuplicateRound = errors.New("domain: round already recorded")

// Ledger is the append-only record of completed rounds for one room. Entries
// are never reordered or mutated after append; the ledger both renders the
// cumulative score and supplies the exclusion set for future selections.
type Ledger struct {
	entries []RoundSummary
	played  map[int]int // song id -> index into entries
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{played: make(map[int]int)}
}

// Append records a completed round. Appending a second summary for the same
// song id returns ErrDuplicateRound and leaves the ledger unchanged, so a
// replayed round can never double-score.
func (l *Ledger) Append(s RoundSummary) error {
	if _, ok := l.played[s.Song.ID]; ok {
		return ErrDuplicateRound
	}
	l.played[s.Song.ID] = len(l.entries)
	l.entries = append(l.entries, s)
	return nil
}

// IsPlayed reports whether a song already has a ledger entry.
func (l *Ledger) IsPlayed(songID int) bool {
	_, ok := l.played[songID]
	return ok
}

// Entry returns the summary recorded for a song, if any.
func (l *Ledger) Entry(songID int) (RoundSummary, bool) {
	i, ok := l.played[songID]
	if !ok {
		return RoundSummary{}, false
	}
	return l.entries[i], true
}

// PlayedIDs returns the exclusion set for round selection.
func (l *Ledger) PlayedIDs() map[int]struct{} {
	ids := make(map[int]struct{}, len(l.played))
	for id := range l.played {
		ids[id] = struct{}{}
	}
	return ids
}

// Entries returns the summaries in insertion order. The slice is a copy; the
// ledger's own entries stay immutable.
func (l *Ledger) Entries() []RoundSummary {
	out := make([]RoundSummary, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len is the number of completed rounds.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// TotalScore is the sum of all entry scores.
func (l *Ledger) TotalScore() int {
	total := 0
	for _, e := range l.entries {
		total += e.Score
	}
	return total
}
