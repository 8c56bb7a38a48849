package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
)

var (
	// ErrSelectionInFlight rejects a round start while a previous selection
	// is still waiting on the catalog. At most one selection per room.
	ErrSelectionInFlight = errors.New("services: selection already in flight")

	// ErrRoundInProgress rejects abandoning an undecided round.
	ErrRoundInProgress = errors.New("services: current round still in progress")

	// ErrStaleSelection marks a selection result that resolved after a newer
	// round start superseded it. The result is discarded, never installed.
	ErrStaleSelection = errors.New("services: selection superseded")

	// ErrNoActiveRound rejects a guess before any round has started.
	ErrNoActiveRound = errors.New("services: no round started")

	// ErrUnknownRound rejects replaying a song with no history entry.
	ErrUnknownRound = errors.New("services: song not in room history")
)

// Snapshot is the read-only view handed to the presentation layer after each
// state-mutating call.
type Snapshot struct {
	Round      *domain.Round
	History    []domain.RoundSummary
	TotalScore int
	Loading    bool
}

// Session drives one room: it owns the current round, the history ledger,
// and the single-flight guard around catalog fetches. All methods are safe
// for concurrent use, though a room is normally driven by one actor.
type Session struct {
	room     string
	selector *Selector
	persist  func(domain.RoundSummary)

	mu       sync.Mutex
	ledger   *domain.Ledger
	round    *domain.Round
	attempt  int
	inFlight int
}

// NewSession creates a session over a preloaded ledger. persist is invoked
// (outside the session lock) once per newly completed round; nil disables
// persistence.
func NewSession(roomCode string, selector *Selector, ledger *domain.Ledger, persist func(domain.RoundSummary)) *Session {
	if ledger == nil {
		ledger = domain.NewLedger()
	}
	return &Session{
		room:     roomCode,
		selector: selector,
		persist:  persist,
		ledger:   ledger,
	}
}

// StartRound selects the next song for the room. It refuses to abandon an
// undecided round and to run two selections at once.
func (s *Session) StartRound(ctx context.Context) (*domain.Round, error) {
	return s.startRound(ctx, false)
}

// ForceStartRound starts a round even while another selection is pending or
// the current round is undecided. The superseded selection's result is
// discarded when it eventually resolves.
func (s *Session) ForceStartRound(ctx context.Context) (*domain.Round, error) {
	return s.startRound(ctx, true)
}

// The attempt counter is bumped before the fetch and doubles as a
// stale-response token: a selection whose token no longer matches the
// counter when it resolves has been superseded and must not overwrite the
// newer round.
func (s *Session) startRound(ctx context.Context, force bool) (*domain.Round, error) {
	s.mu.Lock()
	if !force {
		if s.inFlight > 0 {
			s.mu.Unlock()
			return nil, ErrSelectionInFlight
		}
		if s.round != nil && s.round.Status == domain.StatusActive && !s.ledger.IsPlayed(s.round.Song.ID) {
			s.mu.Unlock()
			return nil, ErrRoundInProgress
		}
	}
	s.attempt++
	token := s.attempt
	s.inFlight++
	excluded := s.ledger.PlayedIDs()
	s.mu.Unlock()

	round, err := s.selector.SelectRound(ctx, s.room, token, excluded)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight--
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.room, err)
	}
	if token != s.attempt {
		return nil, ErrStaleSelection
	}
	s.round = round
	return round, nil
}

// SubmitGuess records one guess against the current round. On the transition
// to a terminal state the round is summarized, appended to the ledger, and
// handed to the persistence hook. A replayed round completes without a
// second ledger entry or score.
func (s *Session) SubmitGuess(g domain.Guess) (*domain.Round, error) {
	s.mu.Lock()
	if s.round == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveRound
	}

	wasActive := s.round.Status == domain.StatusActive
	if err := s.round.SubmitGuess(g); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	var completed *domain.RoundSummary
	if wasActive && s.round.Status != domain.StatusActive {
		summary, err := domain.Summarize(s.round)
		if err != nil {
			s.mu.Unlock()
			return nil, fmt.Errorf("session %s: %w", s.room, err)
		}
		switch err := s.ledger.Append(summary); {
		case err == nil:
			completed = &summary
		case errors.Is(err, domain.ErrDuplicateRound):
			// replayed round, already scored
		default:
			s.mu.Unlock()
			return nil, fmt.Errorf("session %s: %w", s.room, err)
		}
	}
	round := s.round
	s.mu.Unlock()

	if completed != nil && s.persist != nil {
		s.persist(*completed)
	}
	return round, nil
}

// Replay re-opens a completed round from history for another run. Its song
// and vocabulary are restored exactly; finishing it again cannot re-score.
func (s *Session) Replay(songID int) (*domain.Round, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight > 0 {
		return nil, ErrSelectionInFlight
	}
	if s.round != nil && s.round.Status == domain.StatusActive && !s.ledger.IsPlayed(s.round.Song.ID) {
		return nil, ErrRoundInProgress
	}

	entry, ok := s.ledger.Entry(songID)
	if !ok {
		return nil, ErrUnknownRound
	}
	s.round = domain.NewRound(entry.Song, entry.Vocabulary)
	return s.round, nil
}

// Snapshot returns the current round, the ordered history, and the total
// score. The round is copied so the caller cannot race later mutations.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var round *domain.Round
	if s.round != nil {
		clone := *s.round
		clone.Guesses = make([]domain.Guess, len(s.round.Guesses))
		copy(clone.Guesses, s.round.Guesses)
		round = &clone
	}
	return Snapshot{
		Round:      round,
		History:    s.ledger.Entries(),
		TotalScore: s.ledger.TotalScore(),
		Loading:    s.inFlight > 0,
	}
}
