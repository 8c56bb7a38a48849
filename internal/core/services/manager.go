package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/ports"
)

// ErrInvalidRoomCode rejects codes that are not 5 alphanumerics.
var ErrInvalidRoomCode = errors.New("services: invalid room code")

var roomCodePattern = regexp.MustCompile(`^[0-9a-zA-Z]{5}$`)

// Manager hands out one Session per room code. Codes are case-normalized to
// uppercase before any seeding, so "abcde" and "ABCDE" share a room.
type Manager struct {
	selector *Selector
	history  ports.HistoryRepository
	persist  func(roomCode string, summary domain.RoundSummary)

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager constructs a Manager. history may be nil for ephemeral rooms;
// persist is forwarded to each session with its room code bound.
func NewManager(selector *Selector, history ports.HistoryRepository, persist func(string, domain.RoundSummary)) *Manager {
	return &Manager{
		selector: selector,
		history:  history,
		persist:  persist,
		sessions: make(map[string]*Session),
	}
}

// Session returns the session for a room code, creating it on first use and
// preloading its ledger from the history repository.
func (m *Manager) Session(ctx context.Context, code string) (*Session, error) {
	if !roomCodePattern.MatchString(code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRoomCode, code)
	}
	room := strings.ToUpper(code)

	m.mu.Lock()
	defer m.mu.Unlock()

	if sess, ok := m.sessions[room]; ok {
		return sess, nil
	}

	ledger := domain.NewLedger()
	if m.history != nil {
		summaries, err := m.history.Load(ctx, room)
		if err != nil {
			return nil, fmt.Errorf("manager: load history for %s: %w", room, err)
		}
		for _, s := range summaries {
			if err := ledger.Append(s); err != nil && !errors.Is(err, domain.ErrDuplicateRound) {
				return nil, fmt.Errorf("manager: restore history for %s: %w", room, err)
			}
		}
	}

	var persist func(domain.RoundSummary)
	if m.persist != nil {
		persist = func(summary domain.RoundSummary) { m.persist(room, summary) }
	}

	sess := NewSession(room, m.selector, ledger, persist)
	m.sessions[room] = sess
	return sess, nil
}
