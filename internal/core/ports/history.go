package ports

import (
	"context"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
)

// HistoryRepository loads and appends per-room round summaries. The core only
// needs serialize-on-append and deserialize-on-load; any storage backend that
// can round-trip opaque summary records qualifies. Append must be idempotent
// on (room, song id).
type HistoryRepository interface {
	Load(ctx context.Context, roomCode string) ([]domain.RoundSummary, error)
	Append(ctx context.Context, roomCode string, summary domain.RoundSummary) error
}
