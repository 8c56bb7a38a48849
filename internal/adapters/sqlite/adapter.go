// Package sqlite provides a SQLite-backed implementation of the history port.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
	"github.com/vekt0r-github/osu-heardle/internal/core/ports"
)

// Adapter implements the history port for SQLite.
//
// Each completed round is stored as one row, its full summary serialized as
// JSON. The (room_code, song_id) unique index makes appends idempotent: a
// replayed round's second completion is silently ignored.
type Adapter struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.HistoryRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

// Load returns a room's completed rounds in the order they were played.
func (a *Adapter) Load(ctx context.Context, roomCode string) ([]domain.RoundSummary, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT summary FROM rounds
		WHERE room_code = ?
		ORDER BY position ASC
	`, roomCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load round history: %w", err)
	}
	defer rows.Close()

	var summaries []domain.RoundSummary
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan round row: %w", err)
		}
		var summary domain.RoundSummary
		if err := json.Unmarshal(raw, &summary); err != nil {
			return nil, fmt.Errorf("failed to decode round summary: %w", err)
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate round rows: %w", err)
	}

	return summaries, nil
}

// Append stores one completed round. Appending the same song to the same
// room again is a no-op.
func (a *Adapter) Append(ctx context.Context, roomCode string, summary domain.RoundSummary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode round summary: %w", err)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Position keeps Load ordering stable even if rows are ever vacuumed
	// into new rowids.
	var next int
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(position), 0) + 1 FROM rounds WHERE room_code = ?
	`, roomCode).Scan(&next); err != nil {
		return fmt.Errorf("failed to compute round position: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO rounds (id, room_code, song_id, position, summary)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(room_code, song_id) DO NOTHING
	`, uuid.NewString(), roomCode, summary.Song.ID, next, raw); err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("transaction commit failed: %w", err)
	}

	return nil
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS rounds (
		id TEXT PRIMARY KEY,
		room_code TEXT NOT NULL,
		song_id INTEGER NOT NULL,
		position INTEGER NOT NULL,
		summary TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(room_code, song_id)
	);

	CREATE INDEX IF NOT EXISTS idx_rounds_room ON rounds(room_code, position);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}
