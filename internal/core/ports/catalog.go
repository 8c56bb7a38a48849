package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/vekt0r-github/osu-heardle/internal/core/domain"
)

// ErrNoEligibleCandidate indicates no usable song could be produced: the
// upstream fetch failed, the pool filtered down to nothing, or every retry
// collided with an already-played song. Recoverable; surfaced to the player
// as "try again later".
var ErrNoEligibleCandidate = errors.New("no eligible candidate")

// NoEligibleCandidateError provides context for a failed round selection.
type NoEligibleCandidateError struct {
	Room    string
	Retries int
	Err     error
}

func (e NoEligibleCandidateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("no eligible candidate for room %q after %d retries: %v", e.Room, e.Retries, e.Err)
	}
	return fmt.Sprintf("no eligible candidate for room %q after %d retries", e.Room, e.Retries)
}

func (e NoEligibleCandidateError) Is(target error) bool {
	return target == ErrNoEligibleCandidate
}

func (e NoEligibleCandidateError) Unwrap() error {
	return e.Err
}

// CatalogProvider fetches a candidate pool from the upstream music catalog.
// The seed string fully determines which slice of the catalog is requested,
// so clients sharing a seed observe the same pool. Implementations must
// return an error rather than a partial or empty pool.
type CatalogProvider interface {
	FetchCandidatePool(ctx context.Context, seed string) ([]domain.CatalogRecord, error)
}
