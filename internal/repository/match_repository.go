package repository

import (
	"context"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/google/uuid"
)

// MatchRepository stores match suggestions keyed by an unordered pair of
// users. Implementations serialize writes on a pair: at most one row exists
// per pair, and a Create racing another Create for the same pair fails with
// domain.ErrPairWriteConflict.
type MatchRepository interface {
	// FindByPair returns domain.ErrSuggestionNotFound when no row exists.
	FindByPair(ctx context.Context, pair domain.PairKey) (*domain.MatchSuggestion, error)
	// Create inserts a row for match.Pair() and fills ID and timestamps.
	Create(ctx context.Context, match *domain.MatchSuggestion) error
	// UpdateScore rewrites score and reasons while the row is still a
	// suggestion; otherwise it returns domain.ErrPairWriteConflict.
	UpdateScore(ctx context.Context, id int64, score int, reasons []string) error
	// Delete removes a row that is still a suggestion; otherwise it returns
	// domain.ErrPairWriteConflict.
	Delete(ctx context.Context, id int64) error
	// ListForUser returns rows involving userID, optionally filtered by status.
	ListForUser(ctx context.Context, userID uuid.UUID, status *domain.MatchStatus) ([]*domain.MatchSuggestion, error)
}
