package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) repository.MatchRepository {
	return &matchRepository{db: db}
}

const matchColumns = `
	id, user_a_id, user_b_id, compatibility_score, status, reasons, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (*domain.MatchSuggestion, error) {
	var m domain.MatchSuggestion
	err := row.Scan(
		&m.ID, &m.UserAID, &m.UserBID, &m.CompatibilityScore, &m.Status,
		pq.Array(&m.Reasons), &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) FindByPair(ctx context.Context, pair domain.PairKey) (*domain.MatchSuggestion, error) {
	// Ensure user_a_id < user_b_id
	pair = domain.NewPairKey(pair.A, pair.B)

	query := `SELECT ` + matchColumns + ` FROM match_suggestions WHERE user_a_id = $1 AND user_b_id = $2`
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, pair.A, pair.B))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSuggestionNotFound
		}
		return nil, err
	}
	return m, nil
}

func (r *matchRepository) Create(ctx context.Context, match *domain.MatchSuggestion) error {
	// Ensure user_a_id < user_b_id for the unique pair constraint
	pair := domain.NewPairKey(match.UserAID, match.UserBID)
	if match.Status == "" {
		match.Status = domain.MatchStatusSuggestion
	}
	if match.Reasons == nil {
		match.Reasons = []string{}
	}

	query := `
		INSERT INTO match_suggestions (user_a_id, user_b_id, compatibility_score, status, reasons)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_a_id, user_b_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, pair.A, pair.B, match.CompatibilityScore, match.Status, pq.Array(match.Reasons)).
		Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return domain.ErrPairWriteConflict
		}
		return err
	}

	match.UserAID = pair.A
	match.UserBID = pair.B
	return nil
}

func (r *matchRepository) UpdateScore(ctx context.Context, id int64, score int, reasons []string) error {
	if reasons == nil {
		reasons = []string{}
	}
	query := `
		UPDATE match_suggestions
		SET compatibility_score = $1, reasons = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $3 AND status = $4
	`
	result, err := r.db.ExecContext(ctx, query, score, pq.Array(reasons), id, domain.MatchStatusSuggestion)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *matchRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM match_suggestions WHERE id = $1 AND status = $2`
	result, err := r.db.ExecContext(ctx, query, id, domain.MatchStatusSuggestion)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *matchRepository) ListForUser(ctx context.Context, userID uuid.UUID, status *domain.MatchStatus) ([]*domain.MatchSuggestion, error) {
	var statusFilter sql.NullString
	if status != nil {
		statusFilter = sql.NullString{String: string(*status), Valid: true}
	}

	query := `SELECT ` + matchColumns + `
		FROM match_suggestions
		WHERE (user_a_id = $1 OR user_b_id = $1)
		  AND ($2::text IS NULL OR status = $2)
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, userID, statusFilter)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []*domain.MatchSuggestion
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// expectOneRow maps "no row touched" to a pair conflict: the row is gone or
// its status moved past suggestion.
func expectOneRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrPairWriteConflict
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
