package match

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/matching"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SuggestionView is a stored suggestion as seen by one of its users.
type SuggestionView struct {
	matching.Candidate
	SuggestionID int64              `json:"suggestion_id"`
	Status       domain.MatchStatus `json:"status"`
	Reasons      []string           `json:"reasons"`
}

// ListSuggestions returns the stored rows involving userID ordered for
// display. Score and status come from the row; the breakdown is recomputed
// from current profiles. Rows whose counterpart no longer has a profile are
// left out.
func (uc *MatchUseCase) ListSuggestions(ctx context.Context, userID uuid.UUID, status *domain.MatchStatus) ([]SuggestionView, error) {
	subject, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := uc.matchRepo.ListForUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("%w: list suggestions: %w", domain.ErrStoreUnavailable, err)
	}

	views := make([]SuggestionView, 0, len(rows))
	for _, row := range rows {
		other, ok := row.GetOtherUserID(userID)
		if !ok {
			continue
		}
		p, err := uc.profileRepo.GetByUserID(ctx, other)
		if errors.Is(err, domain.ErrProfileNotFound) {
			uc.logger.Debug("suggestion counterpart has no profile",
				zap.Int64("suggestion_id", row.ID),
				zap.String("other_user_id", other.String()),
			)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: load profile: %w", domain.ErrStoreUnavailable, err)
		}

		c, _ := matching.Evaluate(subject, p)
		c.Score = row.CompatibilityScore
		views = append(views, SuggestionView{
			Candidate:    c,
			SuggestionID: row.ID,
			Status:       row.Status,
			Reasons:      row.Reasons,
		})
	}

	sortViews(views)
	return views, nil
}

// Preview scores every other profile against userID without touching
// stored suggestions and returns the qualifying ones ranked.
func (uc *MatchUseCase) Preview(ctx context.Context, userID uuid.UUID, limit int) ([]matching.Candidate, error) {
	subject, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	others, err := uc.profileRepo.ListExcept(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load candidates: %w", domain.ErrStoreUnavailable, err)
	}

	out := make([]matching.Candidate, 0, len(others))
	for _, p := range others {
		if c, ok := matching.Evaluate(subject, p); ok {
			out = append(out, c)
		}
	}
	matching.Rank(out)

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func sortViews(views []SuggestionView) {
	sort.SliceStable(views, func(i, j int) bool {
		return matching.Less(views[i].Candidate, views[j].Candidate)
	})
}
