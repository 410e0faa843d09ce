package match

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gdugdh24/studymatch-backend/internal/config"
	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/matching"
	"github.com/gdugdh24/studymatch-backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Locker serializes regenerations of the same user across processes.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

type MatchUseCase struct {
	profileRepo repository.ProfileRepository
	matchRepo   repository.MatchRepository
	locker      Locker
	logger      *zap.Logger
	workers     int
	userTimeout time.Duration
}

// NewMatchUseCase wires the regenerator. locker may be nil.
func NewMatchUseCase(
	profileRepo repository.ProfileRepository,
	matchRepo repository.MatchRepository,
	locker Locker,
	logger *zap.Logger,
	cfg config.MatchingConfig,
) *MatchUseCase {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &MatchUseCase{
		profileRepo: profileRepo,
		matchRepo:   matchRepo,
		locker:      locker,
		logger:      logger,
		workers:     workers,
		userTimeout: cfg.UserTimeout,
	}
}

// Result counts what one RegenerateForUser call did.
type Result struct {
	UserID     uuid.UUID `json:"user_id"`
	Candidates int       `json:"candidates"`
	Qualifying int       `json:"qualifying"`
	Created    int       `json:"created"`
	Updated    int       `json:"updated"`
	Deleted    int       `json:"deleted"`
	Unchanged  int       `json:"unchanged"`
	// Preserved counts rows left alone because their status moved past
	// suggestion.
	Preserved int `json:"preserved"`
	// Skipped counts pairs whose write failed and was not retried.
	Skipped int `json:"skipped"`
}

// UserFailure records a user whose regeneration failed during RegenerateAll.
type UserFailure struct {
	UserID uuid.UUID `json:"user_id"`
	Err    error     `json:"-"`
	Error  string    `json:"error"`
}

type BatchResult struct {
	Users     int           `json:"users"`
	Succeeded int           `json:"succeeded"`
	Failures  []UserFailure `json:"failures"`
	Totals    Result        `json:"totals"`
}

type target struct {
	score   int
	reasons []string
}

// RegenerateForUser recomputes every qualifying pair involving userID and
// makes the stored suggestion rows match. A user without a profile is a
// no-op. Load failures return an error wrapping domain.ErrStoreUnavailable;
// failures on a single pair are logged and skipped. On cancellation the
// result is nil and rows already written stay written.
func (uc *MatchUseCase) RegenerateForUser(ctx context.Context, userID uuid.UUID) (*Result, error) {
	if uc.userTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.userTimeout)
		defer cancel()
	}

	if uc.locker != nil {
		unlock, err := uc.locker.Lock(ctx, "lock:regen:"+userID.String())
		if err != nil {
			return nil, fmt.Errorf("%w: lock regeneration: %w", domain.ErrStoreUnavailable, err)
		}
		defer unlock()
	}

	res := &Result{UserID: userID}
	log := uc.logger.With(zap.String("user_id", userID.String()))

	subject, err := uc.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			log.Debug("no profile, nothing to regenerate")
			return res, nil
		}
		return nil, fmt.Errorf("%w: load profile: %w", domain.ErrStoreUnavailable, err)
	}

	candidates, err := uc.profileRepo.ListExcept(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load candidates: %w", domain.ErrStoreUnavailable, err)
	}

	existing, err := uc.matchRepo.ListForUser(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: load suggestions: %w", domain.ErrStoreUnavailable, err)
	}

	res.Candidates = len(candidates)
	wanted := make(map[uuid.UUID]target, len(candidates))
	for _, c := range candidates {
		if !matching.Qualifies(subject, c) {
			continue
		}
		score, detail := matching.ScorePair(subject, c)
		wanted[c.UserID] = target{score: score, reasons: detail.Reasons}
	}
	res.Qualifying = len(wanted)

	rows := make(map[uuid.UUID]*domain.MatchSuggestion, len(existing))
	for _, row := range existing {
		other, ok := row.GetOtherUserID(userID)
		if !ok {
			continue
		}
		rows[other] = row

		if _, keep := wanted[other]; keep {
			continue
		}
		if !row.Editable() {
			res.Preserved++
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := uc.matchRepo.Delete(ctx, row.ID); err != nil {
			uc.skipPair(log, other, "delete", err)
			res.Skipped++
			continue
		}
		res.Deleted++
	}

	for _, c := range candidates {
		t, ok := wanted[c.UserID]
		if !ok {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		uc.reconcilePair(ctx, log, domain.NewPairKey(userID, c.UserID), rows[c.UserID], t, res)
	}

	log.Info("regenerated matches",
		zap.Int("candidates", res.Candidates),
		zap.Int("qualifying", res.Qualifying),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
		zap.Int("deleted", res.Deleted),
		zap.Int("preserved", res.Preserved),
		zap.Int("skipped", res.Skipped),
	)
	return res, nil
}

func (uc *MatchUseCase) reconcilePair(
	ctx context.Context,
	log *zap.Logger,
	pair domain.PairKey,
	row *domain.MatchSuggestion,
	t target,
	res *Result,
) {
	other, _ := pair.Other(res.UserID)

	if row == nil {
		m := &domain.MatchSuggestion{
			UserAID:            pair.A,
			UserBID:            pair.B,
			CompatibilityScore: t.score,
			Status:             domain.MatchStatusSuggestion,
			Reasons:            t.reasons,
		}
		err := uc.matchRepo.Create(ctx, m)
		if err == nil {
			res.Created++
			return
		}
		if !errors.Is(err, domain.ErrPairWriteConflict) {
			uc.skipPair(log, other, "create", err)
			res.Skipped++
			return
		}
		// Someone else created the pair first; fall back to updating it.
		row, err = uc.matchRepo.FindByPair(ctx, pair)
		if err != nil {
			uc.skipPair(log, other, "reload", err)
			res.Skipped++
			return
		}
	}

	if !row.Editable() {
		res.Preserved++
		return
	}
	if row.CompatibilityScore == t.score && slices.Equal(row.Reasons, t.reasons) {
		res.Unchanged++
		return
	}
	if err := uc.matchRepo.UpdateScore(ctx, row.ID, t.score, t.reasons); err != nil {
		uc.skipPair(log, other, "update", err)
		res.Skipped++
		return
	}
	res.Updated++
}

func (uc *MatchUseCase) skipPair(log *zap.Logger, other uuid.UUID, op string, err error) {
	log.Warn("skipping pair",
		zap.String("other_user_id", other.String()),
		zap.String("op", op),
		zap.Bool("conflict", errors.Is(err, domain.ErrPairWriteConflict)),
		zap.Error(err),
	)
}

// RegenerateAll runs RegenerateForUser for every profile on a bounded worker
// pool. A failing user is recorded and does not stop the batch. When ctx is
// cancelled no new users are started and ctx.Err() is returned with the
// partial result.
func (uc *MatchUseCase) RegenerateAll(ctx context.Context) (*BatchResult, error) {
	ids, err := uc.profileRepo.ListUserIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %w", domain.ErrStoreUnavailable, err)
	}

	batch := &BatchResult{Users: len(ids), Failures: []UserFailure{}}
	var mu sync.Mutex

	var g errgroup.Group
	g.SetLimit(uc.workers)

	started := time.Now()
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := uc.RegenerateForUser(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				uc.logger.Error("regeneration failed", zap.String("user_id", id.String()), zap.Error(err))
				batch.Failures = append(batch.Failures, UserFailure{UserID: id, Err: err, Error: err.Error()})
				return nil
			}
			batch.Succeeded++
			batch.Totals.add(res)
			return nil
		})
	}
	_ = g.Wait()

	uc.logger.Info("regenerated all matches",
		zap.Int("users", batch.Users),
		zap.Int("succeeded", batch.Succeeded),
		zap.Int("failed", len(batch.Failures)),
		zap.Duration("took", time.Since(started)),
	)

	if err := ctx.Err(); err != nil {
		return batch, err
	}
	return batch, nil
}

func (r *Result) add(o *Result) {
	r.Candidates += o.Candidates
	r.Qualifying += o.Qualifying
	r.Created += o.Created
	r.Updated += o.Updated
	r.Deleted += o.Deleted
	r.Unchanged += o.Unchanged
	r.Preserved += o.Preserved
	r.Skipped += o.Skipped
}
