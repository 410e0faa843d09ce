package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/repository"
	"github.com/gdugdh24/studymatch-backend/internal/usecase/match"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Regenerator refreshes stored suggestions after a profile changes.
type Regenerator interface {
	RegenerateForUser(ctx context.Context, userID uuid.UUID) (*match.Result, error)
}

type ProfileUseCase struct {
	profileRepo repository.ProfileRepository
	regenerator Regenerator
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewProfileUseCase(
	profileRepo repository.ProfileRepository,
	regenerator Regenerator,
	logger *zap.Logger,
) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: profileRepo,
		regenerator: regenerator,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		logger:      logger,
	}
}

// UpsertProfileRequest replaces the caller's profile.
type UpsertProfileRequest struct {
	DisplayName     string   `json:"display_name" validate:"required,min=2,max=100"`
	Courses         []string `json:"courses" validate:"max=50,dive,max=100"`
	Interests       []string `json:"interests" validate:"max=50,dive,max=100"`
	Major           string   `json:"major" validate:"max=100"`
	Year            string   `json:"year" validate:"max=30"`
	LearningStyle   string   `json:"learning_style" validate:"max=50"`
	StudyPreference string   `json:"study_preference" validate:"max=50"`
}

// UpsertResult carries the saved profile and the outcome of the
// regeneration it triggered.
type UpsertResult struct {
	Profile *domain.Profile `json:"profile"`
	// Regenerated is false when the profile was saved but suggestions could
	// not be refreshed; a later regeneration will catch up.
	Regenerated bool          `json:"regenerated"`
	Matches     *match.Result `json:"matches,omitempty"`
}

// ValidationError wraps request validation failures.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid profile: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// GetMyProfile returns current user's profile
func (uc *ProfileUseCase) GetMyProfile(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, userID)
}

// GetProfileByUserID returns another user's profile
func (uc *ProfileUseCase) GetProfileByUserID(ctx context.Context, targetUserID uuid.UUID) (*domain.Profile, error) {
	return uc.profileRepo.GetByUserID(ctx, targetUserID)
}

// UpsertProfile saves the profile and regenerates the user's suggestions.
// A failed regeneration is logged and reported in the result, not returned.
func (uc *ProfileUseCase) UpsertProfile(ctx context.Context, userID uuid.UUID, req *UpsertProfileRequest) (*UpsertResult, error) {
	if err := uc.validate.StructCtx(ctx, req); err != nil {
		return nil, &ValidationError{Err: err}
	}

	profile := &domain.Profile{
		UserID:          userID,
		DisplayName:     req.DisplayName,
		Courses:         req.Courses,
		Interests:       req.Interests,
		Major:           req.Major,
		Year:            req.Year,
		LearningStyle:   req.LearningStyle,
		StudyPreference: req.StudyPreference,
	}

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, fmt.Errorf("%w: save profile: %w", domain.ErrStoreUnavailable, err)
	}

	result := &UpsertResult{Profile: profile}
	if uc.regenerator == nil {
		return result, nil
	}

	res, err := uc.regenerator.RegenerateForUser(ctx, userID)
	if err != nil {
		uc.logger.Warn("regeneration after profile update failed",
			zap.String("user_id", userID.String()),
			zap.Bool("store_unavailable", errors.Is(err, domain.ErrStoreUnavailable)),
			zap.Error(err),
		)
		return result, nil
	}

	result.Regenerated = true
	result.Matches = res
	return result, nil
}
