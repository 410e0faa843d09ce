package repository

import (
	"context"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/google/uuid"
)

// ProfileRepository returns profiles already normalized: Courses and
// Interests are non-nil sets of non-empty strings.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	ListExcept(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error)
	ListUserIDs(ctx context.Context) ([]uuid.UUID, error)
	Upsert(ctx context.Context, profile *domain.Profile) error
}
