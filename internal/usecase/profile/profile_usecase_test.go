package profile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/repository/memory"
	"github.com/gdugdh24/studymatch-backend/internal/usecase/match"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRegenerator struct {
	calls []uuid.UUID
	err   error
}

func (s *stubRegenerator) RegenerateForUser(_ context.Context, userID uuid.UUID) (*match.Result, error) {
	s.calls = append(s.calls, userID)
	if s.err != nil {
		return nil, s.err
	}
	return &match.Result{UserID: userID, Created: 1}, nil
}

func TestUpsertProfile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	store := memory.NewStore()
	regen := &stubRegenerator{}
	uc := NewProfileUseCase(store.Profiles(), regen, zap.NewNop())

	res, err := uc.UpsertProfile(ctx, userID, &UpsertProfileRequest{
		DisplayName: "Ada",
		Courses:     []string{" CS101 ", "cs101", ""},
		Interests:   []string{"UI/UX"},
		Major:       "CS",
	})
	require.NoError(t, err)
	assert.True(t, res.Regenerated)
	assert.Equal(t, 1, res.Matches.Created)
	assert.Equal(t, []uuid.UUID{userID}, regen.calls)

	saved, err := uc.GetMyProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []string{"CS101"}, saved.Courses)
	assert.Equal(t, "CS", saved.Major)
}

func TestUpsertProfile_RegenerationFailureIsReported(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userID := uuid.New()

	store := memory.NewStore()
	regen := &stubRegenerator{err: errors.Join(domain.ErrStoreUnavailable, errors.New("timeout"))}
	uc := NewProfileUseCase(store.Profiles(), regen, zap.NewNop())

	res, err := uc.UpsertProfile(ctx, userID, &UpsertProfileRequest{DisplayName: "Ada"})
	require.NoError(t, err)
	assert.False(t, res.Regenerated)
	assert.Nil(t, res.Matches)

	_, err = uc.GetProfileByUserID(ctx, userID)
	assert.NoError(t, err)
}

func TestUpsertProfile_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  UpsertProfileRequest
	}{
		{name: "missing name", req: UpsertProfileRequest{}},
		{name: "short name", req: UpsertProfileRequest{DisplayName: "A"}},
		{name: "long course", req: UpsertProfileRequest{DisplayName: "Ada", Courses: []string{strings.Repeat("x", 101)}}},
		{name: "long major", req: UpsertProfileRequest{DisplayName: "Ada", Major: strings.Repeat("x", 101)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			regen := &stubRegenerator{}
			uc := NewProfileUseCase(memory.NewStore().Profiles(), regen, zap.NewNop())

			_, err := uc.UpsertProfile(context.Background(), uuid.New(), &tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Empty(t, regen.calls)
		})
	}
}

func TestGetProfile_NotFound(t *testing.T) {
	t.Parallel()

	uc := NewProfileUseCase(memory.NewStore().Profiles(), nil, zap.NewNop())
	_, err := uc.GetMyProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}
