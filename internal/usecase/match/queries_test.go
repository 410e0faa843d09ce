package match

import (
	"context"
	"testing"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/repository/memory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRanking(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	putProfile(t, store, userX, []string{"CS101", "CS102"}, nil)
	putProfile(t, store, userY, nil, []string{"CS101"})
	putProfile(t, store, userZ, nil, []string{"CS101", "CS102"})
	putProfile(t, store, uuid.MustParse("00000000-0000-0000-0000-000000000004"), nil, []string{"Painting"})
	return store
}

func TestListSuggestions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := seedRanking(t)
	uc := newUseCase(store.Profiles(), store.Matches(), nil)
	_, err := uc.RegenerateForUser(ctx, userX)
	require.NoError(t, err)

	views, err := uc.ListSuggestions(ctx, userX, nil)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, userZ, views[0].Profile.UserID)
	assert.Equal(t, 100, views[0].Score)
	assert.Equal(t, []string{"CS101", "CS102"}, views[0].Breakdown.Teaches)
	assert.Equal(t, userY, views[1].Profile.UserID)
	assert.Equal(t, 50, views[1].Score)
	assert.Equal(t, domain.MatchStatusSuggestion, views[1].Status)

	require.NoError(t, store.SetStatus(views[1].SuggestionID, domain.MatchStatusAccepted))
	accepted := domain.MatchStatusAccepted
	views, err = uc.ListSuggestions(ctx, userX, &accepted)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, userY, views[0].Profile.UserID)
}

func TestListSuggestions_UsesStoredScore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := seedRanking(t)
	m := &domain.MatchSuggestion{UserAID: userX, UserBID: userY, CompatibilityScore: 10}
	require.NoError(t, store.Matches().Create(ctx, m))
	require.NoError(t, store.SetStatus(m.ID, domain.MatchStatusAccepted))

	uc := newUseCase(store.Profiles(), store.Matches(), nil)
	views, err := uc.ListSuggestions(ctx, userY, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, 10, views[0].Score)
	assert.Equal(t, userX, views[0].Profile.UserID)
}

func TestListSuggestions_SkipsMissingCounterpart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := seedRanking(t)
	uc := newUseCase(store.Profiles(), store.Matches(), nil)
	_, err := uc.RegenerateForUser(ctx, userX)
	require.NoError(t, err)

	store.DeleteProfile(userZ)
	views, err := uc.ListSuggestions(ctx, userX, nil)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, userY, views[0].Profile.UserID)
}

func TestListSuggestions_NoProfile(t *testing.T) {
	t.Parallel()

	store := memory.NewStore()
	uc := newUseCase(store.Profiles(), store.Matches(), nil)
	_, err := uc.ListSuggestions(context.Background(), userX, nil)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestPreview(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := seedRanking(t)
	uc := newUseCase(store.Profiles(), store.Matches(), nil)

	got, err := uc.Preview(ctx, userX, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, userZ, got[0].Profile.UserID)
	assert.Equal(t, userY, got[1].Profile.UserID)

	got, err = uc.Preview(ctx, userX, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, userZ, got[0].Profile.UserID)

	// preview never writes
	assert.Empty(t, rowsFor(t, store, userX))
}

func TestPreview_SameScoreOnEitherSideOfSubject(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := memory.NewStore()
	require.NoError(t, store.Profiles().Upsert(ctx, &domain.Profile{
		UserID:          userY,
		Courses:         []string{"CS101"},
		Interests:       []string{"Physics"},
		Major:           "CS",
		Year:            "2",
		LearningStyle:   "visual",
		StudyPreference: "online",
	}))
	putProfile(t, store, userX, nil, []string{"CS101"})
	putProfile(t, store, userZ, nil, []string{"CS101"})

	uc := newUseCase(store.Profiles(), store.Matches(), nil)
	got, err := uc.Preview(ctx, userY, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, userX, got[0].Profile.UserID)
	assert.Equal(t, userZ, got[1].Profile.UserID)
	for _, c := range got {
		assert.Equal(t, 50, c.Score)
		assert.Equal(t, []string{"mutual_teaching"}, c.Breakdown.Reasons)
		assert.Equal(t, []string{"CS101"}, c.Breakdown.Teaches)
	}
}
