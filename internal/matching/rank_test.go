package matching

import (
	"testing"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	id := func(s string) *domain.Profile {
		return &domain.Profile{UserID: uuid.MustParse(s)}
	}

	low := Candidate{Profile: id("00000000-0000-0000-0000-000000000001"), Score: 40, Completeness: 100}
	tieA := Candidate{Profile: id("00000000-0000-0000-0000-000000000003"), Score: 80, Completeness: 50}
	tieB := Candidate{Profile: id("00000000-0000-0000-0000-000000000002"), Score: 80, Completeness: 50}
	moreComplete := Candidate{Profile: id("00000000-0000-0000-0000-000000000009"), Score: 80, Completeness: 90}

	candidates := []Candidate{low, tieA, tieB, moreComplete}
	Rank(candidates)

	got := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		got = append(got, c.Profile.UserID)
	}
	assert.Equal(t, []uuid.UUID{
		moreComplete.Profile.UserID,
		tieB.Profile.UserID,
		tieA.Profile.UserID,
		low.Profile.UserID,
	}, got)
}

func TestEvaluate(t *testing.T) {
	subject := &domain.Profile{
		UserID:  uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Courses: []string{"CS101"},
	}
	other := &domain.Profile{
		UserID:    uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		Interests: []string{"cs101"},
		Major:     "CS",
	}

	c, ok := Evaluate(subject, other)
	assert.True(t, ok)
	assert.Equal(t, 55, c.Score)
	assert.Equal(t, 45, c.Completeness)
	assert.Same(t, other, c.Profile)

	_, ok = Evaluate(subject, &domain.Profile{UserID: uuid.New()})
	assert.False(t, ok)
}

func TestScorePairIsOrderIndependent(t *testing.T) {
	low := &domain.Profile{
		UserID:  uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Courses: []string{"CS101"},
	}
	high := &domain.Profile{
		UserID:    uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		Interests: []string{"CS101"},
		Major:     "Math",
	}

	s1, d1 := ScorePair(low, high)
	s2, d2 := ScorePair(high, low)
	assert.Equal(t, s1, s2)
	assert.Equal(t, d1, d2)

	// canonical order scores the lower id as the subject
	direct, _ := Score(low, high)
	assert.Equal(t, direct, s1)
	reverse, _ := Score(high, low)
	assert.NotEqual(t, reverse, s1)
}

func TestEvaluateScoresFromSubjectSide(t *testing.T) {
	t.Parallel()

	subject := &domain.Profile{
		UserID:          uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		Courses:         []string{"CS101"},
		Interests:       []string{"Physics"},
		Major:           "CS",
		Year:            "2",
		LearningStyle:   "visual",
		StudyPreference: "online",
	}
	below := &domain.Profile{
		UserID:    uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Interests: []string{"cs101"},
	}
	above := &domain.Profile{
		UserID:    uuid.MustParse("00000000-0000-0000-0000-000000000003"),
		Interests: []string{"cs101"},
	}

	lo, ok := Evaluate(subject, below)
	assert.True(t, ok)
	hi, ok := Evaluate(subject, above)
	assert.True(t, ok)

	for _, c := range []Candidate{lo, hi} {
		assert.Equal(t, 50, c.Score)
		assert.Equal(t, []string{ReasonMutualTeaching}, c.Breakdown.Reasons)
		assert.Equal(t, []string{"CS101"}, c.Breakdown.Teaches)
		assert.Empty(t, c.Breakdown.Learns)
	}

	candidates := []Candidate{hi, lo}
	Rank(candidates)
	assert.Equal(t, below.UserID, candidates[0].Profile.UserID)
}
