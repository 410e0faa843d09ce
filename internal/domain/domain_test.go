package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeSet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  []string
		expect []string
	}{
		{name: "nil becomes empty", input: nil, expect: []string{}},
		{name: "drops blanks", input: []string{"", "  ", "CS101"}, expect: []string{"CS101"}},
		{name: "keeps first casing", input: []string{"CS101", "cs101", "Cs101"}, expect: []string{"CS101"}},
		{name: "trims", input: []string{"  UI/UX "}, expect: []string{"UI/UX"}},
		{name: "keeps order", input: []string{"b", "a", "B"}, expect: []string{"b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, NormalizeSet(tt.input))
		})
	}
}

func TestProfileNormalize(t *testing.T) {
	p := &Profile{
		Courses:   []string{"CS101", "cs101"},
		Interests: nil,
		Major:     " Computer Science ",
	}
	p.Normalize()

	assert.Equal(t, []string{"CS101"}, p.Courses)
	assert.NotNil(t, p.Interests)
	assert.Empty(t, p.Interests)
	assert.Equal(t, "Computer Science", p.Major)
}

func TestPairKeyIsOrderIndependent(t *testing.T) {
	a := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	b := uuid.MustParse("00000000-0000-0000-0000-00000000000b")

	k1 := NewPairKey(a, b)
	k2 := NewPairKey(b, a)

	require.Equal(t, k1, k2)
	assert.Equal(t, a, k1.A)
	assert.Equal(t, b, k1.B)

	other, ok := k1.Other(b)
	require.True(t, ok)
	assert.Equal(t, a, other)

	_, ok = k1.Other(uuid.New())
	assert.False(t, ok)
}

func TestMatchSuggestionEditable(t *testing.T) {
	m := &MatchSuggestion{Status: MatchStatusSuggestion}
	assert.True(t, m.Editable())

	m.Status = MatchStatusAccepted
	assert.False(t, m.Editable())
}

func TestMatchStatusValid(t *testing.T) {
	assert.True(t, MatchStatusPending.Valid())
	assert.False(t, MatchStatus("archived").Valid())
}
