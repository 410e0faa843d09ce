package matching

import (
	"sort"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
)

// Candidate is a scored partner for some subject profile.
type Candidate struct {
	Profile      *domain.Profile `json:"profile"`
	Score        int             `json:"compatibility_score"`
	Completeness int             `json:"completeness"`
	Breakdown    Breakdown       `json:"breakdown"`
}

// Evaluate scores candidate as a partner for subject. The bool is false when
// the pair does not qualify; the Candidate is still scored.
func Evaluate(subject, candidate *domain.Profile) (Candidate, bool) {
	score, detail := Score(subject, candidate)
	return Candidate{
		Profile:      candidate,
		Score:        score,
		Completeness: Completeness(candidate),
		Breakdown:    detail,
	}, Qualifies(subject, candidate)
}

// Less orders by score desc, then completeness desc, then user id asc.
func Less(a, b Candidate) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.Completeness != b.Completeness {
		return a.Completeness > b.Completeness
	}
	return a.Profile.UserID.String() < b.Profile.UserID.String()
}

// Rank sorts candidates in place for display.
func Rank(candidates []Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return Less(candidates[i], candidates[j])
	})
}
