// Package matching holds the compatibility rules shared by regeneration and
// ranking. Everything here is pure: no I/O, no shared state.
package matching

import (
	"strings"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
)

const (
	MaxScore = 100

	pointsMutualTeaching     = 50
	pointsMutualLearning     = 50
	pointsSharedInterest     = 40
	pointsSharedCourse       = 20
	pointsSameMajor          = 10
	pointsMajorListed        = 5
	pointsSameYear           = 5
	pointsSameLearningStyle  = 5
	pointsSameStudyPref      = 5
	pointsCompleteProfile    = 10
	pointsMostlyCompleteProf = 5
)

// Reason names reported in Breakdown.Reasons, in scoring order.
const (
	ReasonMutualTeaching      = "mutual_teaching"
	ReasonMutualLearning      = "mutual_learning"
	ReasonSharedInterests     = "shared_interests"
	ReasonSharedCourses       = "shared_courses"
	ReasonSameMajor           = "same_major"
	ReasonMajorListed         = "major_listed"
	ReasonSameYear            = "same_year"
	ReasonSameLearningStyle   = "same_learning_style"
	ReasonSameStudyPreference = "same_study_preference"
	ReasonCompleteProfile     = "complete_profile"
)

// Breakdown explains a score. Course and interest names keep the casing of
// the profile they were taken from.
type Breakdown struct {
	// Teaches lists a's courses that b wants to learn (a's casing).
	Teaches []string `json:"teaches"`
	// Learns lists b's courses that a wants to learn (b's casing).
	Learns          []string `json:"learns"`
	SharedInterests []string `json:"shared_interests"`
	SharedCourses   []string `json:"shared_courses"`
	Reasons         []string `json:"reasons"`
	// Raw is the total before clamping.
	Raw int `json:"raw"`
}

// Qualifies reports whether a teaches something b wants or b teaches
// something a wants. It is symmetric.
func Qualifies(a, b *domain.Profile) bool {
	return crossesInto(a.Courses, b.Interests) || crossesInto(b.Courses, a.Interests)
}

func crossesInto(courses, interests []string) bool {
	if len(courses) == 0 || len(interests) == 0 {
		return false
	}
	wanted := newFoldSet(interests)
	for _, c := range courses {
		if wanted.has(c) {
			return true
		}
	}
	return false
}

// Score computes the 0..100 compatibility of b as a partner for a.
func Score(a, b *domain.Profile) (int, Breakdown) {
	aCourses, aInterests := newFoldSet(a.Courses), newFoldSet(a.Interests)
	bCourses, bInterests := newFoldSet(b.Courses), newFoldSet(b.Interests)

	d := Breakdown{
		Teaches:         aCourses.intersect(bInterests),
		Learns:          bCourses.intersect(aInterests),
		SharedInterests: aInterests.intersect(bInterests),
		SharedCourses:   aCourses.intersect(bCourses),
		Reasons:         []string{},
	}

	total := 0
	add := func(points int, reason string) {
		if points <= 0 {
			return
		}
		total += points
		d.Reasons = append(d.Reasons, reason)
	}

	add(pointsMutualTeaching*len(d.Teaches), ReasonMutualTeaching)
	add(pointsMutualLearning*len(d.Learns), ReasonMutualLearning)
	add(pointsSharedInterest*len(d.SharedInterests), ReasonSharedInterests)
	add(pointsSharedCourse*len(d.SharedCourses), ReasonSharedCourses)

	switch {
	case sameAttr(a.Major, b.Major):
		add(pointsSameMajor, ReasonSameMajor)
	case present(b.Major):
		add(pointsMajorListed, ReasonMajorListed)
	}
	if sameAttr(a.Year, b.Year) {
		add(pointsSameYear, ReasonSameYear)
	}
	if sameAttr(a.LearningStyle, b.LearningStyle) {
		add(pointsSameLearningStyle, ReasonSameLearningStyle)
	}
	if sameAttr(a.StudyPreference, b.StudyPreference) {
		add(pointsSameStudyPref, ReasonSameStudyPreference)
	}

	switch c := Completeness(b); {
	case c >= 80:
		add(pointsCompleteProfile, ReasonCompleteProfile)
	case c >= 50:
		add(pointsMostlyCompleteProf, ReasonCompleteProfile)
	}

	d.Raw = total
	return clamp(total), d
}

// ScorePair scores an unordered pair in PairKey order, so the result does
// not depend on which of the two users the computation started from.
func ScorePair(p, q *domain.Profile) (int, Breakdown) {
	if domain.NewPairKey(p.UserID, q.UserID).A == p.UserID {
		return Score(p, q)
	}
	return Score(q, p)
}

// Completeness returns how filled in a profile is, 0..100.
func Completeness(p *domain.Profile) int {
	c := 0
	if !newFoldSet(p.Courses).empty() {
		c += 25
	}
	if !newFoldSet(p.Interests).empty() {
		c += 25
	}
	if present(p.Major) {
		c += 20
	}
	if present(p.Year) {
		c += 10
	}
	if present(p.LearningStyle) {
		c += 10
	}
	if present(p.StudyPreference) {
		c += 10
	}
	return c
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func sameAttr(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && b != "" && strings.EqualFold(a, b)
}

// foldSet is an insertion-ordered, case-insensitive string set.
type foldSet struct {
	keys   map[string]struct{}
	values []string
}

func newFoldSet(values []string) foldSet {
	s := foldSet{keys: make(map[string]struct{}, len(values))}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		k := strings.ToLower(v)
		if _, ok := s.keys[k]; ok {
			continue
		}
		s.keys[k] = struct{}{}
		s.values = append(s.values, v)
	}
	return s
}

func (s foldSet) empty() bool {
	return len(s.values) == 0
}

func (s foldSet) has(v string) bool {
	_, ok := s.keys[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// intersect returns the members of s also in other, with s's casing.
func (s foldSet) intersect(other foldSet) []string {
	out := []string{}
	for _, v := range s.values {
		if other.has(v) {
			out = append(out, v)
		}
	}
	return out
}
