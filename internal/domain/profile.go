package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	DisplayName     string    `json:"display_name" db:"display_name"`
	Courses         []string  `json:"courses" db:"courses"`
	Interests       []string  `json:"interests" db:"interests"`
	Major           string    `json:"major" db:"major"`
	Year            string    `json:"year" db:"year"`
	LearningStyle   string    `json:"learning_style" db:"learning_style"`
	StudyPreference string    `json:"study_preference" db:"study_preference"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// Normalize trims optional attributes and turns Courses and Interests into
// proper sets. Stores call it before handing a profile to the matching code.
func (p *Profile) Normalize() {
	p.Courses = NormalizeSet(p.Courses)
	p.Interests = NormalizeSet(p.Interests)
	p.Major = strings.TrimSpace(p.Major)
	p.Year = strings.TrimSpace(p.Year)
	p.LearningStyle = strings.TrimSpace(p.LearningStyle)
	p.StudyPreference = strings.TrimSpace(p.StudyPreference)
}

// NormalizeSet drops blank entries and case-insensitive duplicates, keeping
// the first casing seen. The result is never nil.
func NormalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, v)
	}
	return out
}
