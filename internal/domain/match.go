package domain

import (
	"time"

	"github.com/google/uuid"
)

type MatchStatus string

const (
	// MatchStatusSuggestion is the only status written by the regenerator.
	MatchStatusSuggestion MatchStatus = "suggestion"
	MatchStatusPending    MatchStatus = "pending"
	MatchStatusAccepted   MatchStatus = "accepted"
	MatchStatusDeclined   MatchStatus = "declined"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusSuggestion, MatchStatusPending, MatchStatusAccepted, MatchStatusDeclined:
		return true
	}
	return false
}

type MatchSuggestion struct {
	ID                 int64       `json:"id" db:"id"`
	UserAID            uuid.UUID   `json:"user_a_id" db:"user_a_id"`
	UserBID            uuid.UUID   `json:"user_b_id" db:"user_b_id"`
	CompatibilityScore int         `json:"compatibility_score" db:"compatibility_score"`
	Status             MatchStatus `json:"status" db:"status"`
	Reasons            []string    `json:"reasons" db:"reasons"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at" db:"updated_at"`
}

func (m *MatchSuggestion) Pair() PairKey {
	return PairKey{A: m.UserAID, B: m.UserBID}
}

func (m *MatchSuggestion) HasUser(userID uuid.UUID) bool {
	return m.UserAID == userID || m.UserBID == userID
}

func (m *MatchSuggestion) GetOtherUserID(userID uuid.UUID) (uuid.UUID, bool) {
	return m.Pair().Other(userID)
}

// Editable reports whether the regenerator may still rewrite or remove the row.
func (m *MatchSuggestion) Editable() bool {
	return m.Status == MatchStatusSuggestion
}

// PairKey is an unordered pair of user ids stored with A < B.
type PairKey struct {
	A uuid.UUID
	B uuid.UUID
}

func NewPairKey(a, b uuid.UUID) PairKey {
	if b.String() < a.String() {
		a, b = b, a
	}
	return PairKey{A: a, B: b}
}

func (k PairKey) Other(userID uuid.UUID) (uuid.UUID, bool) {
	if k.A == userID {
		return k.B, true
	}
	if k.B == userID {
		return k.A, true
	}
	return uuid.Nil, false
}

func (k PairKey) String() string {
	return k.A.String() + ":" + k.B.String()
}
