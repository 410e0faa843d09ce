package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/gdugdh24/studymatch-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type profileRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProfileRepository(db *sqlx.DB, logger *zap.Logger) repository.ProfileRepository {
	return &profileRepository{db: db, logger: logger}
}

// profileRow mirrors the profiles table. courses and interests are JSONB and
// are decoded by hand because older rows hold them as JSON-encoded strings.
type profileRow struct {
	UserID          uuid.UUID `db:"user_id"`
	DisplayName     string    `db:"display_name"`
	Courses         []byte    `db:"courses"`
	Interests       []byte    `db:"interests"`
	Major           string    `db:"major"`
	Year            string    `db:"year"`
	LearningStyle   string    `db:"learning_style"`
	StudyPreference string    `db:"study_preference"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

const profileColumns = `
	user_id, display_name, courses, interests, major, year,
	learning_style, study_preference, created_at, updated_at`

func (r *profileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	var row profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id = $1`
	err := r.db.GetContext(ctx, &row, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return r.toDomain(&row), nil
}

func (r *profileRepository) ListExcept(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error) {
	var rows []profileRow
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE user_id <> $1 ORDER BY user_id`
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, err
	}

	profiles := make([]*domain.Profile, 0, len(rows))
	for i := range rows {
		profiles = append(profiles, r.toDomain(&rows[i]))
	}
	return profiles, nil
}

func (r *profileRepository) ListUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM profiles ORDER BY user_id`)
	return ids, err
}

func (r *profileRepository) Upsert(ctx context.Context, profile *domain.Profile) error {
	profile.Normalize()

	courses, err := json.Marshal(profile.Courses)
	if err != nil {
		return fmt.Errorf("encode courses: %w", err)
	}
	interests, err := json.Marshal(profile.Interests)
	if err != nil {
		return fmt.Errorf("encode interests: %w", err)
	}

	query := `
		INSERT INTO profiles (
			user_id, display_name, courses, interests, major, year,
			learning_style, study_preference
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    courses = EXCLUDED.courses,
		    interests = EXCLUDED.interests,
		    major = EXCLUDED.major,
		    year = EXCLUDED.year,
		    learning_style = EXCLUDED.learning_style,
		    study_preference = EXCLUDED.study_preference,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING created_at, updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		profile.UserID, profile.DisplayName, courses, interests,
		profile.Major, profile.Year, profile.LearningStyle, profile.StudyPreference,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
}

func (r *profileRepository) toDomain(row *profileRow) *domain.Profile {
	p := &domain.Profile{
		UserID:          row.UserID,
		DisplayName:     row.DisplayName,
		Courses:         r.decodeField(row.UserID, "courses", row.Courses),
		Interests:       r.decodeField(row.UserID, "interests", row.Interests),
		Major:           row.Major,
		Year:            row.Year,
		LearningStyle:   row.LearningStyle,
		StudyPreference: row.StudyPreference,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
	p.Normalize()
	return p
}

func (r *profileRepository) decodeField(userID uuid.UUID, field string, raw []byte) []string {
	values, err := decodeStringSet(raw)
	if err != nil {
		r.logger.Warn("treating unreadable profile field as empty",
			zap.String("user_id", userID.String()),
			zap.String("field", field),
			zap.Error(err),
		)
		return []string{}
	}
	return values
}

// decodeStringSet reads a JSONB value holding a string collection. Accepted
// shapes: a JSON array of strings, a JSON string wrapping such an array, or
// a JSON string with comma separated values.
func decodeStringSet(raw []byte) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return domain.NormalizeSet(nil), nil
	}

	var values []string
	if err := json.Unmarshal(raw, &values); err == nil {
		return domain.NormalizeSet(values), nil
	}

	var wrapped string
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProfileData, truncate(raw))
	}

	wrapped = strings.TrimSpace(wrapped)
	if strings.HasPrefix(wrapped, "[") {
		if err := json.Unmarshal([]byte(wrapped), &values); err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProfileData, truncate(raw))
		}
		return domain.NormalizeSet(values), nil
	}
	return domain.NormalizeSet(strings.Split(wrapped, ",")), nil
}

func truncate(raw []byte) string {
	const limit = 64
	if len(raw) <= limit {
		return string(raw)
	}
	return string(raw[:limit]) + "..."
}
