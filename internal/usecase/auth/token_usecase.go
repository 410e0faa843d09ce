package auth

import (
	"fmt"
	"time"

	"github.com/gdugdh24/studymatch-backend/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenUseCase issues and verifies the HS256 bearer tokens that identify a
// caller. Accounts and sessions live outside this service.
type TokenUseCase struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenUseCase(secret string, ttl time.Duration) *TokenUseCase {
	return &TokenUseCase{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// IssueToken signs a token for userID and returns it with its expiry.
func (uc *TokenUseCase) IssueToken(userID uuid.UUID) (string, time.Time, error) {
	now := uc.now()
	expiresAt := now.Add(uc.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     expiresAt.Unix(),
		"iat":     now.Unix(),
	})

	tokenString, err := token.SignedString(uc.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// VerifyToken verifies JWT token and returns user ID
func (uc *TokenUseCase) VerifyToken(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return uc.secret, nil
	}, jwt.WithTimeFunc(uc.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return uuid.Nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}

	raw, ok := claims["user_id"].(string)
	if !ok {
		return uuid.Nil, domain.ErrInvalidToken
	}
	userID, err := uuid.Parse(raw)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, domain.ErrInvalidToken
	}
	return userID, nil
}
