package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenManager issues and verifies the API's own session tokens.
type TokenManager struct {
	Auth *jwtauth.JWTAuth
	ttl  time.Duration
}

func NewTokenManager(secret []byte, ttl time.Duration) *TokenManager {
	return &TokenManager{
		Auth: jwtauth.New("HS256", secret, nil),
		ttl:  ttl,
	}
}

type Session struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

func (m *TokenManager) GenerateToken(userID string) (string, *Session, error) {
	now := time.Now()
	session := &Session{
		UserID:    userID,
		TokenID:   uuid.NewString(),
		ExpiresAt: now.Add(m.ttl),
	}
	claims := jwt.MapClaims{
		"user_id": session.UserID,
		"jti":     session.TokenID,
		"exp":     session.ExpiresAt.Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := m.Auth.Encode(claims)
	if err != nil {
		return "", nil, err
	}
	return tokenString, session, nil
}

func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok || id == "" {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetTokenIDFromClaims(claims jwt.MapClaims) (string, error) {
	id, ok := claims["jti"].(string)
	if !ok || id == "" {
		return "", errors.New("jti claim is missing or not a string")
	}
	return id, nil
}
