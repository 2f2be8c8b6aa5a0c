package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill_tracker/internal/common"
	"skill_tracker/internal/common/security"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
)

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	tokens      *security.TokenManager
	identity    *security.IdentityVerifier
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, tokens *security.TokenManager, identity *security.IdentityVerifier) *AuthService {
	return &AuthService{userRepo: userRepo, sessionRepo: sessionRepo, tokens: tokens, identity: identity}
}

type LoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type AuthResponse struct {
	User      *model.User `json:"user"`
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Login exchanges an identity-provider token for a session token. The user
// row is created on first login and its identity fields refreshed after.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	claims, err := s.identity.Verify(req.IDToken)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}

	user, err := s.userRepo.Upsert(ctx, model.UpsertUser{
		ID:              claims.Subject,
		Email:           optional(claims.Email),
		FirstName:       optional(claims.FirstName),
		LastName:        optional(claims.LastName),
		ProfileImageURL: optional(claims.ProfileImageURL),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	token, session, err := s.tokens.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{User: user, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout revokes the session until its token would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, session *security.Session) error {
	if session == nil {
		return common.ErrUnauthorized
	}
	if err := s.sessionRepo.Revoke(ctx, session.TokenID, time.Until(session.ExpiresAt)); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("user no longer exists: %w", common.ErrUnauthorized)
		}
		return nil, err
	}
	return user, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
