package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"acharya-admissions-backend/internal/domain"
	"acharya-admissions-backend/internal/logger"
	"acharya-admissions-backend/internal/repository"
	"acharya-admissions-backend/internal/security"
)

type authService struct {
	userRepo   repository.UserRepository
	tokens     security.TokenManager
	sessions   security.SessionStore
	refreshTTL time.Duration
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokens security.TokenManager,
	sessions security.SessionStore,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		sessions:   sessions,
		refreshTTL: refreshTTL,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, *domain.StaffUser, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
		}
		return nil, nil, err
	}
	if !user.IsActive {
		return nil, nil, fmt.Errorf("%w: account is disabled", domain.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Staff login", "user_id", user.ID, "school_id", user.SchoolID)
	return pair, user, nil
}

// Refresh rotates the refresh token: the presented session is revoked and a
// fresh pair issued. Exactly one silent retry on the client side relies on
// this endpoint.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Type != security.TokenTypeRefresh {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, security.ErrWrongTokenType)
	}

	userID, err := s.sessions.UserID(ctx, claims.ID)
	if err != nil {
		if errors.Is(err, security.ErrSessionNotFound) {
			return nil, fmt.Errorf("%w: session revoked, log in again", domain.ErrUnauthorized)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("%w: account is disabled", domain.ErrUnauthorized)
	}

	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		// An unusable token has nothing left to revoke.
		return nil
	}
	return s.sessions.Delete(ctx, claims.ID)
}

func (s *authService) issueTokens(ctx context.Context, user *domain.StaffUser) (*TokenPair, error) {
	access, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refresh, jti, err := s.tokens.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, jti, user.ID, s.refreshTTL); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
