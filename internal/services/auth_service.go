package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/config"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/utils"
)

// AuthService handles registration, login, and token refresh.
type AuthService struct {
	users UserStore
	cfg   *config.Config
}

func NewAuthService(users UserStore, cfg *config.Config) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Register creates an account and returns a signed-in token pair.
func (s *AuthService) Register(ctx context.Context, req dtos.RegisterRequest) (*dtos.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := models.UserRoleCandidate
	if req.Role == string(models.UserRoleMentor) {
		role = models.UserRoleMentor
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         req.Name,
		Role:         role,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(user)
}

// Login verifies credentials. Unknown email and wrong password produce
// the same error so the response does not leak which one failed.
func (s *AuthService) Login(ctx context.Context, req dtos.LoginRequest) (*dtos.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a fresh pair. The user is
// re-read so a role change since issuance lands in the new access token.
func (s *AuthService) Refresh(ctx context.Context, req dtos.RefreshRequest) (*dtos.AuthResponse, error) {
	claims, err := utils.ParseRefreshToken(req.RefreshToken, s.cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *models.User) (*dtos.AuthResponse, error) {
	access, err := utils.GenerateAccessToken(user.ID, user.Role, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := utils.GenerateRefreshToken(user.ID, s.cfg.JWTSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &dtos.AuthResponse{
		User:         dtos.NewUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
