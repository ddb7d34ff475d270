package services

import (
	"context"
	"errors"
	"time"

	"gathero_backend/internal/auth"
	"gathero_backend/internal/dto"
	"gathero_backend/internal/email"
	"gathero_backend/internal/logger"
	"gathero_backend/internal/models"
	"gathero_backend/internal/repositories"
	"gathero_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Refresh(ctx context.Context, db *gorm.DB, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, db *gorm.DB, refreshToken string) error
	VerifyEmail(ctx context.Context, db *gorm.DB, token string) error
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   *auth.TokenManager
	mailer   email.Sender
}

func NewAuthService(userRepo repositories.UserRepository, tokens *auth.TokenManager, mailer email.Sender) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		mailer:   mailer,
	}
}

func (s *authService) Register(ctx context.Context, db *gorm.DB, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	if _, err := s.userRepo.FindByEmail(db, req.Email); err == nil {
		return nil, apperrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:             req.Email,
		PasswordHash:      hash,
		Name:              req.Name,
		Role:              models.UserRoleUser,
		Status:            models.UserStatusPending,
		VerificationToken: uuid.NewString(),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Mail delivery never blocks or fails registration.
	go func(to, name, token string) {
		if err := s.mailer.SendVerificationEmail(to, name, token); err != nil {
			logger.Warn("failed to send verification email", "email", to, "error", err.Error())
		}
	}(user.Email, user.Name, user.VerificationToken)

	return dto.NewUserResponse(user), nil
}

func (s *authService) Login(ctx context.Context, db *gorm.DB, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrForbidden
	}

	return s.issueTokens(db, user)
}

func (s *authService) Refresh(ctx context.Context, db *gorm.DB, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, req.RefreshToken)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.userRepo.DeleteRefreshToken(db, stored.Token)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	// Refresh tokens are single-use.
	if err := s.userRepo.DeleteRefreshToken(db, stored.Token); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.issueTokens(db, user)
}

func (s *authService) Logout(ctx context.Context, db *gorm.DB, refreshToken string) error {
	if err := s.userRepo.DeleteRefreshToken(db, refreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) VerifyEmail(ctx context.Context, db *gorm.DB, token string) error {
	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		return apperrors.ErrInvalidToken
	}

	user.IsVerified = true
	user.Status = models.UserStatusActive
	user.VerificationToken = ""
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *authService) issueTokens(db *gorm.DB, user *models.User) (*dto.TokenResponse, error) {
	access, err := s.tokens.Issue(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refresh := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(db, refresh); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		User:         dto.NewUserResponse(user),
	}, nil
}
