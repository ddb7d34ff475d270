package services

import (
	"context"
	"errors"

	"gathero_backend/internal/dto"
	"gathero_backend/internal/repositories"
	"gathero_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	DeleteUser(ctx context.Context, db *gorm.DB, userID string) error
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponse(user), nil
}

// DeleteUser removes an account and revokes its sessions. Admin-only;
// the handler enforces the role.
func (s *userService) DeleteUser(ctx context.Context, db *gorm.DB, userID string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.userRepo.DeleteUserRefreshTokens(tx, userID); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.Delete(tx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
