package service

import (
	"context"
	"errors"

	"github.com/toppingfrozen/ordertrack/internal/core/domain"
	"github.com/toppingfrozen/ordertrack/internal/core/utils"
	"go.uber.org/zap"
)

func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Username == "" || user.Password == "" || !user.Role.Valid() {
		return nil, domain.ErrBadRequest
	}

	exUser, err := s.repo.GetUserByUsername(ctx, user.Username)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrConflictingData) {
			return nil, err
		}
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, username string, password string) (*domain.User, string, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, "", domain.ErrInvalidCredentials
		}
		return nil, "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return nil, "", domain.ErrTokenCreation
	}

	return user, token, nil
}

func (s *Service) GetUser(ctx context.Context, id uint64) (*domain.User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.ListUsers(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Role != "" && !user.Role.Valid() {
		return nil, domain.ErrBadRequest
	}
	return s.repo.UpdateUser(ctx, user)
}

func (s *Service) DeleteUser(ctx context.Context, id uint64) error {
	return s.repo.DeleteUser(ctx, id)
}

func (s *Service) ChangePassword(ctx context.Context, id uint64, oldPassword, newPassword string) error {
	user, err := s.repo.GetUser(ctx, id)
	if err != nil {
		return err
	}
	if err := utils.ComparePassword(oldPassword, user.Password); err != nil {
		return domain.ErrInvalidCredentials
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("Hash password", zap.Error(err))
		return domain.ErrInternal
	}
	user.Password = hashed

	_, err = s.repo.UpdateUser(ctx, user)
	return err
}
