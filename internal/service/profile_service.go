// Package service содержит бизнес-логику чтения профилей и постов пользователей.
package service

import (
	"context"
	"errors"

	"profile-page-service/internal/model"
	"profile-page-service/internal/repository"
)

// UserRepository описывает контракт репозитория пользователей для бизнес-слоя.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// ProfileService отдаёт публичные данные профиля пользователя.
type ProfileService struct {
	repo UserRepository
}

// NewProfileService создаёт новый сервис профилей.
func NewProfileService(repo UserRepository) *ProfileService {
	return &ProfileService{repo: repo}
}

// GetUserByUsername возвращает пользователя по username.
// Отсутствие пользователя не считается ошибкой: возвращается nil, nil.
// Username не валидируется, пустая строка ищется как есть.
func (s *ProfileService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil
		}
		return nil, ErrInternal("failed to get user", err)
	}
	return &user, nil
}
