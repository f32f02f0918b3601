package service

import (
	"context"

	"profile-page-service/internal/model"
)

// DefaultCarouselLimit ограничивает число постов в карусели, если лимит не задан.
const DefaultCarouselLimit = 20

// PostRepository описывает контракт репозитория постов для бизнес-слоя.
type PostRepository interface {
	ListByAuthor(ctx context.Context, authorID string, limit int) ([]model.Post, error)
}

// PostService отдаёт посты пользователя для карусели профиля.
type PostService struct {
	repo  PostRepository
	limit int
}

// NewPostService создаёт сервис постов. Неположительный limit заменяется на DefaultCarouselLimit.
func NewPostService(repo PostRepository, limit int) *PostService {
	if limit <= 0 {
		limit = DefaultCarouselLimit
	}
	return &PostService{repo: repo, limit: limit}
}

// ListByUser возвращает последние посты пользователя, новые первыми.
func (s *PostService) ListByUser(ctx context.Context, userID string) ([]model.Post, error) {
	if userID == "" {
		return nil, ErrBadRequest("userId is required")
	}
	posts, err := s.repo.ListByAuthor(ctx, userID, s.limit)
	if err != nil {
		return nil, ErrInternal("failed to list posts", err)
	}
	return posts, nil
}
