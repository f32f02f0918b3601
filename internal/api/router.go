// Package api собирает корневой роутер процедур приложения поверх сервисов.
package api

import (
	"context"
	"errors"
	"net/http"

	"profile-page-service/internal/model"
	"profile-page-service/internal/query"
	"profile-page-service/internal/service"
)

const (
	// GetUserByUsername — чтение пользователя по username, результат *model.User или null.
	GetUserByUsername = "profile.getUserByUsername"
	// GetPostsByUserID — посты пользователя для карусели.
	GetPostsByUserID = "post.getPostsByUserId"
)

// UsernameInput — вход процедуры GetUserByUsername.
type UsernameInput struct {
	Username string `json:"username"`
}

// UserIDInput — вход процедуры GetPostsByUserID.
type UserIDInput struct {
	UserID string `json:"userId"`
}

// ProfileReader описывает чтение профилей.
type ProfileReader interface {
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
}

// PostReader описывает чтение постов.
type PostReader interface {
	ListByUser(ctx context.Context, userID string) ([]model.Post, error)
}

// NewAppRouter регистрирует все процедуры приложения.
func NewAppRouter(profiles ProfileReader, posts PostReader) *query.Router {
	r := query.NewRouter()

	query.Handle(r, GetUserByUsername, func(ctx context.Context, in UsernameInput) (*model.User, error) {
		user, err := profiles.GetUserByUsername(ctx, in.Username)
		if err != nil {
			return nil, toQueryError(err)
		}
		return user, nil
	})

	query.Handle(r, GetPostsByUserID, func(ctx context.Context, in UserIDInput) ([]model.Post, error) {
		list, err := posts.ListByUser(ctx, in.UserID)
		if err != nil {
			return nil, toQueryError(err)
		}
		return list, nil
	})

	return r
}

func toQueryError(err error) error {
	var appErr *service.AppError
	if !errors.As(err, &appErr) {
		return &query.Error{Code: query.CodeInternal, Message: "internal error", Err: err}
	}

	code := query.CodeInternal
	switch appErr.Status {
	case http.StatusBadRequest:
		code = query.CodeBadRequest
	case http.StatusNotFound:
		code = query.CodeNotFound
	}
	return &query.Error{Code: code, Message: appErr.Message, Err: appErr}
}
