package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"profile-page-service/internal/api"
	"profile-page-service/internal/model"
	"profile-page-service/internal/query"
	"profile-page-service/internal/repository"
	"profile-page-service/internal/service"
	"profile-page-service/internal/service/mocks"
)

func newRouter(t *testing.T) (*query.Router, *mocks.UserRepository, *mocks.PostRepository) {
	users := mocks.NewUserRepository(t)
	posts := mocks.NewPostRepository(t)
	r := api.NewAppRouter(service.NewProfileService(users), service.NewPostService(posts, 10))
	return r, users, posts
}

func TestAppRouter_GetUserByUsername(t *testing.T) {
	r, users, _ := newRouter(t)
	users.On("GetByUsername", mock.Anything, "alice").
		Return(model.User{ID: "u1", Username: "alice", ImageURL: "https://img/a.png"}, nil)
	users.On("GetByUsername", mock.Anything, "ghost").
		Return(model.User{}, repository.ErrUserNotFound)

	got, err := r.Call(context.Background(), api.GetUserByUsername, json.RawMessage(`{"username":"alice"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"u1","username":"alice","imageUrl":"https://img/a.png"}`, string(got))

	got, err = r.Call(context.Background(), api.GetUserByUsername, json.RawMessage(`{"username":"ghost"}`))
	require.NoError(t, err)
	assert.Equal(t, "null", string(got))
}

func TestAppRouter_ErrorMapping(t *testing.T) {
	r, users, _ := newRouter(t)
	users.On("GetByUsername", mock.Anything, "alice").Return(model.User{}, errors.New("db down"))

	_, err := r.Call(context.Background(), api.GetUserByUsername, json.RawMessage(`{"username":"alice"}`))
	var qErr *query.Error
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, query.CodeInternal, qErr.Code)

	_, err = r.Call(context.Background(), api.GetPostsByUserID, json.RawMessage(`{"userId":""}`))
	require.ErrorAs(t, err, &qErr)
	assert.Equal(t, query.CodeBadRequest, qErr.Code)
}

func TestAppRouter_GetPostsByUserID(t *testing.T) {
	r, _, posts := newRouter(t)
	posts.On("ListByAuthor", mock.Anything, "u1", 10).
		Return([]model.Post{{ID: "p1", AuthorID: "u1", Content: "hello"}}, nil)

	got, err := r.Call(context.Background(), api.GetPostsByUserID, json.RawMessage(`{"userId":"u1"}`))
	require.NoError(t, err)

	var decoded []model.Post
	require.NoError(t, json.Unmarshal(got, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "p1", decoded[0].ID)
}
