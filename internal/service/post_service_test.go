package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"profile-page-service/internal/model"
	"profile-page-service/internal/service"
	"profile-page-service/internal/service/mocks"
)

func TestPostService_ListByUser(t *testing.T) {
	posts := []model.Post{
		{ID: "p2", AuthorID: "u1", Content: "second", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "p1", AuthorID: "u1", Content: "first", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	tests := []struct {
		name       string
		userID     string
		limit      int
		setupMocks func(pr *mocks.PostRepository)
		wantLen    int
		wantCode   string
	}{
		{
			name:   "Success",
			userID: "u1",
			limit:  5,
			setupMocks: func(pr *mocks.PostRepository) {
				pr.On("ListByAuthor", mock.Anything, "u1", 5).Return(posts, nil)
			},
			wantLen: 2,
		},
		{
			name:   "Default limit",
			userID: "u1",
			limit:  0,
			setupMocks: func(pr *mocks.PostRepository) {
				pr.On("ListByAuthor", mock.Anything, "u1", service.DefaultCarouselLimit).
					Return([]model.Post{}, nil)
			},
			wantLen: 0,
		},
		{
			name:   "Fail: Empty ID",
			userID: "",
			limit:  5,
			setupMocks: func(pr *mocks.PostRepository) {
				// Repo не должен вызываться
			},
			wantCode: "BAD_REQUEST",
		},
		{
			name:   "Fail: DB error",
			userID: "u1",
			limit:  5,
			setupMocks: func(pr *mocks.PostRepository) {
				pr.On("ListByAuthor", mock.Anything, "u1", 5).Return(nil, errors.New("timeout"))
			},
			wantCode: "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pr := mocks.NewPostRepository(t)
			tt.setupMocks(pr)

			svc := service.NewPostService(pr, tt.limit)
			got, err := svc.ListByUser(context.Background(), tt.userID)

			if tt.wantCode != "" {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, service.AsAppError(err).Code)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
		})
	}
}
