package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/echo/internal/models"
	"github.com/sbilibin2017/echo/internal/repositories"
	"github.com/sbilibin2017/echo/internal/services"
)

func TestPostService_List(t *testing.T) {
	feed := []models.Post{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}

	tests := []struct {
		name  string
		setup func(reader *services.MockPostReader, cache *services.MockPostCache)
	}{
		{
			name: "served from cache",
			setup: func(reader *services.MockPostReader, cache *services.MockPostCache) {
				cache.EXPECT().GetFeed(gomock.Any()).Return(feed, int64(0), nil)
			},
		},
		{
			name: "cache miss fills cache under the observed generation",
			setup: func(reader *services.MockPostReader, cache *services.MockPostCache) {
				gomock.InOrder(
					cache.EXPECT().GetFeed(gomock.Any()).Return(nil, int64(3), repositories.ErrCacheMiss),
					reader.EXPECT().List(gomock.Any()).Return(feed, nil),
					cache.EXPECT().SetFeed(gomock.Any(), int64(3), feed).Return(nil),
				)
			},
		},
		{
			name: "cache fill failure is ignored",
			setup: func(reader *services.MockPostReader, cache *services.MockPostCache) {
				cache.EXPECT().GetFeed(gomock.Any()).Return(nil, int64(1), repositories.ErrCacheMiss)
				reader.EXPECT().List(gomock.Any()).Return(feed, nil)
				cache.EXPECT().SetFeed(gomock.Any(), int64(1), feed).Return(errors.New("redis down"))
			},
		},
		{
			name: "cache failure falls back to database without filling",
			setup: func(reader *services.MockPostReader, cache *services.MockPostCache) {
				cache.EXPECT().GetFeed(gomock.Any()).Return(nil, int64(0), errors.New("circuit breaker is open"))
				reader.EXPECT().List(gomock.Any()).Return(feed, nil)
				cache.EXPECT().SetFeed(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			reader := services.NewMockPostReader(ctrl)
			writer := services.NewMockPostWriter(ctrl)
			cache := services.NewMockPostCache(ctrl)
			tt.setup(reader, cache)

			svc := services.NewPostService(reader, writer, cache)
			posts, err := svc.List(context.Background())
			require.NoError(t, err)
			assert.Equal(t, feed, posts)
		})
	}
}

func TestPostService_WithoutCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockPostReader(ctrl)
	writer := services.NewMockPostWriter(ctrl)
	svc := services.NewPostService(reader, writer, nil)
	ctx := context.Background()

	reader.EXPECT().List(gomock.Any()).Return([]models.Post{}, nil)
	writer.EXPECT().Save(gomock.Any(), "t", "b", ptr(int64(7))).Return(int64(1), nil)
	writer.EXPECT().DeleteAll(gomock.Any()).Return(nil)

	posts, err := svc.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, posts)

	id, err := svc.Create(ctx, 7, "t", "b")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)

	assert.NoError(t, svc.DeleteAll(ctx))
}

func TestPostService_WritesInvalidateCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockPostReader(ctrl)
	writer := services.NewMockPostWriter(ctrl)
	cache := services.NewMockPostCache(ctrl)
	svc := services.NewPostService(reader, writer, cache)
	ctx := context.Background()

	writer.EXPECT().Save(gomock.Any(), "Hello", "First post", ptr(int64(7))).Return(int64(5), nil)
	writer.EXPECT().DeleteByID(gomock.Any(), int64(5)).Return(int64(1), nil)
	writer.EXPECT().DeleteByID(gomock.Any(), int64(6)).Return(int64(0), nil)
	writer.EXPECT().DeleteAll(gomock.Any()).Return(nil)
	cache.EXPECT().InvalidateFeed(gomock.Any()).Return(nil).Times(2)
	cache.EXPECT().InvalidateFeed(gomock.Any()).Return(errors.New("redis down"))

	id, err := svc.Create(ctx, 7, "Hello", "First post")
	require.NoError(t, err)
	assert.Equal(t, int64(5), id)

	assert.NoError(t, svc.Delete(ctx, 5))
	assert.ErrorIs(t, svc.Delete(ctx, 6), services.ErrPostNotFound)
	assert.NoError(t, svc.DeleteAll(ctx))
}

func TestPostService_ListByUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockPostReader(ctrl)
	svc := services.NewPostService(reader, services.NewMockPostWriter(ctrl), nil)

	uid := int64(7)
	mine := []models.Post{{ID: 3, UserID: &uid}}
	reader.EXPECT().ListByUser(gomock.Any(), int64(7)).Return(mine, nil)
	reader.EXPECT().ListByUser(gomock.Any(), int64(8)).Return(nil, errors.New("db error"))

	posts, err := svc.ListByUser(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, mine, posts)

	_, err = svc.ListByUser(context.Background(), 8)
	assert.Error(t, err)
}
