package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sbilibin2017/echo/internal/logger"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	original := logger.Log
	logger.Log = zap.New(core).Sugar()
	t.Cleanup(func() { logger.Log = original })
	return logs
}

func TestLogQuery_Fields(t *testing.T) {
	logs := observeLogs(t)
	errBoom := errors.New("boom")

	logQuery(`
		SELECT 1
		FROM users
		WHERE id = ?`, []any{int64(7)}, int64(7), errBoom)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "db query", entry.Message)
	assert.Equal(t, zapcore.DebugLevel, entry.Level)

	fields := entry.ContextMap()
	assert.Equal(t, "SELECT 1 FROM users WHERE id = ?", fields["query"])
	assert.Equal(t, []any{int64(7)}, fields["args"])
	assert.Equal(t, int64(7), fields["result"])
	assert.Equal(t, "boom", fields["error"])
}

func TestLogQuery_NoMalformedPairs(t *testing.T) {
	logs := observeLogs(t)

	logQuery("DELETE FROM posts WHERE id = ?", []any{int64(1)}, int64(1), nil)

	assert.Empty(t, logs.FilterLevelExact(zapcore.ErrorLevel).All())
	require.Equal(t, 1, logs.FilterMessage("db query").Len())
	assert.Contains(t, logs.All()[0].ContextMap(), "args")
}

func TestPostCacheRepository_LogFields(t *testing.T) {
	logs := observeLogs(t)

	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	repo := NewPostCacheRepository(rdb, time.Minute)

	_, _, _ = repo.GetFeed(context.Background())
	_ = repo.InvalidateFeed(context.Background())

	assert.Empty(t, logs.FilterLevelExact(zapcore.ErrorLevel).All())

	get := logs.FilterMessage("feed cache get").All()
	require.Len(t, get, 1)
	assert.Equal(t, postFeedKey(0), get[0].ContextMap()["key"])
	assert.Equal(t, false, get[0].ContextMap()["hit"])
	assert.NotEmpty(t, get[0].ContextMap()["error"])

	inv := logs.FilterMessage("feed cache invalidate").All()
	require.Len(t, inv, 1)
	assert.Equal(t, postFeedGenKey, inv[0].ContextMap()["key"])
}
