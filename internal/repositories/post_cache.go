package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/sbilibin2017/echo/internal/logger"
	"github.com/sbilibin2017/echo/internal/models"
)

// ErrCacheMiss is returned when the feed is not cached.
var ErrCacheMiss = errors.New("cache miss")

const (
	postFeedKeyPrefix = "posts:feed:"
	postFeedGenKey    = "posts:feed:gen"
)

func postFeedKey(gen int64) string {
	return postFeedKeyPrefix + strconv.FormatInt(gen, 10)
}

// PostCacheRepository caches the public post feed in Redis. Calls go through
// a circuit breaker so a failing Redis is skipped instead of slowing requests.
//
// The feed is stored under a generation number. Invalidation bumps the
// generation, so a feed read from the database before a write and cached
// after it lands under a key nobody reads anymore.
type PostCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration for the cached feed
	cb     *gobreaker.CircuitBreaker
}

type feedRead struct {
	gen  int64
	data []byte
}

// NewPostCacheRepository creates a cache repository with the given feed TTL
func NewPostCacheRepository(client *redis.Client, expiration time.Duration) *PostCacheRepository {
	st := gobreaker.Settings{
		Name:        "post-cache",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.5
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Log.Warnw("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		// a miss is a healthy answer
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
	}

	return &PostCacheRepository{
		client: client,
		exp:    expiration,
		cb:     gobreaker.NewCircuitBreaker(st),
	}
}

// GetFeed returns the cached feed and the current generation. On a miss it
// returns ErrCacheMiss together with the generation to pass to SetFeed.
func (r *PostCacheRepository) GetFeed(ctx context.Context) ([]models.Post, int64, error) {
	val, err := r.cb.Execute(func() (any, error) {
		gen, err := r.client.Get(ctx, postFeedGenKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return nil, err
		}
		data, err := r.client.Get(ctx, postFeedKey(gen)).Bytes()
		return feedRead{gen: gen, data: data}, err
	})
	read, _ := val.(feedRead)

	logger.Log.Debugw("feed cache get",
		"key", postFeedKey(read.gen),
		"hit", err == nil,
		"error", err,
	)

	if errors.Is(err, redis.Nil) {
		return nil, read.gen, ErrCacheMiss
	}
	if err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	if err := json.Unmarshal(read.data, &posts); err != nil {
		return nil, 0, err
	}
	return posts, read.gen, nil
}

// SetFeed caches the feed under the generation it was read for.
func (r *PostCacheRepository) SetFeed(ctx context.Context, gen int64, posts []models.Post) error {
	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}

	_, err = r.cb.Execute(func() (any, error) {
		return nil, r.client.Set(ctx, postFeedKey(gen), data, r.exp).Err()
	})

	logger.Log.Debugw("feed cache set",
		"key", postFeedKey(gen),
		"posts", len(posts),
		"error", err,
	)

	return err
}

// InvalidateFeed moves the feed to a new generation. Entries of older
// generations are never read again and expire on their own.
func (r *PostCacheRepository) InvalidateFeed(ctx context.Context) error {
	val, err := r.cb.Execute(func() (any, error) {
		return r.client.Incr(ctx, postFeedGenKey).Result()
	})

	logger.Log.Debugw("feed cache invalidate",
		"key", postFeedGenKey,
		"generation", val,
		"error", err,
	)

	return err
}
