package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/anonto42/nexa/backend/internal/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// PostCache holds rendered post details. A miss is (nil, nil).
type PostCache interface {
	GetPost(ctx context.Context, id uuid.UUID) (*models.PostView, error)
	SetPost(ctx context.Context, post *models.PostView) error
	InvalidatePost(ctx context.Context, id uuid.UUID) error
}

// invalidationHold is how long SetPost refuses to repopulate a post after
// InvalidatePost. It must outlast a GetPostByID round trip.
const invalidationHold = 10 * time.Second

func postKey(id uuid.UUID) string {
	return "post:" + id.String()
}

func staleKey(id uuid.UUID) string {
	return "post:" + id.String() + ":stale"
}

type RedisPostCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPostCache(client *redis.Client, ttl time.Duration) *RedisPostCache {
	return &RedisPostCache{client: client, ttl: ttl}
}

func (c *RedisPostCache) GetPost(ctx context.Context, id uuid.UUID) (*models.PostView, error) {
	result, err := c.client.Get(ctx, postKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get cached post")
	}

	var post models.PostView
	if err := json.Unmarshal(result, &post); err != nil {
		return nil, errors.Wrap(err, "decode cached post")
	}
	return &post, nil
}

// SetPost stores the view unless the post was invalidated within
// invalidationHold, so a view loaded before a concurrent write is never
// cached after it.
func (c *RedisPostCache) SetPost(ctx context.Context, post *models.PostView) error {
	data, err := json.Marshal(post)
	if err != nil {
		return errors.Wrap(err, "encode post")
	}

	stale := staleKey(post.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		held, err := tx.Exists(ctx, stale).Result()
		if err != nil || held > 0 {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, postKey(post.ID), data, c.ttl)
			return nil
		})
		return err
	}, stale)
	if errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return errors.Wrap(err, "cache post")
}

func (c *RedisPostCache) InvalidatePost(ctx context.Context, id uuid.UUID) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, staleKey(id), 1, invalidationHold)
		pipe.Del(ctx, postKey(id))
		return nil
	})
	return errors.Wrap(err, "invalidate post")
}

// NopPostCache always misses.
type NopPostCache struct{}

func (NopPostCache) GetPost(context.Context, uuid.UUID) (*models.PostView, error) { return nil, nil }

func (NopPostCache) SetPost(context.Context, *models.PostView) error { return nil }

func (NopPostCache) InvalidatePost(context.Context, uuid.UUID) error { return nil }
