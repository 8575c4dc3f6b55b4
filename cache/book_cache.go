// Package cache holds the Redis-backed read cache for the book catalog.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"bookstore-api/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const bookListKey = "books:all"

// BookCache caches the full book listing. Any catalog mutation (and any
// checkout, since stock changes) invalidates it.
type BookCache struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewBookCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *BookCache {
	return &BookCache{redis: client, ttl: ttl, logger: logger}
}

// GetBookList returns the cached listing and whether it was present.
func (c *BookCache) GetBookList(ctx context.Context) ([]models.Book, bool) {
	data, err := c.redis.Get(ctx, bookListKey).Result()
	if err != nil {
		return nil, false
	}

	var books []models.Book
	if err := json.Unmarshal([]byte(data), &books); err != nil {
		c.logger.Warn("Failed to unmarshal cached book list", zap.Error(err))
		return nil, false
	}
	return books, true
}

// SetBookList caches the listing asynchronously so reads never wait on Redis.
func (c *BookCache) SetBookList(books []models.Book) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(books)
		if err != nil {
			c.logger.Warn("Failed to marshal book list for cache", zap.Error(err))
			return
		}
		if err := c.redis.Set(ctx, bookListKey, data, c.ttl).Err(); err != nil {
			c.logger.Warn("Failed to cache book list", zap.Error(err))
		}
	}()
}

// Invalidate drops the cached listing.
func (c *BookCache) Invalidate(ctx context.Context) {
	if err := c.redis.Del(ctx, bookListKey).Err(); err != nil {
		c.logger.Warn("Failed to invalidate book cache", zap.Error(err))
	}
}
