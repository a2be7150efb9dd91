package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// nullRating marks a cached "title has no reviews" result so cache misses
// and genuine null ratings stay distinguishable.
const nullRating = "null"

// RatingCache is a redis read-through cache for computed title ratings.
// The relational store never persists ratings; the cache only saves the
// AVG query and is invalidated on every review mutation. All methods are
// nil-safe so the service degrades to plain database reads without redis.
type RatingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRatingCache(addr, password string, ttl time.Duration) (*RatingCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RatingCache{client: rdb, ttl: ttl}, nil
}

func ratingKey(titleID int64) string {
	return fmt.Sprintf("rating:title:%d", titleID)
}

// Get returns the cached rating and whether the cache held an entry.
func (c *RatingCache) Get(ctx context.Context, titleID int64) (*int, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	value, err := c.client.Get(ctx, ratingKey(titleID)).Result()
	if err != nil {
		return nil, false
	}
	if value == nullRating {
		return nil, true
	}
	rating, err := strconv.Atoi(value)
	if err != nil {
		return nil, false
	}
	return &rating, true
}

func (c *RatingCache) Set(ctx context.Context, titleID int64, rating *int) {
	if c == nil || c.client == nil {
		return
	}
	value := nullRating
	if rating != nil {
		value = strconv.Itoa(*rating)
	}
	c.client.Set(ctx, ratingKey(titleID), value, c.ttl)
}

func (c *RatingCache) Invalidate(ctx context.Context, titleID int64) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, ratingKey(titleID))
}
