// Package cache is a best-effort Redis cache. A nil *Cache or one without a
// live connection turns every call into a no-op miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Windi-Fikriyansyah/skillhive_be/internal/logger"
	"github.com/Windi-Fikriyansyah/skillhive_be/internal/models"
)

const (
	projectsPrefix = "skillhive:projects:"
	projectsGenKey = "skillhive:projects-gen"
)

type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis creates the client and pings it. On failure the returned Cache is
// still usable but disabled.
func NewRedis(ctx context.Context, addr, password string, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		return &Cache{ttl: ttl}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return &Cache{ttl: ttl}, fmt.Errorf("cache: redis ping %s: %w", addr, err)
	}

	logger.Info("redis cache enabled", "addr", addr, "ttl", ttl.String())
	return &Cache{rdb: rdb, ttl: ttl}, nil
}

func (c *Cache) Enabled() bool {
	return c != nil && c.rdb != nil
}

func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if !c.Enabled() {
		return false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(val, dest) == nil
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}) error {
	if !c.Enabled() {
		return nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, data, c.ttl).Err()
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// ProjectsKey is the key of a cached project listing variant at generation gen.
func ProjectsKey(variant string, gen int64) string {
	return projectsPrefix + variant + ":" + strconv.FormatInt(gen, 10)
}

// generation is the current listing generation. InvalidateProjects bumps it,
// so a listing read before an invalidation is written under a key nobody
// reads any more. -1 means the generation is unknown and nothing is cached.
func (c *Cache) generation(ctx context.Context) int64 {
	if !c.Enabled() {
		return -1
	}
	gen, err := c.rdb.Get(ctx, projectsGenKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0
	}
	if err != nil {
		logger.Warn("cache generation read failed", "error", err)
		return -1
	}
	return gen
}

// GetProjects returns the cached listing and the generation the caller must
// hand back to SetProjects after a miss.
func (c *Cache) GetProjects(ctx context.Context, variant string) ([]models.Project, int64, bool) {
	gen := c.generation(ctx)
	if gen < 0 {
		return nil, gen, false
	}
	var out []models.Project
	if !c.Get(ctx, ProjectsKey(variant, gen), &out) {
		return nil, gen, false
	}
	return out, gen, true
}

func (c *Cache) SetProjects(ctx context.Context, variant string, gen int64, projects []models.Project) {
	if gen < 0 {
		return
	}
	if err := c.Set(ctx, ProjectsKey(variant, gen), projects); err != nil {
		logger.Warn("cache set failed", "key", ProjectsKey(variant, gen), "error", err)
	}
}

// InvalidateProjects starts a new listing generation and drops the cached
// listings of older ones.
func (c *Cache) InvalidateProjects(ctx context.Context) {
	if !c.Enabled() {
		return
	}
	if err := c.rdb.Incr(ctx, projectsGenKey).Err(); err != nil {
		logger.Warn("cache generation bump failed", "error", err)
	}

	iter := c.rdb.Scan(ctx, 0, projectsPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.Warn("cache scan failed", "error", err)
		return
	}
	if err := c.Del(ctx, keys...); err != nil {
		logger.Warn("cache invalidate failed", "error", err)
	}
}

func (c *Cache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.rdb.Close()
}
