package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache 汇总报表使用的键值缓存能力，由调用方注入
type Cache interface {
	// Get 未命中时 ok=false
	Get(ctx context.Context, key string) (value any, ok bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Delete 删除不存在的 key 不报错
	Delete(ctx context.Context, key string) error
}

// MemoryCache 进程内 TTL 缓存，不做多节点协调
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache cleanupInterval 为过期条目的清理周期，<=0 时不做后台清理（读取时仍判断过期）
func NewMemoryCache(cleanupInterval time.Duration) *MemoryCache {
	if cleanupInterval <= 0 {
		cleanupInterval = gocache.NoExpiration
	}
	return &MemoryCache{store: gocache.New(gocache.NoExpiration, cleanupInterval)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (any, bool, error) {
	v, ok := c.store.Get(key)
	return v, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	c.store.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.store.Delete(key)
	return nil
}
