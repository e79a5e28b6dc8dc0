package product

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	listCacheKey = "products"
	listCacheTTL = 5 * time.Minute
)

// ListCache is a redis read-through cache in front of the product listing.
// Cache failures degrade to the underlying repository; they never fail a read.
type ListCache struct {
	rdb  *redis.Client
	repo Repository
}

func NewListCache(rdb *redis.Client, repo Repository) *ListCache {
	return &ListCache{rdb: rdb, repo: repo}
}

// List returns the cached product listing, falling back to postgres and
// re-filling the cache on a miss.
func (c *ListCache) List(ctx context.Context) ([]Product, error) {
	cached, err := c.rdb.Get(ctx, listCacheKey).Bytes()
	if err == nil {
		var products []Product
		if err := json.Unmarshal(cached, &products); err == nil {
			return products, nil
		}
		log.Warn().Msg("product: dropping undecodable listing cache entry")
		c.rdb.Del(ctx, listCacheKey)
	} else if err != redis.Nil {
		log.Warn().Err(err).Msg("product: listing cache read failed, falling back to database")
	}

	products, err := c.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(products)
	if err != nil {
		log.Warn().Err(err).Msg("product: failed to encode listing for cache")
		return products, nil
	}
	if err := c.rdb.Set(ctx, listCacheKey, payload, listCacheTTL).Err(); err != nil {
		log.Warn().Err(err).Msg("product: failed to fill listing cache")
	}

	return products, nil
}

// Invalidate drops the cached listing, called after catalog writes.
func (c *ListCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, listCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("product: failed to invalidate listing cache")
	}
}
