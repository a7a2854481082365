package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/junaidrashid-git/jewelry-api/logger"
	"github.com/junaidrashid-git/jewelry-api/models"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const productKeyPrefix = "catalog:product:"

// ProductCache is a read-through cache of product records. A nil
// *ProductCache is valid and always goes to the loader.
type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ProductCache{rdb: rdb, ttl: ttl}
}

func productKey(id string) string {
	return productKeyPrefix + id
}

// Loader fetches a product from the primary store.
type Loader func(ctx context.Context) (*models.Product, error)

// Get returns the cached product for id, or calls load and caches the result.
// Redis failures are logged and fall through to the loader.
func (pc *ProductCache) Get(ctx context.Context, id string, load Loader) (*models.Product, error) {
	if pc == nil {
		return load(ctx)
	}

	key := productKey(id)
	data, err := pc.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product models.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		logger.Warn().Err(err).Str("key", key).Msg("cache: corrupt product entry")
	case errors.Is(err, redis.Nil):
	default:
		logger.Warn().Err(err).Str("key", key).Msg("cache: redis get failed")
	}

	product, err := load(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(product)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache: marshal product")
		return product, nil
	}
	if err := pc.rdb.Set(ctx, key, payload, pc.ttl).Err(); err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("cache: redis set failed")
	}
	return product, nil
}

// Invalidate drops the cached entries for ids.
func (pc *ProductCache) Invalidate(ctx context.Context, ids ...string) {
	if pc == nil || len(ids) == 0 {
		return
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, productKey(id))
	}
	if err := pc.rdb.Del(ctx, keys...).Err(); err != nil {
		logger.Warn().Err(err).Strs("keys", keys).Msg("cache: redis del failed")
	}
}

// InvalidateSeller drops the entries of every product of sellerID. Cached
// products embed their seller, so profile changes go through here.
func (pc *ProductCache) InvalidateSeller(ctx context.Context, db *gorm.DB, sellerID string) {
	if pc == nil {
		return
	}
	var ids []string
	err := db.WithContext(ctx).Model(&models.Product{}).Where("seller_id = ?", sellerID).Pluck("id", &ids).Error
	if err != nil {
		logger.Warn().Err(err).Str("sellerId", sellerID).Msg("cache: list seller products")
		return
	}
	pc.Invalidate(ctx, ids...)
}
