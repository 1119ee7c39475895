package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"productsapi/internal/models"

	"github.com/redis/go-redis/v9"
)

// CachedProductRepository puts a Redis read-through cache in front of FindByID.
// Writes go to the wrapped repository first, then bump the row's generation
// and evict it. A fill only lands if the generation it read before loading is
// still current, so a load that raced with a write is dropped instead of
// cached. Redis failures are logged and never fail the call.
type CachedProductRepository struct {
	next   ProductRepository
	client *redis.Client
	ttl    time.Duration
}

// NewCachedProductRepository wraps next with a Redis cache.
func NewCachedProductRepository(next ProductRepository, client *redis.Client, ttl time.Duration) *CachedProductRepository {
	return &CachedProductRepository{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

// errStaleFill aborts a fill whose row was written while it was loading.
var errStaleFill = errors.New("product changed while loading")

// ProductCacheKey is the Redis key a product row is cached under.
func ProductCacheKey(id uint) string {
	return fmt.Sprintf("products:%d", id)
}

// ProductGenerationKey counts writes to a product row.
func ProductGenerationKey(id uint) string {
	return fmt.Sprintf("products:%d:gen", id)
}

func (r *CachedProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.next.Create(ctx, product)
}

func (r *CachedProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	key := ProductCacheKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var product models.Product
		if err := json.Unmarshal(data, &product); err == nil {
			return &product, nil
		}
		log.Printf("Discarding unreadable cache entry %s", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("Cache read failed for %s: %v", key, err)
	}

	gen, err := generationOf(r.client.Get(ctx, ProductGenerationKey(id)))
	if err != nil {
		log.Printf("Cache generation read failed for %s: %v", key, err)
	}

	product, err := r.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, product, gen)
	return product, nil
}

func (r *CachedProductRepository) FindAll(ctx context.Context, req PageRequest) (Page, error) {
	return r.next.FindAll(ctx, req)
}

func (r *CachedProductRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	return r.next.ExistsByID(ctx, id)
}

func (r *CachedProductRepository) Update(ctx context.Context, product *models.Product) error {
	if err := r.next.Update(ctx, product); err != nil {
		return err
	}
	r.evict(ctx, product.ID)
	return nil
}

func (r *CachedProductRepository) DeleteByID(ctx context.Context, id uint) error {
	if err := r.next.DeleteByID(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

// generationOf reads a GET of the generation key; a missing key is generation 0.
func generationOf(cmd *redis.StringCmd) (int64, error) {
	gen, err := cmd.Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// store caches product unless its generation moved past gen.
func (r *CachedProductRepository) store(ctx context.Context, product *models.Product, gen int64) {
	data, err := json.Marshal(product)
	if err != nil {
		log.Printf("Failed to encode product %d for cache: %v", product.ID, err)
		return
	}

	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generationOf(tx.Get(ctx, ProductGenerationKey(product.ID)))
		if err != nil {
			return err
		}
		if current != gen {
			return errStaleFill
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, ProductCacheKey(product.ID), data, r.ttl)
			return nil
		})
		return err
	}, ProductGenerationKey(product.ID))

	switch {
	case err == nil:
	case errors.Is(err, errStaleFill), errors.Is(err, redis.TxFailedErr):
		log.Printf("Skipping cache fill for product %d: row changed while loading", product.ID)
	default:
		log.Printf("Cache write failed for product %d: %v", product.ID, err)
	}
}

// evict bumps the generation before deleting so in-flight fills are dropped.
func (r *CachedProductRepository) evict(ctx context.Context, id uint) {
	genKey := ProductGenerationKey(id)
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, r.ttl)
		pipe.Del(ctx, ProductCacheKey(id))
		return nil
	})
	if err != nil {
		log.Printf("Cache eviction failed for product %d: %v", id, err)
	}
}
