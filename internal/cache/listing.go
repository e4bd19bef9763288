package cache

import (
	"context"
	"encoding/json"
	"time"

	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/util"

	"github.com/redis/go-redis/v9"
)

const listingKeyPrefix = "listing:"

// ListingCache keeps single listings in Redis, keyed by both id and slug.
type ListingCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewListingCache(client *redis.Client, ttl time.Duration) *ListingCache {
	return &ListingCache{client: client, ttl: ttl}
}

func listingKey(identifier string) string {
	return listingKeyPrefix + identifier
}

// Get returns the cached listing. Misses and Redis failures both report false.
func (lc *ListingCache) Get(ctx context.Context, identifier string) (*models.Listing, bool) {
	raw, err := lc.client.Get(ctx, listingKey(identifier)).Bytes()
	if err != nil {
		if err != redis.Nil {
			util.LogError("listing cache read failed", err)
		}
		return nil, false
	}

	var listing models.Listing
	if err := json.Unmarshal(raw, &listing); err != nil {
		util.LogError("listing cache entry is corrupt", err)
		lc.client.Del(ctx, listingKey(identifier))
		return nil, false
	}
	return &listing, true
}

func (lc *ListingCache) Set(ctx context.Context, listing *models.Listing) {
	raw, err := json.Marshal(listing)
	if err != nil {
		util.LogError("listing cache encode failed", err)
		return
	}

	_, err = lc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, listingKey(listing.ID.Hex()), raw, lc.ttl)
		if listing.Slug != "" {
			pipe.Set(ctx, listingKey(listing.Slug), raw, lc.ttl)
		}
		return nil
	})
	if err != nil {
		util.LogError("listing cache write failed", err)
	}
}

// Invalidate drops both keys of the listing and announces the change.
func (lc *ListingCache) Invalidate(ctx context.Context, listing *models.Listing) {
	keys := []string{listingKey(listing.ID.Hex())}
	if listing.Slug != "" {
		keys = append(keys, listingKey(listing.Slug))
	}

	if err := lc.client.Del(ctx, keys...).Err(); err != nil {
		util.LogError("listing cache invalidation failed", err)
	}

	_ = PublishCacheMessage(ctx, lc.client, CacheInvalidateListing, listing.ID.Hex())
}
