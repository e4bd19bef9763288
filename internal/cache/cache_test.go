package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"estatery-api-io/api/pkg/models"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestListingKey(t *testing.T) {
	assert.Equal(t, "listing:seaside-villa-abc123", listingKey("seaside-villa-abc123"))
}

func TestListingCache_RedisDownIsAMiss(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()

	lc := NewListingCache(client, time.Minute)
	listing := &models.Listing{ID: primitive.NewObjectID(), Slug: "seaside-villa-abc123"}

	lc.Set(context.Background(), listing)
	got, ok := lc.Get(context.Background(), listing.ID.Hex())
	assert.False(t, ok)
	assert.Nil(t, got)

	lc.Invalidate(context.Background(), listing)
}

func TestPublishCacheMessage_RedisDown(t *testing.T) {
	client := unreachableRedis()
	defer client.Close()

	err := PublishCacheMessage(context.Background(), client, CacheInvalidateListing, "abc")
	assert.Error(t, err)
}

func TestCacheMessage_JSON(t *testing.T) {
	raw, err := json.Marshal(CacheMessage{Type: CacheInvalidateListing, Payload: "abc", Timestamp: 1700000000})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"listing.invalidate","payload":"abc","timestamp":1700000000}`, string(raw))
}
