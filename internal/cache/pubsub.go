package cache

import (
	"context"
	"encoding/json"
	"time"

	"estatery-api-io/api/pkg/util"

	"github.com/redis/go-redis/v9"
)

var CHANNEL_GLOBAL_CACHE = "GLOBAL_CACHE"

type CacheMessageType string

const (
	CacheInvalidateListing CacheMessageType = "listing.invalidate"
)

type CacheMessage struct {
	Type      CacheMessageType `json:"type"`
	Payload   string           `json:"payload"`
	Timestamp int64            `json:"timestamp"`
}

// PublishCacheMessage publishes a cache invalidation message to Redis pub/sub as JSON
func PublishCacheMessage(ctx context.Context, client *redis.Client, messageType CacheMessageType, payload string) error {
	cacheMessage := CacheMessage{
		Type:      messageType,
		Payload:   payload,
		Timestamp: time.Now().Unix(),
	}

	messageJSON, err := json.Marshal(cacheMessage)
	if err != nil {
		util.LogError("Failed to marshal cache message", err)
		return err
	}

	err = client.Publish(ctx, CHANNEL_GLOBAL_CACHE, string(messageJSON)).Err()
	if err != nil {
		util.LogError("Failed to publish cache message", err)
		return err
	}

	util.Log.WithField("type", messageType).WithField("payload", payload).Debug("published cache message")
	return nil
}
