package util

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConnectDB opens and pings a MongoDB connection.
func ConnectDB(ctx context.Context, uri string) (*mongo.Client, error) {
	Log.Info("starting MongoDB connection..")

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	// try to ping the database
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	Log.Info("MongoDB connection successful")
	return client, nil
}

// GetCollection Get collection from Db
func GetCollection(db *mongo.Database, name string) *mongo.Collection {
	return db.Collection(name)
}

// ConnectRedis initializes a redis client from a redis:// URL.
func ConnectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	Log.WithField("url", redisURL).Info("starting redis connection..")
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	Log.Info("redis connection successful..")
	return client, nil
}
