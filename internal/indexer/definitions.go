package indexer

import (
	"context"
	"fmt"

	"estatery-api-io/api/internal/common"
	"estatery-api-io/api/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Definitions lists every index the API relies on.
func Definitions() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: common.UserCollectionName,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetName("user_email_unique").SetUnique(true),
			},
		},
		{
			Collection: common.UserCollectionName,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("user_username_unique").SetUnique(true),
			},
		},
		{
			Collection: common.ListingCollectionName,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "slug", Value: 1}},
				Options: options.Index().SetName("listing_slug_unique").SetUnique(true),
			},
		},
		{
			Collection: common.ListingCollectionName,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "user_ref", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("listing_owner_created"),
			},
		},
		{
			Collection: common.ListingCollectionName,
			Index: mongo.IndexModel{
				Keys: bson.D{
					{Key: "type", Value: 1},
					{Key: "offer", Value: 1},
					{Key: "parking", Value: 1},
					{Key: "furnished", Value: 1},
					{Key: "created_at", Value: -1},
				},
				Options: options.Index().SetName("listing_search_filters"),
			},
		},
		{
			Collection: common.ListingCollectionName,
			Index: mongo.IndexModel{
				Keys:    bson.D{{Key: "regular_price", Value: 1}},
				Options: options.Index().SetName("listing_regular_price"),
			},
		},
	}
}

// Migrations lists the data migrations in version order.
func Migrations() []Migration {
	return []Migration{
		{
			Version:     "2024_01_01_lowercase_user_emails",
			Description: "store user emails lower-cased so the unique index is case-insensitive",
			Up: func(ctx context.Context, db *mongo.Database) error {
				_, err := db.Collection(common.UserCollectionName).UpdateMany(ctx,
					bson.M{},
					mongo.Pipeline{{{Key: "$set", Value: bson.M{"email": bson.M{"$toLower": "$email"}}}}},
				)
				return err
			},
		},
		{
			Version:     "2024_01_02_backfill_listing_slugs",
			Description: "derive slugs for listings created before slug lookup existed",
			Up:          backfillListingSlugs,
			Down: func(ctx context.Context, db *mongo.Database) error {
				return nil
			},
		},
	}
}

func backfillListingSlugs(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(common.ListingCollectionName)
	filter := bson.M{"$or": []bson.M{{"slug": bson.M{"$exists": false}}, {"slug": ""}}}

	cursor, err := coll.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1, "name": 1}))
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			ID   primitive.ObjectID `bson:"_id"`
			Name string             `bson:"name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return err
		}

		slug := models.ListingSlug(doc.Name, doc.ID)
		if _, err := coll.UpdateByID(ctx, doc.ID, bson.M{"$set": bson.M{"slug": slug}}); err != nil {
			return fmt.Errorf("listing %s: %w", doc.ID.Hex(), err)
		}
	}

	return cursor.Err()
}

// NewDefaultManager returns a manager loaded with the API's index definitions.
func NewDefaultManager(db *mongo.Database, opts *Options) *Manager {
	return NewManager(db, opts).LoadFromDefinitions(Definitions())
}
