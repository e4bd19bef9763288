package services

import (
	"context"

	"estatery-api-io/api/internal/apperr"
	"estatery-api-io/api/internal/common"
	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/util"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const errDuplicateSlug = "Listing slug already in use, try again!"

type mongoListingStore struct {
	listingCollection *mongo.Collection
}

func NewMongoListingStore(db *mongo.Database) ListingStore {
	return &mongoListingStore{
		listingCollection: util.GetCollection(db, common.ListingCollectionName),
	}
}

func (s *mongoListingStore) Insert(ctx context.Context, listing *models.Listing) error {
	_, err := s.listingCollection.InsertOne(ctx, listing)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict(errDuplicateSlug)
	}
	return errors.Wrap(err, "insert listing")
}

func (s *mongoListingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *mongoListingStore) FindBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	return s.findOne(ctx, bson.M{"slug": slug})
}

func (s *mongoListingStore) findOne(ctx context.Context, filter bson.M) (*models.Listing, error) {
	var listing models.Listing
	if err := s.listingCollection.FindOne(ctx, filter).Decode(&listing); err != nil {
		return nil, errors.Wrap(err, "find listing")
	}
	return &listing, nil
}

func (s *mongoListingStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Listing, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return s.Find(ctx, bson.M{"user_ref": ownerID}, opts)
}

func (s *mongoListingStore) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Listing, error) {
	cursor, err := s.listingCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find listings")
	}
	defer cursor.Close(ctx)

	listings := []models.Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, errors.Wrap(err, "decode listings")
	}
	return listings, nil
}

func (s *mongoListingStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	count, err := s.listingCollection.CountDocuments(ctx, filter)
	return count, errors.Wrap(err, "count listings")
}

// UpdateOwned writes only when both the id and the owner match.
func (s *mongoListingStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, update models.ListingUpdate) (*models.Listing, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var listing models.Listing
	err := s.listingCollection.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_ref": ownerID},
		bson.M{"$set": update},
		opts,
	).Decode(&listing)
	if err != nil {
		return nil, errors.Wrap(err, "update listing")
	}
	return &listing, nil
}

func (s *mongoListingStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.listingCollection.DeleteOne(ctx, bson.M{"_id": id, "user_ref": ownerID})
	if err != nil {
		return 0, errors.Wrap(err, "delete listing")
	}
	return res.DeletedCount, nil
}

func (s *mongoListingStore) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	res, err := s.listingCollection.DeleteMany(ctx, bson.M{"user_ref": ownerID})
	if err != nil {
		return 0, errors.Wrap(err, "delete owner listings")
	}
	return res.DeletedCount, nil
}
