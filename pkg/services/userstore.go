package services

import (
	"context"
	"strings"

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

const errDuplicateAccount = "Username or email already in use!"

type mongoUserStore struct {
	userCollection *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) UserStore {
	return &mongoUserStore{
		userCollection: util.GetCollection(db, common.UserCollectionName),
	}
}

func (s *mongoUserStore) Insert(ctx context.Context, user *models.User) error {
	_, err := s.userCollection.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return apperr.Conflict(errDuplicateAccount)
	}
	return errors.Wrap(err, "insert user")
}

func (s *mongoUserStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

func (s *mongoUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))})
}

func (s *mongoUserStore) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var user models.User
	if err := s.userCollection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, errors.Wrap(err, "find user")
	}
	return &user, nil
}

func (s *mongoUserStore) Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	err := s.userCollection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&user)
	if mongo.IsDuplicateKeyError(err) {
		return nil, apperr.Conflict(errDuplicateAccount)
	}
	if err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	return &user, nil
}

func (s *mongoUserStore) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.userCollection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, errors.Wrap(err, "delete user")
	}
	return res.DeletedCount, nil
}
