package services

import (
	"context"

	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListingService defines the interface for listing-related operations
type ListingService interface {
	CreateListing(ctx context.Context, userID primitive.ObjectID, req models.ListingRequest) (*models.Listing, error)
	GetListing(ctx context.Context, identifier string) (*models.Listing, error)
	SearchListings(ctx context.Context, params models.ListingQueryParams) ([]models.Listing, util.Pagination, error)
	GetUserListings(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error)
	UpdateListing(ctx context.Context, userID primitive.ObjectID, listingID string, req models.ListingRequest) (*models.Listing, error)
	DeleteListing(ctx context.Context, userID primitive.ObjectID, listingID string) error
	DeleteListingsByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error)
	EvictListings(ctx context.Context, listings []models.Listing)

	// AuthorizeListingMutation loads a listing and checks that userID owns it.
	AuthorizeListingMutation(ctx context.Context, userID primitive.ObjectID, listingID string) (*models.Listing, error)
}

// UserService defines the interface for account operations
type UserService interface {
	Signup(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Signin(ctx context.Context, req models.UserAuthRequest) (*models.User, error)
	GoogleSignin(ctx context.Context, req models.GoogleAuthRequest) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	UpdateUser(ctx context.Context, actingUserID primitive.ObjectID, userID string, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, actingUserID primitive.ObjectID, userID string) error
}

// MediaService uploads and removes images in object storage
type MediaService interface {
	UploadImages(ctx context.Context, files []models.File) ([]models.UploadedImage, error)
	UploadImage(ctx context.Context, file models.File) (models.UploadedImage, error)
	DestroyImageURLs(ctx context.Context, urls []string)
}

// ListingStore persists listings.
type ListingStore interface {
	Insert(ctx context.Context, listing *models.Listing) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error)
	FindBySlug(ctx context.Context, slug string) (*models.Listing, error)
	FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Listing, error)
	Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Listing, error)
	Count(ctx context.Context, filter bson.M) (int64, error)
	UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, update models.ListingUpdate) (*models.Listing, error)
	DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error)
	DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error)
}

// UserStore persists user accounts.
type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*models.User, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// ObjectStorage is the remote image store.
type ObjectStorage interface {
	Upload(ctx context.Context, file models.File) (models.UploadedImage, error)
	Destroy(ctx context.Context, publicID string) error
}

// ListingCache is a read-through cache for single listing lookups.
type ListingCache interface {
	Get(ctx context.Context, identifier string) (*models.Listing, bool)
	Set(ctx context.Context, listing *models.Listing)
	Invalidate(ctx context.Context, listing *models.Listing)
}

// GoogleVerifier verifies Google ID tokens.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (models.GoogleIdentity, error)
}

// WelcomeMailer queues the welcome email for a new account.
type WelcomeMailer interface {
	SendWelcome(user models.User)
}

// Transactor runs fn inside a database transaction.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
