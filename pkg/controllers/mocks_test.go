package controllers

import (
	"context"

	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/util"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockListingService is a mock implementation of services.ListingService.
type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) CreateListing(ctx context.Context, userID primitive.ObjectID, req models.ListingRequest) (*models.Listing, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) GetListing(ctx context.Context, identifier string) (*models.Listing, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) SearchListings(ctx context.Context, params models.ListingQueryParams) ([]models.Listing, util.Pagination, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, util.Pagination{}, args.Error(2)
	}
	return args.Get(0).([]models.Listing), args.Get(1).(util.Pagination), args.Error(2)
}

func (m *MockListingService) GetUserListings(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingService) UpdateListing(ctx context.Context, userID primitive.ObjectID, listingID string, req models.ListingRequest) (*models.Listing, error) {
	args := m.Called(ctx, userID, listingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingService) DeleteListing(ctx context.Context, userID primitive.ObjectID, listingID string) error {
	args := m.Called(ctx, userID, listingID)
	return args.Error(0)
}

func (m *MockListingService) DeleteListingsByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingService) EvictListings(ctx context.Context, listings []models.Listing) {
	m.Called(ctx, listings)
}

func (m *MockListingService) AuthorizeListingMutation(ctx context.Context, userID primitive.ObjectID, listingID string) (*models.Listing, error) {
	args := m.Called(ctx, userID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

// MockUserService is a mock implementation of services.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Signup(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) Signin(ctx context.Context, req models.UserAuthRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GoogleSignin(ctx context.Context, req models.GoogleAuthRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, actingUserID primitive.ObjectID, userID string, req models.UpdateUserRequest) (*models.User, error) {
	args := m.Called(ctx, actingUserID, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, actingUserID primitive.ObjectID, userID string) error {
	args := m.Called(ctx, actingUserID, userID)
	return args.Error(0)
}

// MockMediaService is a mock implementation of services.MediaService.
type MockMediaService struct {
	mock.Mock
}

func (m *MockMediaService) UploadImages(ctx context.Context, files []models.File) ([]models.UploadedImage, error) {
	args := m.Called(ctx, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.UploadedImage), args.Error(1)
}

func (m *MockMediaService) UploadImage(ctx context.Context, file models.File) (models.UploadedImage, error) {
	args := m.Called(ctx, file)
	return args.Get(0).(models.UploadedImage), args.Error(1)
}

func (m *MockMediaService) DestroyImageURLs(ctx context.Context, urls []string) {
	m.Called(ctx, urls)
}
