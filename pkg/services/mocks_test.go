package services

import (
	"context"
	"errors"
	"sync"

	"estatery-api-io/api/pkg/models"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MockListingStore is a mock implementation of ListingStore.
type MockListingStore struct {
	mock.Mock
}

func (m *MockListingStore) Insert(ctx context.Context, listing *models.Listing) error {
	args := m.Called(ctx, listing)
	return args.Error(0)
}

func (m *MockListingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingStore) FindBySlug(ctx context.Context, slug string) (*models.Listing, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingStore) FindByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]models.Listing, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingStore) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Listing, error) {
	args := m.Called(ctx, filter, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Listing), args.Error(1)
}

func (m *MockListingStore) Count(ctx context.Context, filter bson.M) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingStore) UpdateOwned(ctx context.Context, id, ownerID primitive.ObjectID, update models.ListingUpdate) (*models.Listing, error) {
	args := m.Called(ctx, id, ownerID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Listing), args.Error(1)
}

func (m *MockListingStore) DeleteOwned(ctx context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockListingStore) DeleteByOwner(ctx context.Context, ownerID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

// memoryListingStore keeps listings in a map, for round-trip tests.
type memoryListingStore struct {
	mu       sync.Mutex
	listings map[primitive.ObjectID]models.Listing
}

func newMemoryListingStore() *memoryListingStore {
	return &memoryListingStore{listings: map[primitive.ObjectID]models.Listing{}}
}

func (s *memoryListingStore) Insert(_ context.Context, listing *models.Listing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *listing
	stored.ImageURLs = append([]string(nil), listing.ImageURLs...)
	s.listings[listing.ID] = stored
	return nil
}

func (s *memoryListingStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &l, nil
}

func (s *memoryListingStore) FindBySlug(_ context.Context, slug string) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.listings {
		if l.Slug == slug {
			return &l, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *memoryListingStore) FindByOwner(_ context.Context, ownerID primitive.ObjectID) ([]models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Listing
	for _, l := range s.listings {
		if l.UserRef == ownerID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *memoryListingStore) Find(context.Context, bson.M, *options.FindOptions) ([]models.Listing, error) {
	return nil, errors.New("not supported")
}

func (s *memoryListingStore) Count(context.Context, bson.M) (int64, error) {
	return 0, errors.New("not supported")
}

func (s *memoryListingStore) UpdateOwned(_ context.Context, id, ownerID primitive.ObjectID, update models.ListingUpdate) (*models.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok || l.UserRef != ownerID {
		return nil, mongo.ErrNoDocuments
	}
	l.Name = update.Name
	l.Slug = update.Slug
	l.Description = update.Description
	l.Address = update.Address
	l.Type = update.Type
	l.Bedrooms = update.Bedrooms
	l.Bathrooms = update.Bathrooms
	l.RegularPrice = update.RegularPrice
	l.DiscountPrice = update.DiscountPrice
	l.Parking = update.Parking
	l.Furnished = update.Furnished
	l.Offer = update.Offer
	l.ImageURLs = append([]string(nil), update.ImageURLs...)
	l.UpdatedAt = update.UpdatedAt
	s.listings[id] = l
	return &l, nil
}

func (s *memoryListingStore) DeleteOwned(_ context.Context, id, ownerID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.listings[id]
	if !ok || l.UserRef != ownerID {
		return 0, nil
	}
	delete(s.listings, id)
	return 1, nil
}

func (s *memoryListingStore) DeleteByOwner(_ context.Context, ownerID primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, l := range s.listings {
		if l.UserRef == ownerID {
			delete(s.listings, id)
			n++
		}
	}
	return n, nil
}

// memoryUserStore keeps users in a map.
type memoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[primitive.ObjectID]models.User{}}
}

func (s *memoryUserStore) Insert(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[user.Id] = *user
	return nil
}

func (s *memoryUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (s *memoryUserStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if v, ok := set["username"].(string); ok {
		u.Username = v
	}
	if v, ok := set["email"].(string); ok {
		u.Email = v
	}
	if v, ok := set["bio"].(string); ok {
		u.Bio = v
	}
	if v, ok := set["avatar"].(string); ok {
		u.Avatar = v
	}
	if v, ok := set["password"].(string); ok {
		u.Password = v
	}
	s.users[id] = u
	return &u, nil
}

func (s *memoryUserStore) Delete(_ context.Context, id primitive.ObjectID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return 0, nil
	}
	delete(s.users, id)
	return 1, nil
}

// fakeStorage records uploads and destroys. failOn makes the upload of that
// file content fail.
type fakeStorage struct {
	mu        sync.Mutex
	failOn    map[string]bool
	destroyed []string
}

func (s *fakeStorage) Upload(_ context.Context, file models.File) (models.UploadedImage, error) {
	f := file.File.(namedFile)
	if s.failOn[f.name] {
		return models.UploadedImage{}, errors.New("upload refused")
	}
	return models.UploadedImage{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/estatery/" + f.name + ".jpg",
		PublicID: "estatery/" + f.name,
	}, nil
}

func (s *fakeStorage) Destroy(_ context.Context, publicID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destroyed = append(s.destroyed, publicID)
	return nil
}

// namedFile is a multipart.File carrying a name used by fakeStorage.
type namedFile struct {
	name string
}

func (namedFile) Read([]byte) (int, error)          { return 0, errors.New("eof") }
func (namedFile) ReadAt([]byte, int64) (int, error) { return 0, errors.New("eof") }
func (namedFile) Seek(int64, int) (int64, error)    { return 0, nil }
func (namedFile) Close() error                      { return nil }

// recordingMedia records the URLs handed to DestroyImageURLs.
type recordingMedia struct {
	mu        sync.Mutex
	destroyed []string
}

func (m *recordingMedia) UploadImages(context.Context, []models.File) ([]models.UploadedImage, error) {
	return nil, nil
}

func (m *recordingMedia) UploadImage(context.Context, models.File) (models.UploadedImage, error) {
	return models.UploadedImage{}, nil
}

func (m *recordingMedia) DestroyImageURLs(_ context.Context, urls []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyed = append(m.destroyed, urls...)
}

// inlineTransactor runs fn directly and reports whether it was used.
type inlineTransactor struct {
	calls  int
	active bool
}

func (t *inlineTransactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	t.active = true
	defer func() { t.active = false }()
	return fn(ctx)
}

// txAwareCache records invalidations, split by whether a transaction was open.
type txAwareCache struct {
	tx          *inlineTransactor
	duringTx    []primitive.ObjectID
	afterCommit []primitive.ObjectID
}

func (c *txAwareCache) Get(context.Context, string) (*models.Listing, bool) { return nil, false }
func (c *txAwareCache) Set(context.Context, *models.Listing)                {}

func (c *txAwareCache) Invalidate(_ context.Context, listing *models.Listing) {
	if c.tx.active {
		c.duringTx = append(c.duringTx, listing.ID)
		return
	}
	c.afterCommit = append(c.afterCommit, listing.ID)
}

type fakeGoogle struct {
	identity models.GoogleIdentity
	err      error
}

func (g fakeGoogle) Verify(context.Context, string) (models.GoogleIdentity, error) {
	return g.identity, g.err
}

type recordingMailer struct {
	sent []models.User
}

func (m *recordingMailer) SendWelcome(user models.User) {
	m.sent = append(m.sent, user)
}
