package services

import (
	"context"
	"strings"
	"time"

	"estatery-api-io/api/internal/apperr"
	"estatery-api-io/api/internal/common"
	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/util"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	errListingNotFound      = "Listing not found!"
	errListingNotOwned      = "You can only modify your own listings!"
	errDiscountAboveRegular = "Discount price must be lower than regular price"

	insertAttempts = 3
)

type listingService struct {
	store ListingStore
	cache ListingCache
	media MediaService
}

// NewListingService wires the listing store with an optional cache and media service.
func NewListingService(store ListingStore, cache ListingCache, media MediaService) ListingService {
	if cache == nil {
		cache = noopListingCache{}
	}
	return &listingService{
		store: store,
		cache: cache,
		media: media,
	}
}

// AuthorizeListingMutation verifies that userID owns the listing before any write.
// A malformed id is reported the same way as a missing listing.
func (s *listingService) AuthorizeListingMutation(ctx context.Context, userID primitive.ObjectID, listingID string) (*models.Listing, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(listingID))
	if err != nil {
		return nil, apperr.NotFound(errListingNotFound)
	}

	listing, err := s.store.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(errListingNotFound)
		}
		return nil, asAppError(err)
	}

	if userID.IsZero() || listing.UserRef != userID {
		return nil, apperr.Authorization(errListingNotOwned)
	}
	return listing, nil
}

func (s *listingService) CreateListing(ctx context.Context, userID primitive.ObjectID, req models.ListingRequest) (*models.Listing, error) {
	if err := validateListingRequest(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing := &models.Listing{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Address:       req.Address,
		Type:          models.ListingType(req.Type),
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Parking:       req.Parking,
		Furnished:     req.Furnished,
		Offer:         req.Offer,
		ImageURLs:     append([]string(nil), req.ImageURLs...),
		UserRef:       userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// A slug collision only needs a fresh id, which changes the slug suffix.
	var err error
	for attempt := 0; attempt < insertAttempts; attempt++ {
		listing.ID = primitive.NewObjectID()
		listing.Slug = models.ListingSlug(req.Name, listing.ID)
		if err = s.store.Insert(ctx, listing); !apperr.Is(err, apperr.KindConflict) {
			break
		}
		util.Log.WithField("slug", listing.Slug).Warn("listing slug collision, retrying")
	}
	if err != nil {
		return nil, asAppError(err)
	}

	util.Log.WithField("listing_id", listing.ID.Hex()).WithField("user_id", userID.Hex()).Info("listing created")
	return listing, nil
}

// GetListing fetches a listing by ObjectID or slug.
func (s *listingService) GetListing(ctx context.Context, identifier string) (*models.Listing, error) {
	if common.IsEmptyString(identifier) {
		return nil, apperr.NotFound(errListingNotFound)
	}

	identifier = strings.TrimSpace(identifier)
	if cached, ok := s.cache.Get(ctx, identifier); ok {
		return cached, nil
	}

	var (
		listing *models.Listing
		err     error
	)
	if primitive.IsValidObjectID(identifier) {
		id, _ := primitive.ObjectIDFromHex(identifier)
		listing, err = s.store.FindByID(ctx, id)
	} else {
		listing, err = s.store.FindBySlug(ctx, identifier)
	}
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(errListingNotFound)
		}
		return nil, asAppError(err)
	}

	s.cache.Set(ctx, listing)
	return listing, nil
}

func (s *listingService) SearchListings(ctx context.Context, params models.ListingQueryParams) ([]models.Listing, util.Pagination, error) {
	plan := BuildListingQuery(params)
	filter := plan.Filter()

	listings, err := s.store.Find(ctx, filter, plan.FindOptions())
	if err != nil {
		return nil, util.Pagination{}, asAppError(err)
	}

	count, err := s.store.Count(ctx, filter)
	if err != nil {
		return nil, util.Pagination{}, asAppError(err)
	}

	return listings, util.Pagination{
		Limit:      int(plan.Limit),
		StartIndex: int(plan.StartIndex),
		Count:      count,
	}, nil
}

func (s *listingService) GetUserListings(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error) {
	listings, err := s.store.FindByOwner(ctx, userID)
	if err != nil {
		return nil, asAppError(err)
	}
	return listings, nil
}

func (s *listingService) UpdateListing(ctx context.Context, userID primitive.ObjectID, listingID string, req models.ListingRequest) (*models.Listing, error) {
	current, err := s.AuthorizeListingMutation(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	if err := validateListingRequest(req); err != nil {
		return nil, err
	}

	update := models.ListingUpdate{
		Name:          strings.TrimSpace(req.Name),
		Slug:          models.ListingSlug(req.Name, current.ID),
		Description:   req.Description,
		Address:       req.Address,
		Type:          models.ListingType(req.Type),
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		RegularPrice:  req.RegularPrice,
		DiscountPrice: req.DiscountPrice,
		Parking:       req.Parking,
		Furnished:     req.Furnished,
		Offer:         req.Offer,
		ImageURLs:     append([]string(nil), req.ImageURLs...),
		UpdatedAt:     time.Now().UTC(),
	}

	updated, err := s.store.UpdateOwned(ctx, current.ID, userID, update)
	if err != nil {
		// the listing vanished or changed owner between the guard and the write
		if isNotFound(err) {
			return nil, apperr.NotFound(errListingNotFound)
		}
		return nil, asAppError(err)
	}

	s.cache.Invalidate(ctx, current)
	if s.media != nil {
		s.media.DestroyImageURLs(ctx, removedImages(current.ImageURLs, updated.ImageURLs))
	}
	return updated, nil
}

func (s *listingService) DeleteListing(ctx context.Context, userID primitive.ObjectID, listingID string) error {
	listing, err := s.AuthorizeListingMutation(ctx, userID, listingID)
	if err != nil {
		return err
	}

	deleted, err := s.store.DeleteOwned(ctx, listing.ID, userID)
	if err != nil {
		return asAppError(err)
	}
	if deleted == 0 {
		return apperr.NotFound(errListingNotFound)
	}

	s.cache.Invalidate(ctx, listing)
	if s.media != nil {
		s.media.DestroyImageURLs(ctx, listing.ImageURLs)
	}

	util.Log.WithField("listing_id", listing.ID.Hex()).WithField("user_id", userID.Hex()).Info("listing deleted")
	return nil
}

// DeleteListingsByOwner removes every listing of a user and returns what was removed.
// Cached copies and images are left for the caller to release once the delete is durable.
func (s *listingService) DeleteListingsByOwner(ctx context.Context, userID primitive.ObjectID) ([]models.Listing, error) {
	listings, err := s.store.FindByOwner(ctx, userID)
	if err != nil {
		return nil, asAppError(err)
	}

	if _, err := s.store.DeleteByOwner(ctx, userID); err != nil {
		return nil, asAppError(err)
	}
	return listings, nil
}

// EvictListings drops cached copies of listings that no longer exist.
func (s *listingService) EvictListings(ctx context.Context, listings []models.Listing) {
	for i := range listings {
		s.cache.Invalidate(ctx, &listings[i])
	}
}

func validateListingRequest(req models.ListingRequest) error {
	if err := common.Validate.Struct(req); err != nil {
		return apperr.Validation(common.ValidationMessage(err))
	}
	if req.DiscountPrice > req.RegularPrice {
		return apperr.Validation(errDiscountAboveRegular)
	}
	if req.Offer && req.DiscountPrice >= req.RegularPrice {
		return apperr.Validation(errDiscountAboveRegular)
	}
	return nil
}

func removedImages(before, after []string) []string {
	kept := make(map[string]struct{}, len(after))
	for _, u := range after {
		kept[u] = struct{}{}
	}

	var removed []string
	for _, u := range before {
		if _, ok := kept[u]; !ok {
			removed = append(removed, u)
		}
	}
	return removed
}

type noopListingCache struct{}

func (noopListingCache) Get(context.Context, string) (*models.Listing, bool) { return nil, false }
func (noopListingCache) Set(context.Context, *models.Listing)                {}
func (noopListingCache) Invalidate(context.Context, *models.Listing)         {}
