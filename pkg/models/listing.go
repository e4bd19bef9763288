package models

import (
	"time"

	slug2 "github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ListingType string

const (
	ListingTypeSale ListingType = "sale"
	ListingTypeRent ListingType = "rent"
)

const (
	MinListingImages = 1
	MaxListingImages = 6
)

// Listing is a property offered for sale or rent. UserRef is the creator and never changes.
type Listing struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	Name          string             `bson:"name" json:"name"`
	Slug          string             `bson:"slug" json:"slug"`
	Description   string             `bson:"description" json:"description"`
	Address       string             `bson:"address" json:"address"`
	Type          ListingType        `bson:"type" json:"type"`
	Bedrooms      int                `bson:"bedrooms" json:"bedrooms"`
	Bathrooms     int                `bson:"bathrooms" json:"bathrooms"`
	RegularPrice  float64            `bson:"regular_price" json:"regularPrice"`
	DiscountPrice float64            `bson:"discount_price" json:"discountPrice"`
	Parking       bool               `bson:"parking" json:"parking"`
	Furnished     bool               `bson:"furnished" json:"furnished"`
	Offer         bool               `bson:"offer" json:"offer"`
	ImageURLs     []string           `bson:"image_urls" json:"imageUrls"`
	UserRef       primitive.ObjectID `bson:"user_ref" json:"userRef"`
	CreatedAt     time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updatedAt"`
}

// CoverImage returns the first image, which clients display as the cover.
func (l Listing) CoverImage() string {
	if len(l.ImageURLs) == 0 {
		return ""
	}
	return l.ImageURLs[0]
}

// ListingSlug derives a readable slug, suffixed with part of the id so names may repeat.
func ListingSlug(name string, id primitive.ObjectID) string {
	hex := id.Hex()
	return slug2.Make(name) + "-" + hex[len(hex)-6:]
}

// ListingRequest is the create/update payload. It carries no owner field:
// the owner always comes from the authenticated session.
type ListingRequest struct {
	Name          string   `json:"name" validate:"required,min=10,max=62"`
	Description   string   `json:"description" validate:"required"`
	Address       string   `json:"address" validate:"required"`
	Type          string   `json:"type" validate:"required,oneof=sale rent"`
	Bedrooms      int      `json:"bedrooms" validate:"min=1,max=10"`
	Bathrooms     int      `json:"bathrooms" validate:"min=1,max=10"`
	RegularPrice  float64  `json:"regularPrice" validate:"gt=0"`
	DiscountPrice float64  `json:"discountPrice" validate:"gte=0"`
	Parking       bool     `json:"parking"`
	Furnished     bool     `json:"furnished"`
	Offer         bool     `json:"offer"`
	ImageURLs     []string `json:"imageUrls" validate:"min=1,max=6,dive,required,url"`
}

// ListingUpdate is the set of mutable listing fields written on update.
type ListingUpdate struct {
	Name          string      `bson:"name"`
	Slug          string      `bson:"slug"`
	Description   string      `bson:"description"`
	Address       string      `bson:"address"`
	Type          ListingType `bson:"type"`
	Bedrooms      int         `bson:"bedrooms"`
	Bathrooms     int         `bson:"bathrooms"`
	RegularPrice  float64     `bson:"regular_price"`
	DiscountPrice float64     `bson:"discount_price"`
	Parking       bool        `bson:"parking"`
	Furnished     bool        `bson:"furnished"`
	Offer         bool        `bson:"offer"`
	ImageURLs     []string    `bson:"image_urls"`
	UpdatedAt     time.Time   `bson:"updated_at"`
}

// ListingQueryParams are the raw search parameters as received in the query string.
// Every field is optional; BuildListingQuery resolves defaults.
type ListingQueryParams struct {
	SearchTerm *string `form:"searchTerm"`
	Type       *string `form:"type"`
	Offer      *string `form:"offer"`
	Parking    *string `form:"parking"`
	Furnished  *string `form:"furnished"`
	Sort       *string `form:"sort"`
	Order      *string `form:"order"`
	Limit      *string `form:"limit"`
	StartIndex *string `form:"startIndex"`
}
