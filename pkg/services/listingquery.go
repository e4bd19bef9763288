package services

import (
	"regexp"
	"strconv"
	"strings"

	"estatery-api-io/api/internal/common"
	"estatery-api-io/api/pkg/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// listingSortFields maps accepted sort keys to stored field names.
var listingSortFields = map[string]string{
	"createdAt":     "created_at",
	"updatedAt":     "updated_at",
	"regularPrice":  "regular_price",
	"discountPrice": "discount_price",
	"name":          "name",
	"bedrooms":      "bedrooms",
	"bathrooms":     "bathrooms",
}

const defaultListingSort = "createdAt"

// ListingQueryPlan is the resolved filter, sort and page window of a listing search.
// A nil flag pointer means the field is unconstrained.
type ListingQueryPlan struct {
	SearchTerm string
	Types      []models.ListingType
	Offer      *bool
	Parking    *bool
	Furnished  *bool
	SortField  string
	SortOrder  int
	Limit      int64
	StartIndex int64
}

// BuildListingQuery resolves raw search parameters into a query plan. It never fails:
// malformed values fall back to their defaults.
func BuildListingQuery(params models.ListingQueryParams) ListingQueryPlan {
	plan := ListingQueryPlan{
		SearchTerm: deref(params.SearchTerm),
		Types:      resolveListingTypes(deref(params.Type)),
		Offer:      resolveFlag(params.Offer),
		Parking:    resolveFlag(params.Parking),
		Furnished:  resolveFlag(params.Furnished),
		SortField:  listingSortFields[defaultListingSort],
		SortOrder:  -1,
		Limit:      common.DEFAULT_SEARCH_LIMIT,
		StartIndex: 0,
	}

	if field, ok := listingSortFields[deref(params.Sort)]; ok {
		plan.SortField = field
	}
	if deref(params.Order) == "asc" {
		plan.SortOrder = 1
	}
	if limit, err := strconv.ParseInt(deref(params.Limit), 10, 64); err == nil && limit > 0 {
		plan.Limit = min(limit, common.MAX_SEARCH_LIMIT)
	}
	if start, err := strconv.ParseInt(deref(params.StartIndex), 10, 64); err == nil && start >= 0 {
		plan.StartIndex = start
	}

	return plan
}

// Filter returns the MongoDB filter for the plan.
func (p ListingQueryPlan) Filter() bson.M {
	filter := bson.M{
		"name": bson.M{
			"$regex":   regexp.QuoteMeta(p.SearchTerm),
			"$options": "i",
		},
		"type":      bson.M{"$in": p.Types},
		"offer":     flagFilter(p.Offer),
		"parking":   flagFilter(p.Parking),
		"furnished": flagFilter(p.Furnished),
	}
	return filter
}

// FindOptions returns sort, skip and limit for the plan.
func (p ListingQueryPlan) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: p.SortField, Value: p.SortOrder}, {Key: "_id", Value: p.SortOrder}}).
		SetSkip(p.StartIndex).
		SetLimit(p.Limit)
}

func resolveListingTypes(raw string) []models.ListingType {
	switch models.ListingType(raw) {
	case models.ListingTypeSale:
		return []models.ListingType{models.ListingTypeSale}
	case models.ListingTypeRent:
		return []models.ListingType{models.ListingTypeRent}
	default:
		return []models.ListingType{models.ListingTypeSale, models.ListingTypeRent}
	}
}

// resolveFlag leaves a field unconstrained when it is absent, "undefined", "false"
// or unparseable. Any other boolean string constrains the field to that value.
func resolveFlag(raw *string) *bool {
	if raw == nil {
		return nil
	}
	value := strings.ToLower(strings.TrimSpace(*raw))
	switch value {
	case "", "undefined", "false":
		return nil
	}
	v, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &v
}

func flagFilter(flag *bool) bson.M {
	if flag == nil {
		return bson.M{"$in": []bool{false, true}}
	}
	return bson.M{"$eq": *flag}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
