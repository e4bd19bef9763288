package controllers

import (
	"net/http"

	"estatery-api-io/api/internal/helpers"
	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/services"
	"estatery-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type ListingController struct {
	listingService services.ListingService
}

func InitListingController(listingService services.ListingService) *ListingController {
	return &ListingController{listingService: listingService}
}

// CreateListing handles POST /api/listing/create
func (lc *ListingController) CreateListing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		myID, ok := helpers.MyId(c)
		if !ok {
			return
		}

		var req models.ListingRequest
		if !bindJSON(c, &req) {
			return
		}

		listing, err := lc.listingService.CreateListing(ctx, myID, req)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "Listing created successfully", listing)
	}
}

// DeleteListing handles DELETE /api/listing/delete/:id
func (lc *ListingController) DeleteListing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		listingID, myID, ok := helpers.ParamAndMyId(c, "id")
		if !ok {
			return
		}

		if err := lc.listingService.DeleteListing(ctx, myID, listingID); err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Listing has been deleted!", nil)
	}
}

// UpdateListing handles POST /api/listing/update/:id
func (lc *ListingController) UpdateListing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		listingID, myID, ok := helpers.ParamAndMyId(c, "id")
		if !ok {
			return
		}

		var req models.ListingRequest
		if !bindJSON(c, &req) {
			return
		}

		listing, err := lc.listingService.UpdateListing(ctx, myID, listingID, req)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "Listing updated successfully", listing)
	}
}

// GetListing handles GET /api/listing/get/:id where id is an ObjectID or a slug.
func (lc *ListingController) GetListing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		listing, err := lc.listingService.GetListing(ctx, c.Param("id"))
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", listing)
	}
}

// GetListings handles GET /api/listing/get
func (lc *ListingController) GetListings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var params models.ListingQueryParams
		// string fields cannot fail to bind; bad values fall back to defaults
		_ = c.ShouldBindQuery(&params)

		listings, pagination, err := lc.listingService.SearchListings(ctx, params)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccessMeta(c, http.StatusOK, "success", listings, pagination)
	}
}
