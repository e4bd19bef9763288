package controllers

import (
	"net/http"

	"estatery-api-io/api/internal/apperr"
	"estatery-api-io/api/internal/auth"
	"estatery-api-io/api/internal/helpers"
	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/services"
	"estatery-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService    services.UserService
	listingService services.ListingService
	blacklist      auth.TokenBlacklist
	cookieSecure   bool
}

func InitUserController(userService services.UserService, listingService services.ListingService, blacklist auth.TokenBlacklist, cookieSecure bool) *UserController {
	return &UserController{
		userService:    userService,
		listingService: listingService,
		blacklist:      blacklist,
		cookieSecure:   cookieSecure,
	}
}

// GetUser handles GET /api/user/:id and exposes the public profile used to contact a landlord.
func (uc *UserController) GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		user, err := uc.userService.GetUser(ctx, c.Param("id"))
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", user.Public())
	}
}

// UpdateUser handles POST /api/user/update/:id
func (uc *UserController) UpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		userID, myID, ok := helpers.ParamAndMyId(c, "id")
		if !ok {
			return
		}

		var req models.UpdateUserRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := uc.userService.UpdateUser(ctx, myID, userID, req)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "User updated successfully", user)
	}
}

// DeleteUser handles DELETE /api/user/delete/:id
func (uc *UserController) DeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		userID, myID, ok := helpers.ParamAndMyId(c, "id")
		if !ok {
			return
		}

		if err := uc.userService.DeleteUser(ctx, myID, userID); err != nil {
			util.HandleAppError(c, err)
			return
		}

		if err := auth.RevokeCurrentToken(c, uc.blacklist); err != nil {
			util.LogError("failed to blacklist token of deleted user", err)
		}
		auth.ClearSessionCookie(c, uc.cookieSecure)
		util.HandleSuccess(c, http.StatusOK, "User has been deleted!", nil)
	}
}

// GetUserListings handles GET /api/user/listings/:id
func (uc *UserController) GetUserListings() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		userID, myID, ok := helpers.ParamAndMyId(c, "id")
		if !ok {
			return
		}

		if myID.Hex() != userID {
			util.HandleAppError(c, apperr.Authorization("You can only view your own listings!"))
			return
		}

		listings, err := uc.listingService.GetUserListings(ctx, myID)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusOK, "success", listings)
	}
}
