package controllers

import (
	"net/http"

	"estatery-api-io/api/internal/auth"
	"estatery-api-io/api/pkg/models"
	"estatery-api-io/api/pkg/services"
	"estatery-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	userService  services.UserService
	tokens       *auth.TokenManager
	blacklist    auth.TokenBlacklist
	cookieSecure bool
}

func InitAuthController(userService services.UserService, tokens *auth.TokenManager, blacklist auth.TokenBlacklist, cookieSecure bool) *AuthController {
	return &AuthController{
		userService:  userService,
		tokens:       tokens,
		blacklist:    blacklist,
		cookieSecure: cookieSecure,
	}
}

// Signup handles POST /api/auth/signup
func (ac *AuthController) Signup() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var req models.CreateUserRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := ac.userService.Signup(ctx, req)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		util.HandleSuccess(c, http.StatusCreated, "User Created successfully", user)
	}
}

// Signin handles POST /api/auth/signin
func (ac *AuthController) Signin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var req models.UserAuthRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := ac.userService.Signin(ctx, req)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		ac.startSession(c, user)
	}
}

// GoogleSignin handles POST /api/auth/google
func (ac *AuthController) GoogleSignin() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := WithTimeout(c)
		defer cancel()

		var req models.GoogleAuthRequest
		if !bindJSON(c, &req) {
			return
		}

		user, err := ac.userService.GoogleSignin(ctx, req)
		if err != nil {
			util.HandleAppError(c, err)
			return
		}

		ac.startSession(c, user)
	}
}

// Signout handles GET /api/auth/signout
func (ac *AuthController) Signout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := auth.RevokeCurrentToken(c, ac.blacklist); err != nil {
			util.LogError("failed to blacklist token on signout", err)
		}

		auth.ClearSessionCookie(c, ac.cookieSecure)
		util.HandleSuccess(c, http.StatusOK, "User has been logged out!", nil)
	}
}

func (ac *AuthController) startSession(c *gin.Context, user *models.User) {
	token, expiresAt, err := ac.tokens.Generate(user.Id)
	if err != nil {
		util.HandleError(c, http.StatusInternalServerError, err)
		return
	}

	auth.SetSessionCookie(c, token, ac.tokens.TTL(), ac.cookieSecure)
	util.HandleSuccess(c, http.StatusOK, "Signed in successfully", gin.H{
		"user":      user,
		"token":     token,
		"expiresAt": expiresAt.Unix(),
	})
}
