package auth

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SESSION_NAME is the cookie carrying the access token.
var SESSION_NAME = "access_token"

// SetSessionCookie stores the access token in an httpOnly cookie.
func SetSessionCookie(ctx *gin.Context, token string, ttl time.Duration, secure bool) {
	ctx.SetSameSite(sameSite(secure))
	ctx.SetCookie(SESSION_NAME, token, int(ttl.Seconds()), "/", "", secure || isHTTPS(ctx), true)
}

// ClearSessionCookie expires the access token cookie.
func ClearSessionCookie(ctx *gin.Context, secure bool) {
	ctx.SetSameSite(sameSite(secure))
	ctx.SetCookie(SESSION_NAME, "", -1, "/", "", secure || isHTTPS(ctx), true)
}

func sameSite(secure bool) http.SameSite {
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}

func isHTTPS(ctx *gin.Context) bool {
	if ctx.Request.TLS != nil {
		return true
	}

	if ctx.GetHeader("X-Forwarded-Proto") == "https" {
		return true
	}

	if ctx.GetHeader("X-Forwarded-Ssl") == "on" {
		return true
	}

	return false
}

// ExtractToken reads the access token from the session cookie, falling back
// to an Authorization bearer header.
func ExtractToken(ctx *gin.Context) string {
	if token, err := ctx.Cookie(SESSION_NAME); err == nil && token != "" {
		return token
	}

	token, err := ExtractBearerToken(ctx.GetHeader("Authorization"))
	if err != nil {
		return ""
	}
	return token
}

// ExtractBearerToken extracts the Bearer token from the Authorization header
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", fmt.Errorf("authorization header is empty")
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", fmt.Errorf("authorization header does not start with 'Bearer '")
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if token == "" {
		return "", fmt.Errorf("token is empty")
	}

	return token, nil
}
