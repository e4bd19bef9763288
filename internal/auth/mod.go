package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"estatery-api-io/api/pkg/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	userIDKey = "userId"
	claimKey  = "authClaim"
	tokenKey  = "authToken"

	blacklistPrefix = "blacklist:"
)

var (
	ErrBlacklistedToken = errors.New("this session has been signed out, please sign in again")
	ErrNoSession        = errors.New("unauthorized: no authenticated user in request")
)

// TokenBlacklist records signed-out tokens until they expire.
type TokenBlacklist interface {
	Invalidate(ctx context.Context, token string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type redisBlacklist struct {
	db *redis.Client
}

func NewRedisBlacklist(db *redis.Client) TokenBlacklist {
	return &redisBlacklist{db: db}
}

func (b *redisBlacklist) Invalidate(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.db.Set(ctx, blacklistPrefix+token, true, ttl).Err()
}

// IsBlacklisted fails closed: a Redis error is returned to the caller.
func (b *redisBlacklist) IsBlacklisted(ctx context.Context, token string) (bool, error) {
	_, err := b.db.Get(ctx, blacklistPrefix+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return true, nil
}

// Auth verifies the access token and stores the acting user in the context.
func Auth(tokens *TokenManager, blacklist TokenBlacklist) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			util.HandleError(c, http.StatusUnauthorized, ErrMissingToken)
			c.Abort()
			return
		}

		claim, err := tokens.Validate(tokenString)
		if err != nil {
			util.HandleError(c, http.StatusUnauthorized, err)
			c.Abort()
			return
		}

		blacklisted, err := blacklist.IsBlacklisted(c.Request.Context(), tokenString)
		if err != nil {
			util.Log.WithError(err).Error("error while checking token blacklist")
			util.HandleError(c, http.StatusUnauthorized, ErrInvalidToken)
			c.Abort()
			return
		}
		if blacklisted {
			util.HandleError(c, http.StatusUnauthorized, ErrBlacklistedToken)
			c.Abort()
			return
		}

		userID, _ := claim.GetUserObjectId()
		c.Set(userIDKey, userID)
		c.Set(claimKey, claim)
		c.Set(tokenKey, tokenString)
		c.Next()
	}
}

// CurrentUserID returns the acting user set by Auth.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, error) {
	value, ok := c.Get(userIDKey)
	if !ok {
		return primitive.NilObjectID, ErrNoSession
	}
	userID, ok := value.(primitive.ObjectID)
	if !ok || userID.IsZero() {
		return primitive.NilObjectID, ErrNoSession
	}
	return userID, nil
}

// CurrentToken returns the raw token and its claim set by Auth.
func CurrentToken(c *gin.Context) (string, JWTClaim, bool) {
	token, ok := c.Get(tokenKey)
	if !ok {
		return "", JWTClaim{}, false
	}
	claim, ok := c.Get(claimKey)
	if !ok {
		return "", JWTClaim{}, false
	}
	return token.(string), claim.(JWTClaim), true
}

// SetCurrentUser stores the acting user in the context.
func SetCurrentUser(c *gin.Context, userID primitive.ObjectID) {
	c.Set(userIDKey, userID)
}

// RevokeCurrentToken blacklists the request's token for the rest of its lifetime.
func RevokeCurrentToken(c *gin.Context, blacklist TokenBlacklist) error {
	token, claim, ok := CurrentToken(c)
	if !ok {
		return nil
	}
	return blacklist.Invalidate(c.Request.Context(), token, claim.RemainingTTL())
}
