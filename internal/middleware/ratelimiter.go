package middleware

import (
	"errors"
	"net/http"
	"time"

	"estatery-api-io/api/pkg/util"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimiter limits each client IP to limit requests per second, counted in Redis.
func RateLimiter(client *redis.Client, limit uint) gin.HandlerFunc {
	store := ratelimit.RedisStore(&ratelimit.RedisOptions{
		RedisClient: client,
		Rate:        time.Second,
		Limit:       limit,
	})

	return ratelimit.RateLimiter(store, &ratelimit.Options{
		ErrorHandler: func(c *gin.Context, info ratelimit.Info) {
			util.HandleError(c, http.StatusTooManyRequests, errors.New("Too many requests. Try again in "+time.Until(info.ResetTime).Round(time.Millisecond).String()))
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
