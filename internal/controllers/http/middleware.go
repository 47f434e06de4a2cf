package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"

	"order-service/internal/domain"
	"order-service/internal/infra/redis"
	"order-service/internal/services"
)

const userKey = "currentUser"

// AuthRequired validates the Bearer token and puts the authenticated user
// on the request context. Failures never leak why the credential was
// rejected.
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing credentials"})
			return
		}

		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok
}

// CORSOptions builds the CORS policy for the configured origins. Browsers
// reject credentialed responses carrying the wildcard origin, so credentials
// are only allowed when every origin is explicit.
func CORSOptions(origins []string) cors.Options {
	allowCredentials := true
	for _, o := range origins {
		if o == "*" {
			allowCredentials = false
			break
		}
	}
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: allowCredentials,
	}
}

// RateLimit applies a fixed window per client IP. A broken limiter backend
// fails open.
func RateLimit(limiter *redis.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
