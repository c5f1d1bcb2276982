package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/thereayou/socialite/pkg/auth"
)

const IdentityKey = "identity"

// AuthMiddleware проверяет JWT токен и кладет Identity в контекст
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing or invalid token"})
			c.Abort()
			return
		}

		// Проверяем, не в черном списке ли токен
		exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
		if err != nil || exists > 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "token is blacklisted"})
			c.Abort()
			return
		}

		identity, err := verifyIdentity(jwtManager, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// WSAuthMiddleware специальный middleware для WebSocket: токен из query или header
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "missing token"})
			c.Abort()
			return
		}

		exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
		if err != nil || exists > 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "token is blacklisted"})
			c.Abort()
			return
		}

		identity, err := verifyIdentity(jwtManager, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

func verifyIdentity(jwtManager *auth.JWTManager, token string) (auth.Identity, error) {
	claims, err := jwtManager.Verify(token)
	if err != nil {
		return auth.Identity{}, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return auth.Identity{}, err
	}

	return auth.Identity{
		ID:   userID,
		Name: claims.Name,
		Nick: claims.Nick,
	}, nil
}
