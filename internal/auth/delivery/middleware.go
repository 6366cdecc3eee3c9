package delivery

import (
	"net/http"
	"strings"

	authdomain "startupmail-backend/internal/auth/domain"
	"startupmail-backend/internal/auth/usecase"
	"startupmail-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

const userContextKey = "user"

func AuthMiddleware(authUsecase usecase.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		user, err := authUsecase.ResolveToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": apperror.PublicMessage(err)})
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by
// AuthMiddleware.
func CurrentUser(c *gin.Context) *authdomain.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*authdomain.User); ok {
			return user
		}
	}
	return nil
}
