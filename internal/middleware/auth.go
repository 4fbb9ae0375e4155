package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auth-backend/internal/auth"
)

const ContextUserID = "userId"

// AuthRequired rejects requests without a valid bearer access token. The
// response body is identical for every failure mode. No user lookup is
// performed; verification is purely token-based.
func AuthRequired(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		userID, err := tokens.VerifyAccessToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}
