package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cinevault/internal/auth"
)

// tokenHeader is the request header carrying "<scheme> <jwt>".
const tokenHeader = "token"

const claimsKey = "claims"

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, token")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth verifies the access token and attaches its claims to the
// context. It is a strict gate: a missing header stops the request with
// 401, a failed verification with 403. Downstream handlers never run
// without a decoded identity.
func requireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(tokenHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You are not authenticated!"})
			return
		}

		// only the part after the scheme is verified
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is not valid!"})
			return
		}

		claims, err := auth.ParseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Token is not valid!"})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// currentClaims returns the verified identity attached by requireAuth,
// or nil on routes that skip it.
func currentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
