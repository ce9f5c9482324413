package middleware

import (
	"net/http"
	"strings"

	"libraryhub/internal/middleware/auth"

	"github.com/gin-gonic/gin"
)

// TokenValidator is satisfied by *auth.TokenManager.
type TokenValidator interface {
	Validate(tokenString string) (*auth.Claims, error)
}

// AuthMiddleware is a Gin middleware for JWT authentication of API requests
// It checks for the presence and validity of a JWT token in the Authorization header
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		// "Bearer <token>"
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := validator.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("claims", claims)
		c.Set("subject", claims.Subject)
		c.Set("scopes", claims.Scopes)

		c.Next()
	}
}

// RequireScopes checks the token carries every scope. Without a preceding
// AuthMiddleware (auth disabled) it lets the request through.
func RequireScopes(requiredScopes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scopesInterface, exists := c.Get("scopes")
		if !exists {
			c.Next()
			return
		}

		tokenScopes, ok := scopesInterface.([]string)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid scope format"})
			return
		}

		if !hasAllScopes(tokenScopes, requiredScopes) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":    "insufficient scopes",
				"required": requiredScopes,
				"granted":  tokenScopes,
			})
			return
		}

		c.Next()
	}
}

func hasAllScopes(tokenScopes, requiredScopes []string) bool {
	granted := make(map[string]bool, len(tokenScopes))
	for _, scope := range tokenScopes {
		granted[scope] = true
	}
	if granted["*"] {
		return true
	}

	for _, required := range requiredScopes {
		if !granted[required] && !matchesWildcardScope(tokenScopes, required) {
			return false
		}
	}
	return true
}

// matchesWildcardScope lets "catalog:*" satisfy "catalog:write"
func matchesWildcardScope(tokenScopes []string, required string) bool {
	for _, scope := range tokenScopes {
		if strings.HasSuffix(scope, "*") && strings.HasPrefix(required, strings.TrimSuffix(scope, "*")) {
			return true
		}
	}
	return false
}
