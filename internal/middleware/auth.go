package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/domain"
	"storefront/internal/service"
)

const (
	ContextKeyUserID = "user_id"
	ContextKeyEmail  = "email"
	ContextKeyRole   = "role"
	ContextKeyClaims = "claims"
)

// AuthMiddleware verifies the operator's bearer token and stores its claims
// on the Gin context. Tokens are minted elsewhere; this service only checks them.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortAuth(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing or invalid authorization header")
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			abortAuth(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyEmail, claims.Email)
		c.Set(ContextKeyRole, string(claims.Role))
		c.Next()
	}
}

// RequireRole lets the request through only for the listed operator roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		role := GetRole(c)
		if role == "" {
			abortAuth(c, http.StatusForbidden, "FORBIDDEN", "role not found in context")
			return
		}
		if _, ok := allowed[domain.UserRole(role)]; !ok {
			abortAuth(c, http.StatusForbidden, "FORBIDDEN", "insufficient permissions")
			return
		}
		c.Next()
	}
}

// GetUserID returns the authenticated operator ID, or ErrUnauthorized when
// the context carries none.
func GetUserID(c *gin.Context) (string, error) {
	id := c.GetString(ContextKeyUserID)
	if id == "" {
		return "", domain.ErrUnauthorized
	}
	return id, nil
}

// GetRole returns the operator role, or "" when unset.
func GetRole(c *gin.Context) string {
	return c.GetString(ContextKeyRole)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortAuth(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}
