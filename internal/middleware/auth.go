package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taxiq/internal/domain"
	"taxiq/internal/service"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxCallerID   = "callerID"
	CtxCallerRole = "callerRole"
)

// Auth verifies the bearer token and stores the caller's identity on the
// request context. Requests without a valid token get 401.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing bearer token", "code": "unauthorized",
			})
			return
		}

		claims, err := authService.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid token", "code": "unauthorized",
			})
			return
		}

		c.Set(CtxCallerID, claims.SubjectID)
		c.Set(CtxCallerRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose role is not in the allowed set with 403.
// Must run after Auth.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	allowed := make(map[domain.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role, ok := CallerRole(c)
		if !ok || !allowed[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "insufficient role", "code": "forbidden",
			})
			return
		}
		c.Next()
	}
}

// CallerID returns the authenticated principal's ID.
func CallerID(c *gin.Context) (string, bool) {
	v, ok := c.Get(CtxCallerID)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}

// CallerRole returns the authenticated principal's role.
func CallerRole(c *gin.Context) (domain.Role, bool) {
	v, ok := c.Get(CtxCallerRole)
	if !ok {
		return "", false
	}
	role, ok := v.(domain.Role)
	return role, ok
}

// OwnsOrAdmin reports whether the caller is the given principal or an admin.
// Non-admin callers acting on another principal's resource get rejected by
// the handlers using this.
func OwnsOrAdmin(c *gin.Context, principalID string) bool {
	role, _ := CallerRole(c)
	if role == domain.RoleAdmin {
		return true
	}
	id, _ := CallerID(c)
	return id != "" && id == principalID
}
