package middleware

import (
	"net/http"

	"github.com/aqilnajmi/sales_commission_tracker/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// RequireCapability creates a Gin middleware that rejects requests whose
// authenticated role does not grant the capability. It must run after
// AuthMiddleware, which stashes the role claim.
func RequireCapability(cap domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			GetLoggerFromCtx(c.Request.Context()).Error("Role missing from authenticated request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		if !domain.RoleAllows(role, cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// RequireAnyCapability passes when the role grants at least one of the
// capabilities. Used where admins and sales persons share an endpoint with
// different scoping applied at the service layer.
func RequireAnyCapability(caps ...domain.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRoleFromContext(c)
		if !ok {
			GetLoggerFromCtx(c.Request.Context()).Error("Role missing from authenticated request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		for _, cap := range caps {
			if domain.RoleAllows(role, cap) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
	}
}
