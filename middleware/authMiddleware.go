package middleware

import (
	"net/http"
	"strings"

	"golang-physiobackend/helpers"
	"golang-physiobackend/services"

	"github.com/gin-gonic/gin"
)

// Authentication validates the bearer token and stores the caller's identity
// on the context for downstream handlers.
func Authentication() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientToken := c.Request.Header.Get("Authorization")
		if clientToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization header provided"})
			c.Abort()
			return
		}
		clientToken = strings.TrimPrefix(clientToken, "Bearer ")

		claims, msg := helpers.ValidateToken(clientToken)
		if msg != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			c.Abort()
			return
		}

		c.Set("email", claims.Email)
		c.Set("first_name", claims.FirstName)
		c.Set("last_name", claims.LastName)
		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RequireRole gates a route to the given roles. Must run after
// Authentication.
func RequireRole(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient permissions."})
		c.Abort()
	}
}

// RequireSelfOrRole lets the listed roles through unconditionally; any other
// caller only passes when the route's :patient_id is their own id. Must run
// after Authentication.
func RequireSelfOrRole(elevatedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			c.Abort()
			return
		}

		if !services.CanAccessPatient(role, c.GetString("user_id"), c.Param("patient_id"), elevatedRoles...) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient permissions."})
			c.Abort()
			return
		}

		c.Next()
	}
}
