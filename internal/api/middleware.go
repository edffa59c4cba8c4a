package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tharadol/sport-booking-backend/internal/auth"
	"github.com/tharadol/sport-booking-backend/internal/user"
)

// RequireAdmin ensures the authenticated user holds the admin role. The role
// is re-read from storage rather than trusted from the token, so demotions
// take effect before the token expires. MUST be used after auth.AuthRequired.
func RequireAdmin(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}

		if !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
