package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oshxona/restaurant-backend/models"
	"github.com/oshxona/restaurant-backend/utils"
)

// AdminOnly rejects any caller whose token does not carry the admin role.
// Must run after AuthMiddleware.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			utils.RespondError(c, http.StatusUnauthorized, utils.ErrNoPermission)
			c.Abort()
			return
		}

		if role != models.RoleAdmin {
			utils.RespondError(c, http.StatusForbidden, utils.ErrNoPermission)
			c.Abort()
			return
		}

		c.Next()
	}
}
