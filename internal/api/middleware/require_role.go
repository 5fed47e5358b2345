package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shoply/jobboard/internal/models"
	"github.com/shoply/jobboard/internal/utils"
)

// RequireRole gates a route on the role claim set by JWTAuth.
func RequireRole(allowed ...models.UserRole) gin.HandlerFunc {
	allow := map[models.UserRole]struct{}{}
	for _, a := range allowed {
		allow[a] = struct{}{}
	}

	return func(c *gin.Context) {
		v, ok := c.Get("role")
		role, _ := v.(string)

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "You do not have permission to perform this action.",
			})
			return
		}

		if _, ok := allow[models.UserRole(role)]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, apiError{
				Code:    utils.CodeForbidden,
				Message: "You do not have permission to perform this action.",
			})
			return
		}

		c.Next()
	}
}

func RequireShopOwner() gin.HandlerFunc { return RequireRole(models.RoleShopOwner) }
func RequireJobSeeker() gin.HandlerFunc { return RequireRole(models.RoleJobSeeker) }
