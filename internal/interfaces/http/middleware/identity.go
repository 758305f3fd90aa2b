package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const UserIDKey = "user_id"

// IdentityMiddleware resolves the caller from the X-User-ID header set by
// the authentication gateway in front of this service. Requests without a
// valid id are rejected; verifying the header's authenticity is the
// gateway's job, not ours.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthenticated",
				"message": "missing caller identity",
			})
			c.Abort()
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    "unauthenticated",
				"message": "invalid caller identity",
			})
			c.Abort()
			return
		}

		c.Set(UserIDKey, id)
		c.Next()
	}
}

// GetUserID gets the caller's user ID from context
func GetUserID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
