package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDHeader carries the authenticated user id, set by the gateway in
// front of this service after it has verified the caller's credentials.
const UserIDHeader = "X-User-ID"

// Actor resolves the acting user from the gateway header and stores it in the
// request context. Requests without a valid user id are rejected; this
// service never sees raw credentials.
func Actor() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "User not authenticated",
			})
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{
				"success": false,
				"message": "Invalid user ID",
			})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// GetUserID extracts the acting user's ID from the Gin context
func GetUserID(c *gin.Context) uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return userID
}
