package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/raihansp/wishwell/pkg/helpers"
	"github.com/raihansp/wishwell/pkg/response"
)

// Auth validates the access token and ensures an active session exists in
// Redis. It sets accountID, accountUsername, and accountEmail in the Gin
// context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "invalid access token", err.Error())
			c.Abort()
			return
		}

		// Retrieve session from Redis as a hash
		key := "account:session:" + claims.AccountID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.Error[any](c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}
		if sid := data["sid"]; sid != "" && sid != claims.SessionID {
			response.Error[any](c, http.StatusUnauthorized, "session superseded", nil)
			c.Abort()
			return
		}

		c.Set("accountID", claims.AccountID)       // required by handlers
		c.Set("sessionID", claims.SessionID)       // draft staging scope
		c.Set("accountUsername", data["username"]) // extra convenience
		c.Set("accountEmail", data["email"])       // extra convenience
		c.Next()
	}
}
