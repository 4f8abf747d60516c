package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/recipe-api/pkg/helpers"
	"github.com/oksasatya/recipe-api/pkg/response"
)

// CtxUserIDKey is where JWTAuth leaves the caller's user ID.
const CtxUserIDKey = "userID"

// JWTAuth reads the access_token cookie, validates it, and injects the user
// ID into the context. Missing or invalid tokens get 401.
func JWTAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(helpers.AccessTokenCookie)
		if err != nil || token == "" {
			response.Error[any](c, http.StatusUnauthorized, "Missing access token", gin.H{"code": "UNAUTHORIZED"})
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error[any](c, http.StatusUnauthorized, "Invalid access token", gin.H{"code": "UNAUTHORIZED"})
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Next()
	}
}
