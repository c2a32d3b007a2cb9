package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/danisworo/taskhub/pkg/helpers"
	"github.com/danisworo/taskhub/pkg/response"
)

// CtxUserID is the Gin context key under which Auth stores the caller's id.
const CtxUserID = "userID"

// Auth validates the bearer token and sets the caller's user id in the Gin
// context. The token is read from the Authorization header first, then from
// the mirrored access_token cookie. Validation is stateless: signature and
// expiry are the only checks.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing access token")
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired access token")
			return
		}
		uid, err := claims.UserID()
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired access token")
			return
		}
		c.Set(CtxUserID, uid)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if tok, err := c.Cookie("access_token"); err == nil {
		return tok
	}
	return ""
}

// UserID reads the authenticated caller's id set by Auth.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(CtxUserID)
}
