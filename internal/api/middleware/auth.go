package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/social-graph/pkg/response"
)

const userIDKey = "userID"

// TokenVerifier 校验 token 并返回用户 ID
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// Auth 从 cookie 或 Authorization: Bearer 中取 token，校验通过后写入 userID
func Auth(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := verifier.Verify(c.Request.Context(), tokenFrom(c, cookieName))
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CurrentUserID 当前登录用户，未经过 Auth 时为空
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}

func tokenFrom(c *gin.Context, cookieName string) string {
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
