package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"github.com/gin-gonic/gin"
)

// AdminToken 从请求中读取管理员令牌
// 按优先级：Authorization 头 -> token 头 -> authorization / token 查询参数
func AdminToken(c *gin.Context) string {
	var token string

	if s := c.GetHeader("Authorization"); len(s) != 0 {
		token = s
	} else if s = c.GetHeader("Token"); len(s) != 0 {
		token = s
	} else if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	}

	token = strings.TrimSpace(token)
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = strings.TrimSpace(token[7:])
	}
	return token
}

// CheckAdminSecret 常量时间比较共享密钥，未配置密钥时始终失败
func CheckAdminSecret(secret, token string) bool {
	if secret == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(token)) == 1
}

// AdminAuth 管理员共享密钥认证中间件（使用注入的配置）
func AdminAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !CheckAdminSecret(secret, AdminToken(c)) {
			app.NewResponse(c).ToResponse(code.ErrorInvalidAuthToken)
			c.Abort()
			return
		}
		c.Next()
	}
}
