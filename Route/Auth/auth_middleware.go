package Auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/LJCaballero/Diario/service/Auth"
)

// AuthMiddleware 认证中间件
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 从Header获取token
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			// 从Cookie获取token
			token, err := c.Cookie("access_token")
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{
					"error": "未提供认证令牌",
					"kind":  "auth",
				})
				c.Abort()
				return
			}
			authHeader = "Bearer " + token
		}

		// 检查Bearer前缀
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "认证令牌格式错误",
				"kind":  "auth",
			})
			c.Abort()
			return
		}

		// 验证token
		claims, err := Auth.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "认证令牌无效或已过期",
				"kind":  "auth",
			})
			c.Abort()
			return
		}

		// 将用户信息存入上下文
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// OptionalAuthMiddleware 可选认证中间件
// 公开端点使用：携带有效token时注入用户信息，否则匿名放行
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if token, err := c.Cookie("access_token"); err == nil {
				authHeader = "Bearer " + token
			}
		}

		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := Auth.ValidateToken(parts[1]); err == nil {
					c.Set("user_id", claims.UserID)
					c.Set("email", claims.Email)
				}
				// token无效时按未登录继续
			}
		}

		c.Next()
	}
}
