// Package middleware 提供Gin中间件
// 包含请求认证和请求日志功能
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/notedrop/notedrop/internal/auth"
	"github.com/notedrop/notedrop/internal/logger"
)

// contextUserKey 认证用户在Gin上下文中的键名
const contextUserKey = "auth_user"

// AuthMiddleware 认证中间件
// 从请求中提取令牌并校验，将身份声明注入上下文；失败时统一以401响应短路
type AuthMiddleware struct {
	extractor *auth.TokenExtractor
	tokens    *auth.TokenService
}

// NewAuthMiddleware 创建认证中间件实例
// 参数:
//   extractor - 令牌提取器
//   tokens - 令牌服务
func NewAuthMiddleware(extractor *auth.TokenExtractor, tokens *auth.TokenService) *AuthMiddleware {
	return &AuthMiddleware{
		extractor: extractor,
		tokens:    tokens,
	}
}

// RequireUser 要求请求携带有效身份
// 提取失败、签名无效、令牌过期一律返回401，响应体不区分具体原因
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.extractor.Extract(c.Request.Header)
		if !ok {
			abortUnauthorized(c)
			return
		}

		claims, err := m.tokens.Verify(token)
		if err != nil {
			// 仅记录日志，过期与无效对客户端不做区分
			if errors.Is(err, auth.ErrTokenExpired) {
				logger.Debugf("认证失败: 令牌已过期 path=%s", c.Request.URL.Path)
			} else {
				logger.Debugf("认证失败: %v path=%s", err, c.Request.URL.Path)
			}
			abortUnauthorized(c)
			return
		}

		c.Set(contextUserKey, claims)
		c.Next()
	}
}

// abortUnauthorized 以固定的401响应短路请求
func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": "Authentication required",
	})
}

// CurrentUser 从Gin上下文获取认证用户
// 返回值: 身份声明，未认证时为nil
func CurrentUser(c *gin.Context) *auth.Claims {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
