package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedrop/notedrop/internal/auth"
)

// setupAuthRouter 构建带认证中间件的测试路由
func setupAuthRouter(t *testing.T) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	extractor := auth.NewTokenExtractor("auth_token")
	mw := NewAuthMiddleware(extractor, tokens)

	r := gin.New()
	r.GET("/protected", mw.RequireUser(), func(c *gin.Context) {
		user := CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"email": user.Email})
	})
	return r, tokens
}

// TestRequireUser 测试认证中间件的放行与拦截
func TestRequireUser(t *testing.T) {
	r, tokens := setupAuthRouter(t)

	profile := auth.Claims{UserID: "user-1", Email: "alice@example.com", Name: "Alice"}

	t.Run("有效令牌放行并注入身份", func(t *testing.T) {
		token, err := tokens.SignAccess(profile)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"email":"alice@example.com"}`, w.Body.String())
	})

	t.Run("Cookie中的令牌同样有效", func(t *testing.T) {
		token, err := tokens.SignAccess(profile)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Cookie", "auth_token="+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("无令牌返回固定401响应体", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "Authentication required"}`, w.Body.String())
	})

	t.Run("无效令牌返回401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error": "Authentication required"}`, w.Body.String())
	})

	t.Run("过期令牌返回401", func(t *testing.T) {
		expired := auth.NewTokenService("test-secret", -time.Minute, 24*time.Hour)
		token, err := expired.SignAccess(profile)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// TestCurrentUser 测试上下文中身份的读取
func TestCurrentUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("未认证的上下文返回nil", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.Nil(t, CurrentUser(c))
	})

	t.Run("类型不匹配的值返回nil", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Set(contextUserKey, "not-claims")
		assert.Nil(t, CurrentUser(c))
	})
}
