// Package handler 认证处理器的单元测试
package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notedrop/notedrop/internal/auth"
)

// setupAuthRouter 构建认证路由
func setupAuthRouter(devLogin bool) (*gin.Engine, *auth.TokenService) {
	gin.SetMode(gin.TestMode)
	tokens := auth.NewTokenService("test-secret", time.Hour, 24*time.Hour)
	h := NewAuthHandler(tokens, devLogin)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.POST("/auth/refresh", h.Refresh)
	return r, tokens
}

// postJSON 发送JSON请求
func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// TestLogin 测试开发环境登录
func TestLogin(t *testing.T) {
	t.Run("开关关闭时返回403", func(t *testing.T) {
		r, _ := setupAuthRouter(false)
		w := postJSON(r, "/auth/login", `{"id":"u1","email":"alice@example.com","name":"Alice"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("开关开启时签发令牌对", func(t *testing.T) {
		r, tokens := setupAuthRouter(true)
		w := postJSON(r, "/auth/login", `{"id":"u1","email":"alice@example.com","name":"Alice"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				AccessToken  string `json:"access_token"`
				RefreshToken string `json:"refresh_token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)

		claims, err := tokens.Verify(resp.Data.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Email)

		_, err = tokens.VerifyRefresh(resp.Data.RefreshToken)
		require.NoError(t, err)
	})

	t.Run("缺少必填字段时返回400", func(t *testing.T) {
		r, _ := setupAuthRouter(true)
		w := postJSON(r, "/auth/login", `{"id":"u1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// TestRefresh 测试令牌刷新
func TestRefresh(t *testing.T) {
	r, tokens := setupAuthRouter(true)
	profile := auth.Claims{UserID: "u1", Email: "alice@example.com", Name: "Alice"}

	t.Run("刷新令牌换取新的访问令牌", func(t *testing.T) {
		refresh, err := tokens.SignRefresh(profile)
		require.NoError(t, err)

		w := postJSON(r, "/auth/refresh", `{"refresh_token":"`+refresh+`"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data struct {
				AccessToken string `json:"access_token"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		claims, err := tokens.Verify(resp.Data.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Empty(t, claims.TokenUse)
	})

	t.Run("访问令牌不能用于刷新", func(t *testing.T) {
		access, err := tokens.SignAccess(profile)
		require.NoError(t, err)

		w := postJSON(r, "/auth/refresh", `{"refresh_token":"`+access+`"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("缺少刷新令牌时返回400", func(t *testing.T) {
		w := postJSON(r, "/auth/refresh", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
