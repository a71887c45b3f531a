// Package auth 令牌签发与校验的单元测试
package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestService 创建测试用令牌服务
func newTestService() *TokenService {
	return NewTokenService("test-secret", time.Hour, 24*time.Hour)
}

// testProfile 测试用身份声明
func testProfile() Claims {
	return Claims{
		UserID: "user-1",
		Email:  "alice@example.com",
		Name:   "Alice",
	}
}

// TestSignAndVerify 测试令牌签发与校验
func TestSignAndVerify(t *testing.T) {
	svc := newTestService()

	t.Run("签发的访问令牌可以通过校验", func(t *testing.T) {
		token, err := svc.SignAccess(testProfile())
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "alice@example.com", claims.Email)
		assert.Equal(t, "Alice", claims.Name)
		assert.Empty(t, claims.TokenUse)
	})

	t.Run("不同密钥签发的令牌校验失败", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour, 24*time.Hour)
		token, err := other.SignAccess(testProfile())
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("格式错误的令牌校验失败", func(t *testing.T) {
		_, err := svc.Verify("not-a-jwt")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("过期令牌返回过期错误", func(t *testing.T) {
		expired := NewTokenService("test-secret", -time.Minute, 24*time.Hour)
		token, err := expired.SignAccess(testProfile())
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("缺少必要身份字段的令牌被拒绝", func(t *testing.T) {
		token, err := svc.SignAccess(Claims{UserID: "user-1", Email: "alice@example.com"})
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrClaimsIncomplete)
	})
}

// TestVerifyRefresh 测试刷新令牌校验
func TestVerifyRefresh(t *testing.T) {
	svc := newTestService()

	t.Run("刷新令牌携带refresh用途声明", func(t *testing.T) {
		token, err := svc.SignRefresh(testProfile())
		require.NoError(t, err)

		claims, err := svc.VerifyRefresh(token)
		require.NoError(t, err)
		assert.Equal(t, TokenUseRefresh, claims.TokenUse)
	})

	t.Run("访问令牌不能用于刷新", func(t *testing.T) {
		token, err := svc.SignAccess(testProfile())
		require.NoError(t, err)

		_, err = svc.VerifyRefresh(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}
