package auth

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestExtract 测试令牌提取的各个来源与回退路径
func TestExtract(t *testing.T) {
	extractor := NewTokenExtractor("auth_token")

	newHeader := func(kv map[string]string) http.Header {
		h := http.Header{}
		for k, v := range kv {
			h.Set(k, v)
		}
		return h
	}

	t.Run("Authorization头优先", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Authorization": "Bearer header-token",
			"Cookie":        "auth_token=cookie-token",
		})
		token, ok := extractor.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, "header-token", token)
	})

	t.Run("空Bearer头回退到Cookie", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Authorization": "Bearer ",
			"Cookie":        "auth_token=cookie-token",
		})
		token, ok := extractor.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("非Bearer方案的Authorization头被忽略", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Authorization": "Basic dXNlcjpwYXNz",
			"Cookie":        "auth_token=cookie-token",
		})
		token, ok := extractor.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("从多个Cookie中定位目标", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Cookie": "session=abc; auth_token=the-token; theme=dark",
		})
		token, ok := extractor.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, "the-token", token)
	})

	t.Run("Cookie值做URL解码", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Cookie": "auth_token=" + url.QueryEscape("a+b=c"),
		})
		token, ok := extractor.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, "a+b=c", token)
	})

	t.Run("JSON数组格式的Cookie取首元素", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Cookie": "auth_token=" + url.QueryEscape(`["array-token","ignored"]`),
		})
		token, ok := extractor.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, "array-token", token)
	})

	t.Run("JSON解析失败时按原始字符串处理", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Cookie": "auth_token=" + url.QueryEscape(`["broken`),
		})
		token, ok := extractor.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, `["broken`, token)
	})

	t.Run("空JSON数组按原始字符串处理", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Cookie": "auth_token=" + url.QueryEscape(`[]`),
		})
		token, ok := extractor.Extract(h)
		assert.True(t, ok)
		assert.Equal(t, `[]`, token)
	})

	t.Run("无任何凭证时提取失败", func(t *testing.T) {
		_, ok := extractor.Extract(http.Header{})
		assert.False(t, ok)
	})

	t.Run("目标Cookie缺失时提取失败", func(t *testing.T) {
		h := newHeader(map[string]string{
			"Cookie": "session=abc; theme=dark",
		})
		_, ok := extractor.Extract(h)
		assert.False(t, ok)
	})
}
