package auth

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// bearerPrefix Authorization头的Bearer前缀
const bearerPrefix = "Bearer "

// TokenExtractor 从请求元数据中定位认证令牌
// 优先读取Authorization头（原生客户端），其次读取Cookie（Web端）
type TokenExtractor struct {
	cookieName string
}

// NewTokenExtractor 创建令牌提取器实例
// 参数: cookieName - 存放令牌的Cookie名称
func NewTokenExtractor(cookieName string) *TokenExtractor {
	return &TokenExtractor{cookieName: cookieName}
}

// Extract 从请求头中提取令牌
// 返回值: 令牌字符串和是否找到的标志
func (e *TokenExtractor) Extract(header http.Header) (string, bool) {
	// Authorization: Bearer <token>
	if authHeader := header.Get("Authorization"); strings.HasPrefix(authHeader, bearerPrefix) {
		if token := authHeader[len(bearerPrefix):]; token != "" {
			return token, true
		}
	}

	cookieHeader := header.Get("Cookie")
	if cookieHeader == "" {
		return "", false
	}

	value, ok := lookupCookie(cookieHeader, e.cookieName)
	if !ok || value == "" {
		return "", false
	}

	// 历史版本的Web客户端会把令牌编码为JSON数组，取首元素；
	// 解析失败时按原始字符串处理，绝不因此拒绝请求
	if token, ok := firstArrayElement(value); ok {
		return token, true
	}
	return value, true
}

// lookupCookie 在Cookie头中查找指定名称的值
// 按分号切分键值对，去除空白并做URL解码
func lookupCookie(cookieHeader, name string) (string, bool) {
	for _, pair := range strings.Split(cookieHeader, ";") {
		key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || strings.TrimSpace(key) != name {
			continue
		}
		if decoded, err := url.QueryUnescape(value); err == nil {
			return decoded, true
		}
		return value, true
	}
	return "", false
}

// firstArrayElement 尝试把值解析为JSON数组并返回首个非空元素
func firstArrayElement(value string) (string, bool) {
	var parsed []string
	if err := json.Unmarshal([]byte(value), &parsed); err != nil {
		return "", false
	}
	if len(parsed) == 0 || parsed[0] == "" {
		return "", false
	}
	return parsed[0], true
}
