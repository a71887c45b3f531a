// Package auth 提供认证令牌的提取、签发与校验功能
// 签名密钥和Cookie名称由配置注入，不依赖进程级全局状态
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// 令牌用途标识
const (
	// TokenUseRefresh 刷新令牌的token_use声明值
	TokenUseRefresh = "refresh"
)

var (
	// ErrTokenInvalid 令牌签名无效或格式错误
	ErrTokenInvalid = errors.New("auth: token invalid")
	// ErrTokenExpired 令牌已过期
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrClaimsIncomplete 令牌缺少必要的身份声明
	ErrClaimsIncomplete = errors.New("auth: token missing required claims")
)

// Claims 认证令牌的身份声明
// id、email、name为必要字段，缺失任意一个的令牌视为无效
type Claims struct {
	UserID        string `json:"id"`                       // 用户ID
	Email         string `json:"email"`                    // 用户邮箱，所有数据的分区键
	Name          string `json:"name"`                     // 用户显示名称
	Picture       string `json:"picture,omitempty"`        // 头像URL
	GivenName     string `json:"given_name,omitempty"`     // 名
	FamilyName    string `json:"family_name,omitempty"`    // 姓
	EmailVerified bool   `json:"email_verified,omitempty"` // 邮箱是否已验证
	Provider      string `json:"provider,omitempty"`       // 身份提供方
	TokenUse      string `json:"token_use,omitempty"`      // 令牌用途，刷新令牌为"refresh"
	jwt.RegisteredClaims
}

// TokenService 负责JWT令牌的签发与校验
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenService 创建令牌服务实例
// 参数:
//   secret - HMAC签名密钥
//   accessTTL - 访问令牌有效期
//   refreshTTL - 刷新令牌有效期
func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Verify 校验令牌签名与有效期并返回身份声明
// 签名错误和过期对调用方统一表现为认证失败，区别仅用于日志
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	if claims.UserID == "" || claims.Email == "" || claims.Name == "" {
		return nil, ErrClaimsIncomplete
	}

	return claims, nil
}

// VerifyRefresh 校验刷新令牌
// 在Verify的基础上额外要求token_use声明为"refresh"
func (s *TokenService) VerifyRefresh(tokenString string) (*Claims, error) {
	claims, err := s.Verify(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenUse != TokenUseRefresh {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// SignAccess 签发访问令牌
func (s *TokenService) SignAccess(profile Claims) (string, error) {
	profile.TokenUse = ""
	return s.sign(profile, s.accessTTL)
}

// SignRefresh 签发刷新令牌
func (s *TokenService) SignRefresh(profile Claims) (string, error) {
	profile.TokenUse = TokenUseRefresh
	return s.sign(profile, s.refreshTTL)
}

// sign 使用HS256签发令牌
func (s *TokenService) sign(claims Claims, ttl time.Duration) (string, error) {
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		ID:        uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
