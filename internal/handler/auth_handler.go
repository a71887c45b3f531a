package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/notedrop/notedrop/internal/auth"
	apperrors "github.com/notedrop/notedrop/internal/errors"
	"github.com/notedrop/notedrop/internal/logger"
)

// AuthHandler 认证处理器
// 登录接口仅在开发环境开启；生产环境的令牌由外部身份服务签发
type AuthHandler struct {
	tokens   *auth.TokenService
	devLogin bool
}

// NewAuthHandler 创建认证处理器实例
// 参数:
//   tokens - 令牌服务
//   devLogin - 是否开启开发环境登录接口
func NewAuthHandler(tokens *auth.TokenService, devLogin bool) *AuthHandler {
	return &AuthHandler{
		tokens:   tokens,
		devLogin: devLogin,
	}
}

// loginRequest 开发环境登录请求
type loginRequest struct {
	UserID string `json:"id" binding:"required"`    // 用户ID
	Email  string `json:"email" binding:"required"` // 用户邮箱
	Name   string `json:"name" binding:"required"`  // 用户显示名称
}

// refreshRequest 令牌刷新请求
type refreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"` // 刷新令牌
}

// tokenPair 令牌对响应
type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// Login 开发环境登录
// @Summary 开发环境登录
// @Description 为指定身份签发访问令牌和刷新令牌，仅在auth.dev_login开启时可用
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body loginRequest true "身份信息"
// @Success 200 {object} APIResponse{data=tokenPair}
// @Failure 400 {object} APIResponse
// @Failure 403 {object} APIResponse
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.devLogin {
		respondError(c, apperrors.ErrAuthLoginDisabledError)
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ErrInvalidParameters.WithDetails(err.Error()))
		return
	}

	profile := auth.Claims{
		UserID: req.UserID,
		Email:  req.Email,
		Name:   req.Name,
	}
	access, err := h.tokens.SignAccess(profile)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrInternalServer, "failed to sign access token", err))
		return
	}
	refresh, err := h.tokens.SignRefresh(profile)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrInternalServer, "failed to sign refresh token", err))
		return
	}

	logger.Infof("Dev login issued tokens for %s", req.Email)
	respondOK(c, tokenPair{AccessToken: access, RefreshToken: refresh})
}

// Refresh 使用刷新令牌换取新的访问令牌
// @Summary 刷新访问令牌
// @Description 校验刷新令牌并签发新的访问令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body refreshRequest true "刷新令牌"
// @Success 200 {object} APIResponse{data=tokenPair}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} APIResponse
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ErrInvalidParameters.WithDetails(err.Error()))
		return
	}

	claims, err := h.tokens.VerifyRefresh(req.RefreshToken)
	if err != nil {
		respondError(c, apperrors.ErrAuthRefreshInvalidError)
		return
	}

	access, err := h.tokens.SignAccess(auth.Claims{
		UserID:        claims.UserID,
		Email:         claims.Email,
		Name:          claims.Name,
		Picture:       claims.Picture,
		GivenName:     claims.GivenName,
		FamilyName:    claims.FamilyName,
		EmailVerified: claims.EmailVerified,
		Provider:      claims.Provider,
	})
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrInternalServer, "failed to sign access token", err))
		return
	}

	respondOK(c, tokenPair{AccessToken: access})
}
