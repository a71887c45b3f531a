package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/notedrop/notedrop/internal/middleware"
	tagservice "github.com/notedrop/notedrop/internal/service/tag"
)

// TagHandler 标签与提及处理器
type TagHandler struct {
	registry tagservice.Registry
}

// NewTagHandler 创建标签处理器实例
func NewTagHandler(registry tagservice.Registry) *TagHandler {
	return &TagHandler{registry: registry}
}

// ListTags 获取当前用户的标签名列表
// @Summary 获取标签列表
// @Description 返回当前用户使用过的全部标签名，按字母序排列
// @Tags 标签管理
// @Produce json
// @Success 200 {object} APIResponse{data=[]string}
// @Failure 401 {object} map[string]string
// @Router /api/v1/tags [get]
func (h *TagHandler) ListTags(c *gin.Context) {
	user := middleware.CurrentUser(c)
	names, err := h.registry.ListTagNames(user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, names)
}

// ListMentions 获取当前用户的提及名列表
// @Summary 获取提及列表
// @Description 返回当前用户使用过的全部提及名，按字母序排列
// @Tags 标签管理
// @Produce json
// @Success 200 {object} APIResponse{data=[]string}
// @Failure 401 {object} map[string]string
// @Router /api/v1/mentions [get]
func (h *TagHandler) ListMentions(c *gin.Context) {
	user := middleware.CurrentUser(c)
	names, err := h.registry.ListMentionNames(user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, names)
}
