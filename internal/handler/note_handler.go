package handler

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/notedrop/notedrop/internal/errors"
	"github.com/notedrop/notedrop/internal/middleware"
	"github.com/notedrop/notedrop/internal/service/note"
)

// NoteHandler 笔记处理器
type NoteHandler struct {
	notes note.NoteService
}

// NewNoteHandler 创建笔记处理器实例
func NewNoteHandler(notes note.NoteService) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// ListNotes 获取当前用户的全部笔记
// @Summary 获取笔记列表
// @Description 返回当前用户的全部笔记，按创建时间倒序排列
// @Tags 笔记管理
// @Produce json
// @Success 200 {object} APIResponse{data=[]note.NoteView}
// @Failure 401 {object} map[string]string
// @Router /api/v1/notes [get]
func (h *NoteHandler) ListNotes(c *gin.Context) {
	user := middleware.CurrentUser(c)
	views, err := h.notes.ListNotes(user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, views)
}

// ListTodayNotes 获取当前用户今日创建的笔记
// @Summary 获取今日笔记
// @Description 返回当前用户在服务器本地时区当天创建的笔记
// @Tags 笔记管理
// @Produce json
// @Success 200 {object} APIResponse{data=[]note.NoteView}
// @Failure 401 {object} map[string]string
// @Router /api/v1/notes/today [get]
func (h *NoteHandler) ListTodayNotes(c *gin.Context) {
	user := middleware.CurrentUser(c)
	views, err := h.notes.ListTodayNotes(user.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, views)
}

// CreateNote 创建笔记
// @Summary 创建笔记
// @Description 创建一条新笔记，同时注册并关联标签与提及
// @Tags 笔记管理
// @Accept json
// @Produce json
// @Param request body note.CreateNoteRequest true "笔记信息"
// @Success 201 {object} APIResponse{data=note.NoteView}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/notes [post]
func (h *NoteHandler) CreateNote(c *gin.Context) {
	var req note.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ErrInvalidParameters.WithDetails(err.Error()))
		return
	}

	user := middleware.CurrentUser(c)
	view, err := h.notes.CreateNote(user.Email, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, view)
}

// UpdateNote 更新笔记
// @Summary 更新笔记
// @Description 更新笔记的标题与内容，并整体替换标签与提及关联
// @Tags 笔记管理
// @Accept json
// @Produce json
// @Param id path string true "笔记ID"
// @Param request body note.UpdateNoteRequest true "笔记信息"
// @Success 200 {object} APIResponse{data=note.NoteView}
// @Failure 400 {object} APIResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/notes/{id} [put]
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	var req note.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperrors.ErrInvalidParameters.WithDetails(err.Error()))
		return
	}

	user := middleware.CurrentUser(c)
	view, err := h.notes.UpdateNote(user.Email, c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, view)
}

// DeleteNote 删除笔记
// @Summary 删除笔记
// @Description 删除笔记及其全部标签与提及关联
// @Tags 笔记管理
// @Produce json
// @Param id path string true "笔记ID"
// @Success 200 {object} APIResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/notes/{id} [delete]
func (h *NoteHandler) DeleteNote(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if err := h.notes.DeleteNote(user.Email, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, gin.H{"id": c.Param("id")})
}
