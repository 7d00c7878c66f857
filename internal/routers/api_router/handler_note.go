package api_router

import (
	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	apperrors "github.com/haierkeys/dev-knowledge-base/pkg/errors"

	"github.com/gin-gonic/gin"
)

// NoteHandler 笔记 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type NoteHandler struct {
	*Handler
}

// NewNoteHandler 创建 NoteHandler 实例
func NewNoteHandler(a *app.App) *NoteHandler {
	return &NoteHandler{Handler: NewHandler(a)}
}

// List 获取笔记列表
// @Summary 获取笔记列表
// @Description 按标签和星标过滤，按更新时间倒序；列表只返回标签 ID
// @Tags 笔记
// @Produce json
// @Param params query dto.EntryListRequest true "查询参数"
// @Success 200 {object} pkgapp.Res{data=[]dto.NoteDTO} "成功"
// @Router /api/notes [get]
func (h *NoteHandler) List(c *gin.Context) {
	params := &dto.EntryListRequest{}
	if !h.bind(c, "NoteHandler.List", params) {
		return
	}
	ctx := c.Request.Context()

	list, err := h.App.NoteService.List(ctx, params.Filter())
	if err != nil {
		h.logError(ctx, "NoteHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, len(list))
}

// Get 获取单条笔记详情
// @Summary 获取笔记详情
// @Tags 笔记
// @Produce json
// @Param params query dto.IDRequest true "获取参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/note [get]
func (h *NoteHandler) Get(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "NoteHandler.Get", params) {
		return
	}
	ctx := c.Request.Context()

	note, err := h.App.NoteService.Get(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "NoteHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(note))
}

// Upsert 创建或更新笔记
// @Summary 创建或更新笔记
// @Description id 缺省、为空或为 "new" 时创建，否则整体更新；分类和标签可以是 ID 或 {id,name} 对象
// @Tags 笔记
// @Security AdminSecret
// @Accept json
// @Produce json
// @Param params body dto.NoteUpsertRequest true "笔记参数"
// @Success 200 {object} pkgapp.Res{data=dto.NoteDTO} "成功"
// @Router /api/note [post]
func (h *NoteHandler) Upsert(c *gin.Context) {
	params := &dto.NoteUpsertRequest{}
	if !h.bind(c, "NoteHandler.Upsert", params) {
		return
	}
	ctx := c.Request.Context()

	note, err := h.App.NoteService.Upsert(ctx, dto.ParseOptionalID(params.ID), params.Input())
	if err != nil {
		h.logError(ctx, "NoteHandler.Upsert", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(note))
}

// ToggleStar 切换星标
// @Router /api/note/star [put]
func (h *NoteHandler) ToggleStar(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "NoteHandler.ToggleStar", params) {
		return
	}
	ctx := c.Request.Context()

	note, err := h.App.NoteService.ToggleStarred(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "NoteHandler.ToggleStar", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessUpdate.WithData(note))
}

// Delete 删除笔记
// @Router /api/note [delete]
func (h *NoteHandler) Delete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "NoteHandler.Delete", params) {
		return
	}
	ctx := c.Request.Context()

	if err := h.App.NoteService.Delete(ctx, params.ID); err != nil {
		h.logError(ctx, "NoteHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessDelete)
}
