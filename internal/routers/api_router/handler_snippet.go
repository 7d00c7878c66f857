package api_router

import (
	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	apperrors "github.com/haierkeys/dev-knowledge-base/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SnippetHandler 代码片段 API 路由处理器
type SnippetHandler struct {
	*Handler
}

// NewSnippetHandler 创建 SnippetHandler 实例
func NewSnippetHandler(a *app.App) *SnippetHandler {
	return &SnippetHandler{Handler: NewHandler(a)}
}

// List 代码片段列表，标签展开
// @Router /api/snippets [get]
func (h *SnippetHandler) List(c *gin.Context) {
	params := &dto.EntryListRequest{}
	if !h.bind(c, "SnippetHandler.List", params) {
		return
	}
	ctx := c.Request.Context()

	list, err := h.App.SnippetService.List(ctx, params.Filter())
	if err != nil {
		h.logError(ctx, "SnippetHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, len(list))
}

// @Router /api/snippet [get]
func (h *SnippetHandler) Get(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "SnippetHandler.Get", params) {
		return
	}
	ctx := c.Request.Context()

	snippet, err := h.App.SnippetService.Get(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "SnippetHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(snippet))
}

// Upsert 创建或更新代码片段
// @Router /api/snippet [post]
func (h *SnippetHandler) Upsert(c *gin.Context) {
	params := &dto.SnippetUpsertRequest{}
	if !h.bind(c, "SnippetHandler.Upsert", params) {
		return
	}
	ctx := c.Request.Context()

	snippet, err := h.App.SnippetService.Upsert(ctx, dto.ParseOptionalID(params.ID), params.Input())
	if err != nil {
		h.logError(ctx, "SnippetHandler.Upsert", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(snippet))
}

// @Router /api/snippet/star [put]
func (h *SnippetHandler) ToggleStar(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "SnippetHandler.ToggleStar", params) {
		return
	}
	ctx := c.Request.Context()

	snippet, err := h.App.SnippetService.ToggleStarred(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "SnippetHandler.ToggleStar", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessUpdate.WithData(snippet))
}

// @Router /api/snippet [delete]
func (h *SnippetHandler) Delete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "SnippetHandler.Delete", params) {
		return
	}
	ctx := c.Request.Context()

	if err := h.App.SnippetService.Delete(ctx, params.ID); err != nil {
		h.logError(ctx, "SnippetHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessDelete)
}
