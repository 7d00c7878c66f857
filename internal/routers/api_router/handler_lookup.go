package api_router

import (
	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	apperrors "github.com/haierkeys/dev-knowledge-base/pkg/errors"

	"github.com/gin-gonic/gin"
)

// LookupHandler 速查条目 API 路由处理器
type LookupHandler struct {
	*Handler
}

// NewLookupHandler 创建 LookupHandler 实例
func NewLookupHandler(a *app.App) *LookupHandler {
	return &LookupHandler{Handler: NewHandler(a)}
}

// @Router /api/lookups [get]
func (h *LookupHandler) List(c *gin.Context) {
	params := &dto.EntryListRequest{}
	if !h.bind(c, "LookupHandler.List", params) {
		return
	}
	ctx := c.Request.Context()

	list, err := h.App.QuickLookupService.List(ctx, params.Filter())
	if err != nil {
		h.logError(ctx, "LookupHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, len(list))
}

// Search 标题或答案包含 term（不区分大小写）
// @Summary 搜索速查条目
// @Tags 速查
// @Produce json
// @Param term query string true "搜索关键词"
// @Success 200 {object} pkgapp.Res{data=[]dto.QuickLookupDTO} "成功"
// @Router /api/lookups/search [get]
func (h *LookupHandler) Search(c *gin.Context) {
	params := &dto.LookupSearchRequest{}
	if !h.bind(c, "LookupHandler.Search", params) {
		return
	}
	ctx := c.Request.Context()

	list, err := h.App.QuickLookupService.Search(ctx, params.Term)
	if err != nil {
		h.logError(ctx, "LookupHandler.Search", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, len(list))
}

// @Router /api/lookup [get]
func (h *LookupHandler) Get(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "LookupHandler.Get", params) {
		return
	}
	ctx := c.Request.Context()

	lookup, err := h.App.QuickLookupService.Get(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "LookupHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(lookup))
}

// @Router /api/lookup [post]
func (h *LookupHandler) Upsert(c *gin.Context) {
	params := &dto.QuickLookupUpsertRequest{}
	if !h.bind(c, "LookupHandler.Upsert", params) {
		return
	}
	ctx := c.Request.Context()

	lookup, err := h.App.QuickLookupService.Upsert(ctx, dto.ParseOptionalID(params.ID), params.Input())
	if err != nil {
		h.logError(ctx, "LookupHandler.Upsert", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(lookup))
}

// @Router /api/lookup/star [put]
func (h *LookupHandler) ToggleStar(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "LookupHandler.ToggleStar", params) {
		return
	}
	ctx := c.Request.Context()

	lookup, err := h.App.QuickLookupService.ToggleStarred(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "LookupHandler.ToggleStar", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessUpdate.WithData(lookup))
}

// @Router /api/lookup [delete]
func (h *LookupHandler) Delete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "LookupHandler.Delete", params) {
		return
	}
	ctx := c.Request.Context()

	if err := h.App.QuickLookupService.Delete(ctx, params.ID); err != nil {
		h.logError(ctx, "LookupHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessDelete)
}
