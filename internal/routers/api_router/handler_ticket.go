package api_router

import (
	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	apperrors "github.com/haierkeys/dev-knowledge-base/pkg/errors"

	"github.com/gin-gonic/gin"
)

// TicketHandler 工单 API 路由处理器
type TicketHandler struct {
	*Handler
}

// NewTicketHandler 创建 TicketHandler 实例
func NewTicketHandler(a *app.App) *TicketHandler {
	return &TicketHandler{Handler: NewHandler(a)}
}

// List 工单列表，status 为空时返回全部
// @Router /api/tickets [get]
func (h *TicketHandler) List(c *gin.Context) {
	params := &dto.TicketListRequest{}
	if !h.bind(c, "TicketHandler.List", params) {
		return
	}
	ctx := c.Request.Context()

	list, err := h.App.TicketService.List(ctx, params.Status)
	if err != nil {
		h.logError(ctx, "TicketHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, len(list))
}

// @Router /api/ticket [get]
func (h *TicketHandler) Get(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "TicketHandler.Get", params) {
		return
	}
	ctx := c.Request.Context()

	ticket, err := h.App.TicketService.Get(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "TicketHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(ticket))
}

// Upsert 创建或更新工单，id 为 "new" 时创建
// @Router /api/ticket [post]
func (h *TicketHandler) Upsert(c *gin.Context) {
	params := &dto.TicketUpsertRequest{}
	if !h.bind(c, "TicketHandler.Upsert", params) {
		return
	}
	ctx := c.Request.Context()

	ticket, err := h.App.TicketService.Upsert(ctx, dto.ParseOptionalID(params.ID), params)
	if err != nil {
		h.logError(ctx, "TicketHandler.Upsert", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(ticket))
}

// @Router /api/ticket [delete]
func (h *TicketHandler) Delete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "TicketHandler.Delete", params) {
		return
	}
	ctx := c.Request.Context()

	if err := h.App.TicketService.Delete(ctx, params.ID); err != nil {
		h.logError(ctx, "TicketHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessDelete)
}
