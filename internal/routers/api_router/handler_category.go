package api_router

import (
	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	apperrors "github.com/haierkeys/dev-knowledge-base/pkg/errors"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 分类 API 路由处理器
type CategoryHandler struct {
	*Handler
}

// NewCategoryHandler 创建 CategoryHandler 实例
func NewCategoryHandler(a *app.App) *CategoryHandler {
	return &CategoryHandler{Handler: NewHandler(a)}
}

// List 分类列表，按名称排序
// @Router /api/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	ctx := c.Request.Context()

	list, err := h.App.CategoryService.List(ctx)
	if err != nil {
		h.logError(ctx, "CategoryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	response.ToResponseList(code.Success, list, len(list))
}

// Get 分类详情
// @Router /api/category [get]
func (h *CategoryHandler) Get(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "CategoryHandler.Get", params) {
		return
	}
	ctx := c.Request.Context()

	category, err := h.App.CategoryService.Get(ctx, params.ID)
	if err != nil {
		h.logError(ctx, "CategoryHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(category))
}

// Upsert 创建或重命名分类，id 为空或 "new" 时创建
// @Router /api/category [post]
func (h *CategoryHandler) Upsert(c *gin.Context) {
	params := &dto.CategoryUpsertRequest{}
	if !h.bind(c, "CategoryHandler.Upsert", params) {
		return
	}
	ctx := c.Request.Context()

	category, err := h.App.CategoryService.Upsert(ctx, dto.ParseOptionalID(params.ID), params.Name)
	if err != nil {
		h.logError(ctx, "CategoryHandler.Upsert", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(category))
}

// Delete 删除分类，引用它的内容变为无分类
// @Router /api/category [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "CategoryHandler.Delete", params) {
		return
	}
	ctx := c.Request.Context()

	if err := h.App.CategoryService.Delete(ctx, params.ID); err != nil {
		h.logError(ctx, "CategoryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessDelete)
}

// TagHandler 标签 API 路由处理器
type TagHandler struct {
	*Handler
}

// NewTagHandler 创建 TagHandler 实例
func NewTagHandler(a *app.App) *TagHandler {
	return &TagHandler{Handler: NewHandler(a)}
}

// List 标签列表
// @Router /api/tags [get]
func (h *TagHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.App.TagService.List(ctx)
	if err != nil {
		h.logError(ctx, "TagHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponseList(code.Success, list, len(list))
}

// Create 按名称查找或创建标签
// @Router /api/tag [post]
func (h *TagHandler) Create(c *gin.Context) {
	params := &dto.TagCreateRequest{}
	if !h.bind(c, "TagHandler.Create", params) {
		return
	}
	ctx := c.Request.Context()

	tag, err := h.App.TagService.FindOrCreate(ctx, params.Name)
	if err != nil {
		h.logError(ctx, "TagHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(tag))
}

// Delete 删除标签及其关联
// @Router /api/tag [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	params := &dto.IDRequest{}
	if !h.bind(c, "TagHandler.Delete", params) {
		return
	}
	ctx := c.Request.Context()

	if err := h.App.TagService.Delete(ctx, params.ID); err != nil {
		h.logError(ctx, "TagHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.SuccessDelete)
}
