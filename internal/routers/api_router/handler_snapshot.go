package api_router

import (
	"github.com/haierkeys/dev-knowledge-base/internal/app"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	apperrors "github.com/haierkeys/dev-knowledge-base/pkg/errors"

	"github.com/gin-gonic/gin"
)

// SnapshotHandler 快照导出
type SnapshotHandler struct {
	*Handler
}

func NewSnapshotHandler(a *app.App) *SnapshotHandler {
	return &SnapshotHandler{Handler: NewHandler(a)}
}

// Export 立即导出一份知识库快照到配置的存储
// @Summary Export knowledge base snapshot
// @Tags System
// @Security AdminSecret
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.SnapshotResult} "Success"
// @Failure 500 {object} pkgapp.Res "Snapshot disabled or export failed"
// @Router /api/admin/snapshot [post]
func (h *SnapshotHandler) Export(c *gin.Context) {
	ctx := c.Request.Context()
	res, err := h.App.SnapshotService.Export(ctx)
	if err != nil {
		h.logError(ctx, "SnapshotHandler.Export", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(res))
}
