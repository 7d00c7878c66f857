package api_router

import (
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/internal/middleware"
	"github.com/haierkeys/dev-knowledge-base/internal/upgrade"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SystemHandler 健康检查、版本和管理员校验
type SystemHandler struct {
	*Handler
}

// NewSystemHandler 创建 SystemHandler 实例
func NewSystemHandler(a *app.App) *SystemHandler {
	return &SystemHandler{Handler: NewHandler(a)}
}

// HealthResponse 健康检查响应
type HealthResponse struct {
	dto.HealthDTO
	Version string  `json:"version"` // 服务版本号
	Uptime  float64 `json:"uptime"`  // 运行时间（秒）
}

// Health 健康检查接口
// @Summary 健康检查
// @Description 检查服务健康状态，包括数据库连接
// @Tags 系统
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /api/health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	res := HealthResponse{
		HealthDTO: dto.HealthDTO{Status: "healthy", Database: "connected", Driver: h.App.Dao.Type()},
		Version:   h.App.Version().Version,
		Uptime:    time.Since(h.App.StartTime).Seconds(),
	}

	// 检查数据库连接
	if err := h.pingDB(c); err != nil {
		h.App.Logger().Error("SystemHandler.Health ping err", zap.Error(err))
		res.Status = "unhealthy"
		res.Database = "error"
		pkgapp.NewResponse(c).ToResponse(code.Failed.WithData(res))
		return
	}

	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(res))
}

func (h *SystemHandler) pingDB(c *gin.Context) error {
	sqlDB, err := h.App.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}

// Version 服务版本信息
// @Summary Get server version info
// @Tags System
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.VersionDTO} "Success"
// @Router /api/version [get]
func (h *SystemHandler) Version(c *gin.Context) {
	versionInfo := h.App.Version()
	schema, err := upgrade.CurrentVersion(c.Request.Context(), h.App.DB)
	if err != nil {
		h.App.Logger().Warn("SystemHandler.Version schema version err", zap.Error(err))
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(dto.VersionDTO{
		Name:          app.Name,
		Version:       versionInfo.Version,
		GitTag:        versionInfo.GitTag,
		BuildTime:     versionInfo.BuildTime,
		SchemaVersion: schema,
	}))
}

// AdminCheck 校验管理员共享密钥，供前端在进入编辑模式前确认
// @Router /api/admin/check [post]
func (h *SystemHandler) AdminCheck(c *gin.Context) {
	if !middleware.CheckAdminSecret(h.App.AdminSecret(), middleware.AdminToken(c)) {
		pkgapp.NewResponse(c).ToResponse(code.ErrorInvalidAuthToken)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(gin.H{"admin": true}))
}
