package api_router

import (
	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	apperrors "github.com/haierkeys/dev-knowledge-base/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ExternalHandler LLM 对话和编程题目接口透传
type ExternalHandler struct {
	*Handler
}

// NewExternalHandler 创建 ExternalHandler 实例
func NewExternalHandler(a *app.App) *ExternalHandler {
	return &ExternalHandler{Handler: NewHandler(a)}
}

// Chat 对话
// @Summary LLM 对话
// @Tags 外部服务
// @Accept json
// @Produce json
// @Param params body dto.ChatRequest true "对话消息"
// @Success 200 {object} pkgapp.Res{data=dto.ChatResponse} "成功"
// @Router /api/chat [post]
func (h *ExternalHandler) Chat(c *gin.Context) {
	params := &dto.ChatRequest{}
	if !h.bind(c, "ExternalHandler.Chat", params) {
		return
	}
	ctx := c.Request.Context()

	res, err := h.App.ChatService.Chat(ctx, params)
	if err != nil {
		h.logError(ctx, "ExternalHandler.Chat", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(res))
}

// ChallengeDaily 今日题目，上游 JSON 原样返回在 data 中
// @Router /api/challenge/daily [get]
func (h *ExternalHandler) ChallengeDaily(c *gin.Context) {
	ctx := c.Request.Context()
	raw, err := h.App.ChallengeService.Daily(ctx)
	if err != nil {
		h.logError(ctx, "ExternalHandler.ChallengeDaily", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(raw))
}

// ChallengeProblem 按 slug 查询题目
// @Router /api/challenge/problem [get]
func (h *ExternalHandler) ChallengeProblem(c *gin.Context) {
	params := &dto.ChallengeProblemRequest{}
	if !h.bind(c, "ExternalHandler.ChallengeProblem", params) {
		return
	}
	ctx := c.Request.Context()

	raw, err := h.App.ChallengeService.Problem(ctx, params.Slug)
	if err != nil {
		h.logError(ctx, "ExternalHandler.ChallengeProblem", err)
		apperrors.ErrorResponse(c, err)
		return
	}
	pkgapp.NewResponse(c).ToResponse(code.Success.WithData(raw))
}
