package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/haierkeys/dev-knowledge-base/internal/dto"
	"github.com/haierkeys/dev-knowledge-base/pkg/chat"
	"github.com/haierkeys/dev-knowledge-base/pkg/code"
	"github.com/haierkeys/dev-knowledge-base/pkg/metrics"

	"go.uber.org/zap"
)

// ChatService LLM 对话透传服务
type ChatService interface {
	Chat(ctx context.Context, params *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	client chat.Client
	config ChatServiceConfig
	logger *zap.Logger
}

// NewChatService client 为 nil 表示未配置对话服务
func NewChatService(client chat.Client, config ChatServiceConfig, lg *zap.Logger) ChatService {
	return &chatService{client: client, config: config, logger: lg}
}

func (s *chatService) Chat(ctx context.Context, params *dto.ChatRequest) (*dto.ChatResponse, error) {
	if s.client == nil {
		return nil, code.ErrorChatDisabled
	}

	messages := make([]chat.Message, 0, len(params.Messages))
	for _, m := range params.Messages {
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		messages = append(messages, chat.Message{Role: m.Role, Content: m.Content})
	}
	if len(messages) == 0 {
		return nil, code.ErrorChatMessagesRequired
	}
	if n := s.config.MaxMessages; n > 0 && len(messages) > n {
		messages = messages[len(messages)-n:]
	}

	reply, err := s.client.Complete(ctx, s.config.SystemPrompt, messages)
	metrics.ExternalCalls.WithLabelValues("chat", metrics.Result(err)).Inc()
	if err != nil {
		s.logger.Warn("chat request failed", zap.Error(err))
		return nil, code.ErrorChatRequest.WithDetails(err.Error())
	}
	return &dto.ChatResponse{Reply: reply, Model: s.client.Model()}, nil
}

// ChallengeClient 编程题目接口
type ChallengeClient interface {
	Daily(ctx context.Context) (json.RawMessage, error)
	Problem(ctx context.Context, slug string) (json.RawMessage, error)
}

// ChallengeService 编程题目透传服务，失败不重试
type ChallengeService interface {
	Daily(ctx context.Context) (json.RawMessage, error)
	Problem(ctx context.Context, slug string) (json.RawMessage, error)
}

type challengeService struct {
	client ChallengeClient
	logger *zap.Logger
}

func NewChallengeService(client ChallengeClient, lg *zap.Logger) ChallengeService {
	return &challengeService{client: client, logger: lg}
}

func (s *challengeService) Daily(ctx context.Context) (json.RawMessage, error) {
	return s.call("daily", func() (json.RawMessage, error) { return s.client.Daily(ctx) })
}

func (s *challengeService) Problem(ctx context.Context, slug string) (json.RawMessage, error) {
	return s.call("problem", func() (json.RawMessage, error) { return s.client.Problem(ctx, slug) })
}

func (s *challengeService) call(op string, fn func() (json.RawMessage, error)) (json.RawMessage, error) {
	res, err := fn()
	metrics.ExternalCalls.WithLabelValues("challenge_"+op, metrics.Result(err)).Inc()
	if err != nil {
		s.logger.Warn("challenge request failed", zap.String("op", op), zap.Error(err))
		return nil, code.ErrorChallengeRequest.WithDetails(err.Error())
	}
	return res, nil
}
