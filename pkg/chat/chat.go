// Package chat LLM 对话客户端
package chat

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// 对话角色
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message 一条对话消息
type Message struct {
	Role    string
	Content string
}

// Client 对话补全客户端
type Client interface {
	// Complete 返回模型对最后一条消息的回复，失败不重试
	Complete(ctx context.Context, system string, messages []Message) (string, error)
	Model() string
}

// Config 客户端配置
type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type genaiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// New 创建 Gemini 对话客户端
func New(ctx context.Context, cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("chat api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create genai client")
	}
	return &genaiClient{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

func (c *genaiClient) Model() string {
	return c.model
}

func (c *genaiClient) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var config *genai.GenerateContentConfig
	if system != "" {
		config = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, Contents(messages), config)
	if err != nil {
		return "", errors.Wrap(err, "generate content")
	}
	text := resp.Text()
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

// Contents 把对话消息转换为 genai 内容，assistant 对应 model 角色
func Contents(messages []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		var role genai.Role = genai.RoleUser
		if m.Role == RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}
	return contents
}
