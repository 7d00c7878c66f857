package dto

// ChatMessage One turn of a chat conversation
// ChatMessage 对话中的一条消息
type ChatMessage struct {
	Role    string `json:"role" binding:"required,oneof=user assistant"`
	Content string `json:"content" binding:"required"`
}

// ChatRequest Chat completion request
// ChatRequest 对话请求，最后一条消息为本次提问
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}

// ChatResponse Chat completion response
// ChatResponse 对话响应
type ChatResponse struct {
	Reply string `json:"reply"`
	Model string `json:"model"`
}

// ChallengeProblemRequest Coding challenge problem lookup
// ChallengeProblemRequest 按 slug 查询题目
type ChallengeProblemRequest struct {
	Slug string `json:"slug" form:"slug" binding:"required"`
}
