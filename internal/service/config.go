// Package service implements the business logic layer
// Package service 实现业务逻辑层
package service

// ServiceConfig service layer configuration
// ServiceConfig 服务层配置
type ServiceConfig struct {
	Chat     ChatServiceConfig     // Chat related config // 对话相关配置
	Snapshot SnapshotServiceConfig // Snapshot export config // 快照导出配置
}

// ChatServiceConfig chat service configuration
// ChatServiceConfig 对话服务配置
type ChatServiceConfig struct {
	SystemPrompt string // System instruction sent with every request // 每次请求附带的系统提示词
	MaxMessages  int    // Only the latest N messages are forwarded, 0 for no limit // 只转发最近 N 条消息，0 表示不限制
}
