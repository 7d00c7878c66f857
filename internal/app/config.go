// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/dao"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage"
	"github.com/haierkeys/dev-knowledge-base/pkg/util"

	"github.com/creasty/defaults"
	"github.com/natefinch/atomic"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// AppConfig 应用配置
type AppConfig struct {
	File      string          `yaml:"-"` // 配置文件路径，不序列化
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Database  DatabaseConfig  `yaml:"database"`
	App       AppSettings     `yaml:"app"`
	Security  SecurityConfig  `yaml:"security"`
	Tracer    TracerConfig    `yaml:"tracer"`
	Chat      ChatConfig      `yaml:"chat"`
	Challenge ChallengeConfig `yaml:"challenge"`
	Task      TaskConfig      `yaml:"task"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
}

// LogConfig 日志配置
type LogConfig struct {
	// Level 日志级别，参见 zapcore.ParseLevel
	Level string `yaml:"level" default:"warn"`
	// File 日志文件路径，为空时输出到 stderr
	File string `yaml:"file" default:"storage/logs/log.log"`
	// Production 是否启用 JSON 输出
	Production bool `yaml:"production" default:"true"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	// RunMode 运行模式
	RunMode string `yaml:"run-mode" default:"release"`
	// HttpPort HTTP 端口
	HttpPort string `yaml:"http-port" default:":9000"`
	// ReadTimeout 读取超时（秒）
	ReadTimeout int `yaml:"read-timeout" default:"60"`
	// WriteTimeout 写入超时（秒）
	WriteTimeout int `yaml:"write-timeout" default:"60"`
	// PrivateHttpListen 私有 HTTP 监听地址，为空时不启动
	PrivateHttpListen string `yaml:"private-http-listen" default:":9001"`
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	// AdminSecret 管理接口共享密钥，为空时拒绝所有写操作
	AdminSecret string `yaml:"admin-secret" default:"dev-knowledge-base-admin-secret"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Type 数据库类型 sqlite / mysql / postgres
	Type string `yaml:"type" default:"sqlite"`
	// Path SQLite 数据库文件路径
	Path string `yaml:"path" default:"storage/database/kb.sqlite3"`
	// UserName 用户名
	UserName string `yaml:"username"`
	// Password 密码
	Password string `yaml:"password"`
	// Host 主机
	Host string `yaml:"host"`
	// Port 端口（postgres）
	Port string `yaml:"port" default:"5432"`
	// Name 数据库名
	Name string `yaml:"name"`
	// SSLMode postgres sslmode
	SSLMode string `yaml:"ssl-mode" default:"disable"`
	// TablePrefix 表前缀
	TablePrefix string `yaml:"table-prefix"`
	// AutoMigrate 是否启用自动迁移
	AutoMigrate bool `yaml:"auto-migrate" default:"true"`
	// Charset 字符集
	Charset string `yaml:"charset" default:"utf8mb4"`
	// ParseTime 是否解析时间
	ParseTime bool `yaml:"parse-time" default:"true"`
	// MaxIdleConns 最大闲置连接数
	MaxIdleConns int `yaml:"max-idle-conns" default:"10"`
	// MaxOpenConns 最大打开连接数
	MaxOpenConns int `yaml:"max-open-conns" default:"100"`
	// ConnMaxLifetime 连接最大生命周期，支持格式：30m（分钟）、1h（小时）
	ConnMaxLifetime string `yaml:"conn-max-lifetime" default:"30m"`
	// ConnMaxIdleTime 空闲连接最大生命周期
	ConnMaxIdleTime string `yaml:"conn-max-idle-time" default:"10m"`
	// Replicas 只读副本 DSN
	Replicas []string `yaml:"replicas"`
}

// AppSettings 应用设置
type AppSettings struct {
	// DefaultContextTimeout 默认上下文超时时间（秒）
	DefaultContextTimeout int `yaml:"default-context-timeout" default:"60"`
	// ChatRateLimit /api/chat 每分钟请求数
	ChatRateLimit int64 `yaml:"chat-rate-limit" default:"20"`
	// ChallengeRateLimit /api/challenge 每分钟请求数
	ChallengeRateLimit int64 `yaml:"challenge-rate-limit" default:"60"`
	// MCPEnabled 是否挂载 /api/mcp
	MCPEnabled bool `yaml:"mcp-enabled" default:"true"`
}

// TracerConfig 请求追踪配置
type TracerConfig struct {
	// Enabled 是否启用追踪
	Enabled bool `yaml:"enabled" default:"true"`
	// Header 追踪 ID 请求头名称
	Header string `yaml:"header" default:"X-Trace-ID"`
	// JaegerAgent Jaeger agent 地址 host:port，为空时不上报 span
	JaegerAgent string `yaml:"jaeger-agent"`
}

// ChatConfig LLM 对话配置
type ChatConfig struct {
	// APIKey Gemini API key，为空时 /api/chat 返回未配置
	APIKey string `yaml:"api-key"`
	// Model 模型名称
	Model string `yaml:"model" default:"gemini-2.5-flash"`
	// Timeout 单次请求超时
	Timeout string `yaml:"timeout" default:"60s"`
	// SystemPrompt 系统提示词
	SystemPrompt string `yaml:"system-prompt" default:"You are a concise assistant for software developers."`
	// MaxMessages 只转发最近 N 条消息
	MaxMessages int `yaml:"max-messages" default:"20"`
}

// ChallengeConfig 编程题目接口配置
type ChallengeConfig struct {
	BaseURL      string `yaml:"base-url" default:"https://alfa-leetcode-api.onrender.com"`
	APIKey       string `yaml:"api-key"`
	APIKeyHeader string `yaml:"api-key-header" default:"X-API-Key"`
	Timeout      string `yaml:"timeout" default:"10s"`
}

// TaskConfig 定时任务配置
type TaskConfig struct {
	// UsageAuditSpec 分类使用次数巡检的 cron 表达式，为空时禁用
	UsageAuditSpec string `yaml:"usage-audit-spec" default:"@every 30m"`
	// SnapshotSpec 快照导出的 cron 表达式，为空时只能通过管理接口手动导出
	SnapshotSpec string `yaml:"snapshot-spec"`
}

// SnapshotConfig 快照导出配置
type SnapshotConfig struct {
	// Enabled 是否启用快照导出
	Enabled bool `yaml:"enabled" default:"false"`
	// Workers 并发读取集合的 worker 数
	Workers int `yaml:"workers" default:"4"`
	// Storage 导出目标
	Storage storage.Config `yaml:"storage"`
}

// LoadConfig 从文件加载配置
// 返回配置实例和配置文件的绝对路径
func LoadConfig(f string) (*AppConfig, string, error) {
	realpath, err := filepath.Abs(f)
	if err != nil {
		return nil, "", err
	}
	realpath = filepath.Clean(realpath)

	file, err := os.ReadFile(realpath)
	if err != nil {
		return nil, realpath, errors.Wrap(err, "read config file failed")
	}

	c, err := ParseConfig(file)
	if err != nil {
		return nil, realpath, err
	}
	c.File = realpath
	return c, realpath, nil
}

// ParseConfig 解析 YAML 配置内容并填充默认值
func ParseConfig(data []byte) (*AppConfig, error) {
	c := new(AppConfig)

	// 先填默认值，YAML 中显式写出的值（包括 false 和空串）覆盖默认值
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "set default config failed")
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config file failed")
	}

	return c, nil
}

// Save 原子地保存配置到文件
func (c *AppConfig) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config failed")
	}

	if err := atomic.WriteFile(c.File, bytes.NewReader(data)); err != nil {
		return errors.Wrap(err, "write config file failed")
	}

	return nil
}

// DaoConfig 转换为 dao.DatabaseConfig
func (c *AppConfig) DaoConfig() dao.DatabaseConfig {
	return dao.DatabaseConfig{
		Type:            c.Database.Type,
		Path:            c.Database.Path,
		UserName:        c.Database.UserName,
		Password:        c.Database.Password,
		Host:            c.Database.Host,
		Port:            c.Database.Port,
		Name:            c.Database.Name,
		SSLMode:         c.Database.SSLMode,
		TablePrefix:     c.Database.TablePrefix,
		AutoMigrate:     c.Database.AutoMigrate,
		Charset:         c.Database.Charset,
		ParseTime:       c.Database.ParseTime,
		MaxIdleConns:    c.Database.MaxIdleConns,
		MaxOpenConns:    c.Database.MaxOpenConns,
		ConnMaxLifetime: c.Database.ConnMaxLifetime,
		ConnMaxIdleTime: c.Database.ConnMaxIdleTime,
		Replicas:        c.Database.Replicas,
		RunMode:         c.Server.RunMode,
		Tracing:         c.Tracer.Enabled && c.Tracer.JaegerAgent != "",
	}
}

// GetContextTimeout 请求上下文超时
func (c *AppConfig) GetContextTimeout() time.Duration {
	if c.App.DefaultContextTimeout <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.App.DefaultContextTimeout) * time.Second
}

// GetChatTimeout 对话请求超时
func (c *AppConfig) GetChatTimeout() time.Duration {
	return util.DurationOr(c.Chat.Timeout, 60*time.Second)
}

// GetChallengeTimeout 题目接口请求超时
func (c *AppConfig) GetChallengeTimeout() time.Duration {
	return util.DurationOr(c.Challenge.Timeout, 10*time.Second)
}
