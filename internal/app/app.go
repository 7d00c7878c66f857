// Package app 提供应用容器，封装所有依赖和服务
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/dao"
	"github.com/haierkeys/dev-knowledge-base/internal/domain"
	"github.com/haierkeys/dev-knowledge-base/internal/service"
	pkgapp "github.com/haierkeys/dev-knowledge-base/pkg/app"
	"github.com/haierkeys/dev-knowledge-base/pkg/challenge"
	"github.com/haierkeys/dev-knowledge-base/pkg/chat"
	"github.com/haierkeys/dev-knowledge-base/pkg/storage"
	"github.com/haierkeys/dev-knowledge-base/pkg/workerpool"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// App 应用容器，封装所有依赖和服务
type App struct {
	// 基础设施（注入的依赖）
	config *AppConfig
	logger *zap.Logger
	DB     *gorm.DB
	Dao    *dao.Dao

	// StartTime 容器创建时间，用于健康检查
	StartTime time.Time

	// Repository 层
	CategoryRepo    domain.CategoryRepository
	TagRepo         domain.TagRepository
	NoteRepo        domain.NoteRepository
	SnippetRepo     domain.SnippetRepository
	QuickLookupRepo domain.QuickLookupRepository
	TicketRepo      domain.TicketRepository

	// Service 层
	Resolver           service.RelationResolver
	CategoryService    service.CategoryService
	TagService         service.TagService
	NoteService        service.NoteService
	SnippetService     service.SnippetService
	QuickLookupService service.QuickLookupService
	TicketService      service.TicketService
	ChatService        service.ChatService
	ChallengeService   service.ChallengeService
	SnapshotService    service.SnapshotService

	// 外部客户端，可通过 Option 替换
	chatClient      chat.Client
	challengeClient service.ChallengeClient
	snapshotStore   storage.Storager

	// workerPool 后台任务并发控制
	workerPool *workerpool.Pool

	// 关闭控制
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// Option App 配置项
type Option func(*App)

// WithChatClient 替换对话客户端，nil 表示禁用对话
func WithChatClient(c chat.Client) Option {
	return func(a *App) {
		a.chatClient = c
	}
}

// WithChallengeClient 替换题目接口客户端
func WithChallengeClient(c service.ChallengeClient) Option {
	return func(a *App) {
		a.challengeClient = c
	}
}

// WithSnapshotStorage 替换快照存储，nil 表示禁用快照导出
func WithSnapshotStorage(s storage.Storager) Option {
	return func(a *App) {
		a.snapshotStore = s
	}
}

// NewApp 创建应用容器实例
// 初始化所有依赖并进行依赖注入
// cfg: 应用配置（必须）
// logger: zap 日志器（必须）
// db: 数据库连接（必须）
func NewApp(cfg *AppConfig, logger *zap.Logger, db *gorm.DB, opts ...Option) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	a := &App{
		config:     cfg,
		logger:     logger,
		DB:         db,
		StartTime:  time.Now(),
		shutdownCh: make(chan struct{}),
	}

	// 外部客户端：未通过 Option 注入时按配置创建
	a.chatClient = newChatClient(cfg, logger)
	a.challengeClient = challenge.New(challenge.Config{
		BaseURL:      cfg.Challenge.BaseURL,
		APIKey:       cfg.Challenge.APIKey,
		APIKeyHeader: cfg.Challenge.APIKeyHeader,
		Timeout:      cfg.GetChallengeTimeout(),
	})
	a.snapshotStore = newSnapshotStorage(cfg, logger)
	for _, opt := range opts {
		opt(a)
	}

	// 初始化 DAO（使用依赖注入）
	daoConfig := cfg.DaoConfig()
	a.Dao = dao.New(db,
		dao.WithConfig(&daoConfig),
		dao.WithLogger(logger),
	)

	// 初始化 Repository 层
	a.CategoryRepo = dao.NewCategoryRepository(a.Dao)
	a.TagRepo = dao.NewTagRepository(a.Dao)
	a.NoteRepo = dao.NewNoteRepository(a.Dao)
	a.SnippetRepo = dao.NewSnippetRepository(a.Dao)
	a.QuickLookupRepo = dao.NewQuickLookupRepository(a.Dao)
	a.TicketRepo = dao.NewTicketRepository(a.Dao)

	// 创建 ServiceConfig（从 AppConfig 提取 Service 层需要的配置）
	svcConfig := &service.ServiceConfig{
		Chat: service.ChatServiceConfig{
			SystemPrompt: cfg.Chat.SystemPrompt,
			MaxMessages:  cfg.Chat.MaxMessages,
		},
		Snapshot: service.SnapshotServiceConfig{
			StorageType: cfg.Snapshot.Storage.Type,
			Version:     Version,
		},
	}

	// 初始化 Service 层（依赖注入）
	a.Resolver = service.NewRelationResolver(a.TagRepo, a.CategoryRepo, logger)
	a.CategoryService = service.NewCategoryService(a.CategoryRepo, logger)
	a.TagService = service.NewTagService(a.TagRepo, a.Resolver)
	a.NoteService = service.NewNoteService(a.NoteRepo, a.CategoryRepo, a.Resolver, logger)
	a.SnippetService = service.NewSnippetService(a.SnippetRepo, a.CategoryRepo, a.Resolver, logger)
	a.QuickLookupService = service.NewQuickLookupService(a.QuickLookupRepo, a.CategoryRepo, a.Resolver, logger)
	a.TicketService = service.NewTicketService(a.TicketRepo)
	a.ChatService = service.NewChatService(a.chatClient, svcConfig.Chat, logger)
	a.ChallengeService = service.NewChallengeService(a.challengeClient, logger)

	a.workerPool = workerpool.New(workerpool.Config{MaxWorkers: cfg.Snapshot.Workers}, logger)
	a.SnapshotService = service.NewSnapshotService(service.SnapshotRepos{
		Categories: a.CategoryRepo,
		Tags:       a.TagRepo,
		Notes:      a.NoteRepo,
		Snippets:   a.SnippetRepo,
		Lookups:    a.QuickLookupRepo,
		Tickets:    a.TicketRepo,
	}, a.snapshotStore, a.workerPool, svcConfig.Snapshot, logger)

	logger.Info("App container initialized successfully",
		zap.String("database", cfg.Database.Type),
		zap.Bool("chatEnabled", a.chatClient != nil),
		zap.Bool("snapshotEnabled", a.snapshotStore != nil))

	return a, nil
}

// newSnapshotStorage 未启用或配置无效时返回 nil，快照接口将返回未启用错误
func newSnapshotStorage(cfg *AppConfig, logger *zap.Logger) storage.Storager {
	if !cfg.Snapshot.Enabled {
		return nil
	}
	s, err := storage.NewClient(context.Background(), &cfg.Snapshot.Storage)
	if err != nil {
		logger.Warn("snapshot storage disabled",
			zap.String("type", cfg.Snapshot.Storage.Type),
			zap.Error(err))
		return nil
	}
	return s
}

// newChatClient 未配置 api key 或创建失败时返回 nil，/api/chat 将返回未配置错误
func newChatClient(cfg *AppConfig, logger *zap.Logger) chat.Client {
	if cfg.Chat.APIKey == "" {
		return nil
	}
	client, err := chat.New(context.Background(), chat.Config{
		APIKey:  cfg.Chat.APIKey,
		Model:   cfg.Chat.Model,
		Timeout: cfg.GetChatTimeout(),
	})
	if err != nil {
		logger.Warn("chat client disabled", zap.Error(err))
		return nil
	}
	return client
}

// Close 释放应用容器持有的资源
// 任务池已由 Shutdown 关闭时不再等待
func (a *App) Close() error {
	if a.workerPool != nil {
		_ = a.workerPool.Shutdown(context.Background())
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql.DB: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		a.logger.Info("Database connection closed")
	}
	return nil
}

// Config 获取应用配置
func (a *App) Config() *AppConfig {
	return a.config
}

// Logger 获取日志器
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Version 获取版本信息
func (a *App) Version() pkgapp.VersionInfo {
	return pkgapp.VersionInfo{
		Version:   Version,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// AdminSecret 管理接口共享密钥
func (a *App) AdminSecret() string {
	return a.config.Security.AdminSecret
}

// IsProductionMode 是否为生产模式
// 根据日志配置中的 Production 字段判断
func (a *App) IsProductionMode() bool {
	return a.config.Log.Production
}

// DefaultShutdownTimeout 默认关闭超时时间
const DefaultShutdownTimeout = 30 * time.Second

// Shutdown 优雅关闭应用容器
// 等待后台操作完成后关闭数据库
// ctx 用于控制关闭超时，如果为 nil 则使用默认 30 秒超时
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("App container shutting down...")

	// 如果没有提供 context，使用默认超时
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()
	}

	// 标记关闭
	select {
	case <-a.shutdownCh:
		// 已经关闭
		return nil
	default:
		close(a.shutdownCh)
	}

	var errs []error

	// 1. 等待所有后台操作完成
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		a.logger.Info("All background operations completed")
	case <-ctx.Done():
		a.logger.Warn("Shutdown timeout waiting for background operations")
		errs = append(errs, fmt.Errorf("background operations timeout: %w", ctx.Err()))
	}

	// 2. 停止后台任务池
	if a.workerPool != nil {
		if err := a.workerPool.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("worker pool shutdown: %w", err))
		}
	}

	// 3. 关闭数据库连接
	if err := a.Close(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Warn("App container shutdown completed with errors",
			zap.Int("errorCount", len(errs)))
		return fmt.Errorf("shutdown completed with %d errors: %v", len(errs), errs)
	}

	a.logger.Info("App container shutdown completed successfully")
	return nil
}

// IsShuttingDown 检查应用是否正在关闭
func (a *App) IsShuttingDown() bool {
	select {
	case <-a.shutdownCh:
		return true
	default:
		return false
	}
}

// ShutdownCh 返回关闭信号通道（用于监听关闭事件）
func (a *App) ShutdownCh() <-chan struct{} {
	return a.shutdownCh
}

// TrackOperation 跟踪后台操作（用于优雅关闭时等待）
// 返回一个函数，在操作完成时调用
func (a *App) TrackOperation() func() {
	a.wg.Add(1)
	return func() {
		a.wg.Done()
	}
}
