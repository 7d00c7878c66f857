package routers

import (
	"time"

	"github.com/haierkeys/dev-knowledge-base/internal/app"
	"github.com/haierkeys/dev-knowledge-base/internal/middleware"
	"github.com/haierkeys/dev-knowledge-base/internal/routers/api_router"
	"github.com/haierkeys/dev-knowledge-base/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
	"github.com/opentracing/opentracing-go"
)

// newLimiter 外部服务接口按分钟限流，limit <= 0 时不限流
func newLimiter(cfg *app.AppConfig) limiter.Face {
	l := limiter.NewPrefixLimiter()
	if n := cfg.App.ChatRateLimit; n > 0 {
		l.AddBuckets(limiter.BucketRule{
			Key:          "/api/chat",
			FillInterval: time.Minute,
			Capacity:     n,
			Quantum:      n,
		})
	}
	if n := cfg.App.ChallengeRateLimit; n > 0 {
		l.AddBuckets(limiter.BucketRule{
			Key:          "/api/challenge",
			FillInterval: time.Minute,
			Capacity:     n,
			Quantum:      n,
		})
	}
	return l
}

func NewRouter(appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()
	lg := appContainer.Logger()

	r := gin.New()
	r.Use(middleware.RecoveryWithLogger(lg))
	r.Use(middleware.Cors())

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(middleware.TraceMiddleware(middleware.TraceConfig{Enabled: cfg.Tracer.Enabled, Header: cfg.Tracer.Header})) // Trace ID 中间件
		api.Use(middleware.Tracing(opentracing.GlobalTracer()))
		api.Use(middleware.AccessLog(lg))
		api.Use(middleware.RateLimiter(newLimiter(cfg)))
		api.Use(middleware.ContextTimeout(appContainer.Config().GetContextTimeout()))
		api.Use(middleware.LangWithTranslator(uni))

		// 写操作需要管理员共享密钥
		admin := middleware.AdminAuth(appContainer.AdminSecret())

		// 创建 Handlers（注入 App Container）
		systemHandler := api_router.NewSystemHandler(appContainer)
		categoryHandler := api_router.NewCategoryHandler(appContainer)
		tagHandler := api_router.NewTagHandler(appContainer)
		noteHandler := api_router.NewNoteHandler(appContainer)
		snippetHandler := api_router.NewSnippetHandler(appContainer)
		lookupHandler := api_router.NewLookupHandler(appContainer)
		ticketHandler := api_router.NewTicketHandler(appContainer)
		externalHandler := api_router.NewExternalHandler(appContainer)
		snapshotHandler := api_router.NewSnapshotHandler(appContainer)

		api.GET("/health", systemHandler.Health)
		api.GET("/version", systemHandler.Version)
		api.POST("/admin/check", systemHandler.AdminCheck)
		api.POST("/admin/snapshot", admin, snapshotHandler.Export)

		api.GET("/categories", categoryHandler.List)
		api.GET("/category", categoryHandler.Get)
		api.POST("/category", admin, categoryHandler.Upsert)
		api.DELETE("/category", admin, categoryHandler.Delete)

		api.GET("/tags", tagHandler.List)
		api.POST("/tag", admin, tagHandler.Create)
		api.DELETE("/tag", admin, tagHandler.Delete)

		api.GET("/notes", noteHandler.List)
		api.GET("/note", noteHandler.Get)
		api.POST("/note", admin, noteHandler.Upsert)
		api.PUT("/note/star", admin, noteHandler.ToggleStar)
		api.DELETE("/note", admin, noteHandler.Delete)

		api.GET("/snippets", snippetHandler.List)
		api.GET("/snippet", snippetHandler.Get)
		api.POST("/snippet", admin, snippetHandler.Upsert)
		api.PUT("/snippet/star", admin, snippetHandler.ToggleStar)
		api.DELETE("/snippet", admin, snippetHandler.Delete)

		api.GET("/lookups", lookupHandler.List)
		api.GET("/lookups/search", lookupHandler.Search)
		api.GET("/lookup", lookupHandler.Get)
		api.POST("/lookup", admin, lookupHandler.Upsert)
		api.PUT("/lookup/star", admin, lookupHandler.ToggleStar)
		api.DELETE("/lookup", admin, lookupHandler.Delete)

		api.GET("/tickets", ticketHandler.List)
		api.GET("/ticket", ticketHandler.Get)
		api.POST("/ticket", admin, ticketHandler.Upsert)
		api.DELETE("/ticket", admin, ticketHandler.Delete)

		api.POST("/chat", externalHandler.Chat)
		api.GET("/challenge/daily", externalHandler.ChallengeDaily)
		api.GET("/challenge/problem", externalHandler.ChallengeProblem)

		if cfg.App.MCPEnabled {
			api.Any("/mcp", gin.WrapH(api_router.NewMCPHandler(appContainer)))
		}
	}

	r.NoRoute(middleware.NoFound())

	return r
}
