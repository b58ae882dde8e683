package api

import (
	"context"
	"net/http"
	"time"

	"recipe-finder/internal/api/handlers/health"
	searchHandler "recipe-finder/internal/api/handlers/search"
	"recipe-finder/internal/api/middleware"
	"recipe-finder/internal/core/cache"
	"recipe-finder/internal/core/provider/gemini"
	"recipe-finder/internal/core/provider/groq"
	"recipe-finder/internal/core/provider/huggingface"
	"recipe-finder/internal/core/provider/spoonacular"
	"recipe-finder/internal/core/recipe"
	"recipe-finder/internal/infrastructure/config"
	"recipe-finder/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置：涵蓋整條退避鏈（供應商各 8-10s 超時，最多四層）
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (1MB)，API 僅接受查詢參數
	maxBodySize = 1 << 20
)

// contextMiddleware 設置請求超時並注入配置與協調器
func contextMiddleware(cfg *config.Config, orchestrator *recipe.Orchestrator, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// 設置配置與協調器，供健康檢查使用
		c.Set("config", cfg)
		c.Set("orchestrator", orchestrator)

		// 處理請求
		c.Next()

		// 檢查是否超時。退避鏈可能吸收超時後照常回應，
		// 已寫出回應就不能再附加 504 信封
		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeout),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeout.String(),
				},
			})
			c.Abort()
			return
		}
	}
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 初始化供應商，順序即退避順序
	spoonacularClient := spoonacular.NewClient(cfg.Spoonacular)
	providers := []recipe.Provider{
		spoonacularClient,
		gemini.NewClient(cfg.Gemini),
		groq.NewClient(cfg.Groq),
		huggingface.NewClient(cfg.HuggingFace),
	}

	table := recipe.NewLocalTable()
	orchestrator := recipe.NewOrchestrator(providers, table)

	common.LogInfo("Providers initialized",
		zap.Bool("spoonacular_configured", cfg.Spoonacular.Configured()),
		zap.Bool("gemini_configured", cfg.Gemini.Configured()),
		zap.Bool("groq_configured", cfg.Groq.Configured()),
		zap.Bool("huggingface_configured", cfg.HuggingFace.Configured()),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	handler := searchHandler.NewHandler(orchestrator, table, spoonacularClient, store, cfg.Search.MaxResults)

	// 全局中間件：設置超時和服務
	router.Use(contextMiddleware(cfg, orchestrator, timeoutDuration))

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組。請求去重只掛在業務路由上，
	// 探針端點（/health /ready /live）會在去重窗口內重複命中，不能被擋
	api := router.Group("/api/v1")
	api.Use(middleware.Deduplication(cfg))
	{
		// 食譜搜索（完整退避鏈）
		api.GET("/search", handler.HandleSearch)

		// 食材自動補全
		api.GET("/ingredients/suggest", handler.HandleSuggest)

		// 食譜詳情
		api.GET("/recipes/:id", handler.HandleDetail)

		// 診斷端點
		api.GET("/fallback-status", handler.HandleFallbackStatus)
		api.GET("/emergency", handler.HandleEmergency)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int("provider_count", len(providers)),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
