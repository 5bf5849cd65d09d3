package api

import (
	"context"
	"net/http"
	"time"

	"lumine-kitchen/internal/api/handlers"
	"lumine-kitchen/internal/api/handlers/health"
	recipeHandler "lumine-kitchen/internal/api/handlers/recipe"
	"lumine-kitchen/internal/api/middleware"
	"lumine-kitchen/internal/core/chat"
	"lumine-kitchen/internal/core/mealdb"
	"lumine-kitchen/internal/core/session"
	"lumine-kitchen/internal/infrastructure/config"
	"lumine-kitchen/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 120 * time.Second
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, sessions session.Store) (*gin.Engine, error) {
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
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Session-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Upload.MaxSizeBytes))

	// 全局限流
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.String("mealdb_base_url", cfg.MealDB.BaseURL),
		zap.String("ollama_host", cfg.Chat.Host),
		zap.String("direct_model", cfg.Chat.DirectModel),
		zap.String("orchestrated_model", cfg.Chat.OrchestratedModel),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化 TheMealDB 客戶端
	mealClient := mealdb.NewClient(cfg.MealDB)

	// 初始化聊天後端
	responder := chat.NewResponder(
		chat.NewDirectProvider(cfg.Chat),
		chat.NewOrchestratedProvider(cfg.Chat),
	)

	// 全局中間件：設置超時並注入配置與會話存儲
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置
		c.Set("config", cfg)

		// 設置會話存儲
		c.Set("session_store", sessions)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		chatHandlerInstance := handlers.NewChatHandler(responder, sessions)
		recipeHandlerInstance := recipeHandler.NewHandler(mealClient, sessions, cfg.Upload)

		// 聊天路由
		chatGroup := api.Group("/chat")
		{
			chatGroup.POST("", middleware.Deduplication(cfg), chatHandlerInstance.HandleChatTurn)
			chatGroup.GET("/chefs", chatHandlerInstance.HandleListChefs)
		}

		// 採買清單配對路由
		mixerGroup := api.Group("/mixer")
		{
			mixerGroup.POST("/match", recipeHandlerInstance.HandleMixerMatch)
		}

		// 食譜輪盤路由
		rouletteGroup := api.Group("/roulette")
		{
			rouletteGroup.GET("/filters", recipeHandlerInstance.HandleRouletteFilters)
			rouletteGroup.POST("/spin", middleware.Deduplication(cfg), recipeHandlerInstance.HandleRouletteSpin)
		}

		// 選定食譜路由
		havenGroup := api.Group("/haven")
		{
			havenGroup.GET("", recipeHandlerInstance.HandleHavenView)
			havenGroup.DELETE("", recipeHandlerInstance.HandleHavenClear)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", cfg.Upload.MaxSizeBytes),
	)

	return router, nil
}
