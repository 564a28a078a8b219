package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/fitcheck/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = maxMultipartMemory(cfg.Storage.MaxUploadBytes)
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
	)

	router.GET("/healthz", handler.Health)

	api := router.Group("/api/v1")
	{
		api.POST("/auth/signup", handler.Signup)
		api.POST("/auth/token", handler.Token)
		api.POST("/auth/refresh", handler.Refresh)
		api.GET("/images/*key", handler.ServeImage)
	}

	secured := api.Group("/")
	secured.Use(authMiddleware(handler.authSvc))
	{
		secured.GET("/auth/me", handler.Me)
		secured.GET("/items", handler.ListItems)
		secured.POST("/items", handler.AddItem)
		secured.DELETE("/items", handler.DeleteItem)
		secured.POST("/outfits/from-prompt", handler.OutfitFromPrompt)
		secured.POST("/outfits/from-image", handler.OutfitFromImage)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func maxMultipartMemory(maxUpload int64) int64 {
	if maxUpload <= 0 {
		return 32 << 20
	}
	return maxUpload + 1<<20
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
