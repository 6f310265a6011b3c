// Package server - HTTP-интерфейс доски комментариев поверх gin.
package server

import (
	"net/http"

	"github.com/MosinFAM/comment-board/internal/config"
	"github.com/MosinFAM/comment-board/internal/logger"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
)

// NewRouter собирает gin с middleware и маршрутами страниц
func NewRouter(cfg config.ServerConfig, h *Handler) *gin.Engine {
	gin.SetMode(cfg.Mode)

	r := gin.New()
	// идентификатор страницы может содержать %2F
	r.UseRawPath = true
	r.UnescapePathValues = true
	r.Use(gin.Recovery(), logger.RequestID(), logger.GinMiddleware(h.Log))

	// Заголовки безопасности; HSTS и редирект на https только если TLS терминируется у нас
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
	if cfg.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}
	r.Use(secure.New(secureConfig))

	// Настройка CORS
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	r.Use(corsMiddleware(c))

	r.GET("/health", h.Health)

	pages := r.Group("/pages")
	pages.POST("", h.PostPage)
	pages.GET("/:pageId", h.GetPage)
	pages.GET("/:pageId/comments", h.GetComments)
	pages.POST("/:pageId/comments", h.PostComment)
	pages.GET("/:pageId/live", h.LiveComments)

	return r
}

// corsMiddleware адаптирует rs/cors к gin; на preflight rs/cors отвечает сам
func corsMiddleware(c *cors.Cors) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		c.HandlerFunc(ctx.Writer, ctx.Request)
		if ctx.Request.Method == http.MethodOptions &&
			ctx.GetHeader("Access-Control-Request-Method") != "" {
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}
