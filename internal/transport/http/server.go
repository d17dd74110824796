package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/relaykit/relay/internal/config"
	"github.com/relaykit/relay/internal/core"
	"github.com/relaykit/relay/internal/store"
)

// NewServer builds the HTTP server: health check, REST surface, and the
// WebSocket relay endpoint.
func NewServer(hub *core.Hub, st store.MessageStore, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})

	api := router.Group("/api")
	handlers := NewAPIHandlers(st, hub.Presence(), logger)
	api.GET("/history", handlers.History)
	api.GET("/presence", handlers.Presence)

	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.MessageRateLimit, logger)))

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
