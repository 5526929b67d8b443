package api

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"batepapo/services"
)

// NewRouter wires the chat routes onto a gin engine with recovery and
// request logging.
func NewRouter(log *slog.Logger, chat services.IChatService) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(log))

	handler := NewHandler(log, chat)
	router.POST("/participants", handler.RegisterParticipant)
	router.GET("/participants", handler.ListParticipants)
	router.POST("/messages", handler.PostMessage)
	router.GET("/messages", handler.ListMessages)
	router.POST("/status", handler.StatusPing)

	health := NewHealthHandler(log)
	router.GET("/health", health.Report)

	return router
}

// RequestLogger logs one line per request with method, path, status and latency.
func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
