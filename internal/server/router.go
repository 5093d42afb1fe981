package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meridianbank/nova/internal/core"
	logx "github.com/meridianbank/nova/pkg/logger"
)

// Dependencies collects the handlers the router wires up.
type Dependencies struct {
	ChatHandler   *ChatHandler
	EvalHandler   *EvalHandler
	HealthHandler *HealthHandler
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(env core.Environment, deps Dependencies) *gin.Engine {
	if env.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logx.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})

	r.GET("/healthz", deps.HealthHandler.Health)
	r.POST("/chat", deps.ChatHandler.Chat)

	if deps.EvalHandler != nil {
		r.POST("/simulation/:dataset_id", deps.EvalHandler.Simulation)
		r.POST("/single-turn/:dataset_id", deps.EvalHandler.SingleTurn)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
	})

	return r
}
