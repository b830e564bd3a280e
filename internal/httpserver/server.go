package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hirelink/contract-sync-service/internal/audit"
	"github.com/hirelink/contract-sync-service/internal/auth"
	"github.com/hirelink/contract-sync-service/internal/config"
	"github.com/hirelink/contract-sync-service/internal/handlers"
	"github.com/hirelink/contract-sync-service/internal/queue"
)

// Health reports whether the audit store is reachable.
type Health interface {
	Ping(ctx context.Context) error
}

// NewRouter wires public endpoints and the API-key-protected sync surface.
// Public: /health, /ready, /metrics
// Authenticated (apikey query param): /sync, /SQS
func NewRouter(
	cfg config.Config,
	health Health,
	sink audit.Sink,
	sess handlers.Session,
	gw handlers.Gateway,
	disp handlers.Dispatcher,
	pub queue.Publisher,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	// Liveness: confirms the process is running.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness: confirms the audit store is reachable.
	r.GET("/ready", func(c *gin.Context) {
		if health == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if err := health.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authGroup := r.Group("/")
	authGroup.Use(auth.APIKeyMiddleware(cfg.APIKey, sink))

	handlers.RegisterSyncRoutes(authGroup, sess, gw, disp, sink)
	handlers.RegisterQueueRoutes(authGroup, pub, sink)

	return r
}
