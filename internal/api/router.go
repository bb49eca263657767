package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/BerylCAtieno/romantic-brand-builder/internal/a2a"
	"github.com/BerylCAtieno/romantic-brand-builder/internal/models"
)

type RouterConfig struct {
	AllowedOrigins []string
	MaxImageBytes  int64

	// Limits for endpoints that can start a model call. Zero disables.
	GenerationRPS   float64
	GenerationBurst int
}

// NewRouter wires every HTTP endpoint of the service.
func NewRouter(cfg RouterConfig, sessions *SessionHandler, agent *a2a.A2AHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger.Named("http")))
	corsCfg := cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	}
	router.Use(cors.New(corsCfg))

	// A full batch of photos plus form overhead.
	router.Use(BodySizeLimit(cfg.MaxImageBytes*models.MaxImages + 1<<20))

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limit := func(c *gin.Context) { c.Next() }
	if cfg.GenerationRPS > 0 {
		limit = NewRateLimiter(rate.Limit(cfg.GenerationRPS), max(cfg.GenerationBurst, 1)).Middleware()
	}

	router.GET("/.well-known/agent.json", agent.ServeAgentCard)
	router.POST("/a2a/profile", limit, agent.HandleProfile)

	api := router.Group("/api")
	api.GET("/tones", ListTones)

	s := api.Group("/sessions")
	s.POST("", sessions.CreateSession)
	s.GET("/:id", sessions.GetSession)
	s.DELETE("/:id", sessions.DeleteSession)
	s.PATCH("/:id/fields", sessions.SetField)
	s.POST("/:id/images", sessions.AttachImages)
	s.DELETE("/:id/images/:index", sessions.RemoveImage)
	s.POST("/:id/advance", limit, sessions.Advance)
	s.POST("/:id/retreat", sessions.Retreat)
	s.POST("/:id/restart", sessions.Restart)
	s.GET("/:id/result", sessions.GetResult)

	return router
}
