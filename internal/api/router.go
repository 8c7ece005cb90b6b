package api

import (
	"net/http"
	"time"

	"SportEvents/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter 注册全部路由；debug 模式下额外挂载 pprof
func NewRouter(cfg config.ServerConfig, events *EventHandler, logger *logrus.Logger) (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	if cfg.Mode == gin.DebugMode {
		pprof.Register(r)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
	})

	g := r.Group("/api/events")
	g.POST("", events.Create)
	g.GET("", events.List)
	g.GET("/summary", events.Summary)
	g.GET("/:id", events.Get)
	g.PUT("/:id", events.Update)
	g.PATCH("/:id/status", events.UpdateStatus)
	g.DELETE("/:id", events.Remove)
	return r, nil
}

// requestLogger 用 logrus 记录访问日志
func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request")
	}
}
