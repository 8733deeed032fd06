package router

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahilk27/wattwise/internal/server/handlers"
	"github.com/sahilk27/wattwise/internal/service/auth"
)

// Handlers groups the HTTP adapters the router wires up.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Consumption *handlers.ConsumptionHandler
	Profile     *handlers.ProfileHandler
	Export      *handlers.ExportHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, jwtSecret []byte, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)

	authorized := api.Group("")
	authorized.Use(authMiddleware(jwtSecret, logger))
	authorized.POST("/consumption", h.Consumption.Submit)
	authorized.GET("/consumption", h.Consumption.Range)
	authorized.GET("/consumption/today", h.Consumption.Today)
	authorized.GET("/profile", h.Profile.Get)
	authorized.PUT("/profile", h.Profile.Update)
	authorized.GET("/profile/logins", h.Profile.Logins)
	authorized.GET("/export/csv", h.Export.CSV)
	authorized.POST("/export/sheets", h.Export.Sheets)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}

// authMiddleware validates the bearer token and stashes the username in
// the request context. Every protected operation downstream only sees the
// already-authenticated username string.
func authMiddleware(jwtSecret []byte, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		username, err := auth.UsernameFromToken(token, jwtSecret)
		if err != nil {
			logger.Debug("token rejected", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(handlers.UsernameKey, username)
		c.Next()
	}
}
