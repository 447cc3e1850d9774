package di

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/jrjohn/docstore-users/internal/config"
	httpctrl "github.com/jrjohn/docstore-users/internal/controller/http"
	"github.com/jrjohn/docstore-users/internal/dto/response"
	"github.com/jrjohn/docstore-users/internal/middleware"
	"github.com/jrjohn/docstore-users/internal/observability"
)

const readinessTimeout = 2 * time.Second

// HTTPServerModule provides HTTP server dependencies
var HTTPServerModule = fx.Module("http_server",
	fx.Provide(provideGinEngine),
	fx.Provide(provideHTTPServer),
	fx.Invoke(registerHTTPRoutes),
	fx.Invoke(startHTTPServer),
)

// Pinger reports whether the store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

func provideGinEngine(
	cfg *config.Config,
	metrics *observability.MetricsProvider,
	logger *zap.Logger,
) *gin.Engine {
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(observability.TracingMiddleware(cfg.Tracing.ServiceName))
	router.Use(observability.MetricsMiddleware(metrics))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS(middleware.CORSConfigFor(cfg.Server.AllowedOrigins)))

	return router
}

func provideHTTPServer(cfg *config.ServerConfig, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Controllers holds the HTTP controllers for fx to inject
type Controllers struct {
	fx.In

	Users []*httpctrl.UserController `group:"user_controllers"`
}

func registerHTTPRoutes(
	router *gin.Engine,
	controllers Controllers,
	mongoDB *MongoDatabase,
	metrics *observability.MetricsProvider,
	logger *zap.Logger,
) {
	registerRoutes(router, controllers.Users, mongoDB, metrics, logger)
}

// registerRoutes mounts health, readiness, metrics and every variant under /api.
func registerRoutes(
	router *gin.Engine,
	users []*httpctrl.UserController,
	pinger Pinger,
	metrics *observability.MetricsProvider,
	logger *zap.Logger,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		if err := pinger.Ping(ctx); err != nil {
			observability.RecordSpanError(c.Request.Context(), err)
			logger.Warn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable,
				response.NewErrorResponse(http.StatusServiceUnavailable, "database unreachable", ""))
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if path := metrics.Path(); path != "" {
		router.GET(path, gin.WrapH(metrics.Handler()))
	}

	api := router.Group("/api")
	for _, ctrl := range users {
		ctrl.RegisterRoutes(api)
	}
}

func startHTTPServer(lc fx.Lifecycle, server *http.Server, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting HTTP server", zap.String("address", server.Addr))
			go func() {
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}
