// Package server assembles the HTTP surface: both GraphQL endpoints behind
// tenant resolution, health and metrics endpoints, and the middleware chain
// for logging, tracing and request metrics.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/handler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/mall/internal/config"
	"github.com/smallbiznis/mall/internal/graphql/dashboard"
	"github.com/smallbiznis/mall/internal/graphql/storefront"
	"github.com/smallbiznis/mall/internal/observability/logger"
	"github.com/smallbiznis/mall/internal/observability/metrics"
	"github.com/smallbiznis/mall/internal/observability/tracing"
	organizationdomain "github.com/smallbiznis/mall/internal/organization/domain"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Log        *zap.Logger
	Cfg        config.Config
	DB         *gorm.DB
	Orgs       organizationdomain.Repository
	Catalog    *config.CatalogConfigHolder
	Metrics    *metrics.HTTPMetrics
	Tracer     *sdktrace.TracerProvider
	Dashboard  dashboard.Schema
	Storefront storefront.Schema
}

func graphqlHandler(schema graphql.Schema) gin.HandlerFunc {
	h := handler.New(&handler.Config{
		Schema: &schema,
		Pretty: true,
	})
	return func(c *gin.Context) {
		h.ContextHandler(c.Request.Context(), c.Writer, c.Request)
	}
}

func NewRouter(p Params) *gin.Engine {
	if p.Cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		logger.GinMiddleware(p.Log),
		tracing.GinMiddleware(p.Tracer, p.Cfg.AppName),
		metrics.GinMiddleware(p.Metrics),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/graphql", TenantMiddleware(p.DB, p.Orgs, p.Catalog, p.Cfg, p.Log))
	api.POST("/dashboard", JWTAuth(p.Cfg.AuthJWTSecret, p.Log), graphqlHandler(p.Dashboard.Schema))
	api.POST("/storefront", graphqlHandler(p.Storefront.Schema))

	return engine
}

func Run(lc fx.Lifecycle, engine *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}
