package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/toomate/cashier/docs"
	"github.com/toomate/cashier/internal/app/api/handlers"
	mw "github.com/toomate/cashier/internal/app/api/middleware"
	"github.com/toomate/cashier/internal/app/service/change_queue"
	"github.com/toomate/cashier/internal/app/service/pause_removal"
	"github.com/toomate/cashier/internal/app/service/plan_catalog"
	cfgpkg "github.com/toomate/cashier/pkg/config"
	"github.com/toomate/cashier/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log     *zap.SugaredLogger
	Cfg     *cfgpkg.Config
	Pause   *pause_removal.Service
	Store   change_queue.Store
	Catalog *plan_catalog.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	log := d.Log
	// Prometheus metrics
	if d.Cfg != nil && d.Cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			MetricsList: []*metrics.Metric{metrics.MetricsBusinessProcess},
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return "unmatched"
			},
			Logger: log,
		})
		p.SetListenAddress(d.Cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", d.Cfg.MetricsAddr)
	}
	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))

	handlers.RegisterSubscriptionRoutes(apiV1.Group("/subscription"), d.Pause)
	handlers.RegisterAdminRoutes(apiV1.Group("/admin"), d.Store, d.Catalog)
}

func runServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server error: %v", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
