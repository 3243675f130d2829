package main

//	@title			Company Sys API
//	@version		1.0
//	@description	Role-based project management API.
//	@schemes		http https
//	@BasePath		/api/v1

//  Bearer per user
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				User bearer token (e.g., "Bearer eyJhbGciOi...")

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/company-sys/backend/internal/auth"
	"github.com/company-sys/backend/internal/bootstrap"
	"github.com/company-sys/backend/internal/config"
	"github.com/company-sys/backend/internal/infra/cache"
	dbpkg "github.com/company-sys/backend/internal/infra/db"
	"github.com/company-sys/backend/internal/modules/handler"
	"github.com/company-sys/backend/internal/router"
	"github.com/company-sys/backend/internal/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// build dependency injection container
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)

	shutdown, err := telemetry.SetupTracing(cfg, "api")
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if cfg.Telemetry.Enabled {
		log.Sugar().Infow("OpenTelemetry tracing enabled", "endpoint", cfg.Telemetry.OtlpEndpoint)

		// Register GORM OpenTelemetry plugin after tracer provider is set
		if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
			log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin, continuing without database tracing", "err", err)
		}
		// Register Redis OpenTelemetry plugin after tracer provider is set
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Sugar().Warnw("failed to register Redis OpenTelemetry plugin, continuing without Redis tracing", "err", err)
		}
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Sugar().Errorw("failed to shutdown tracer", "err", err)
		}
	}()

	// init gin
	gin.SetMode(cfg.App.Env)

	engine := router.NewRouter(router.RouterDeps{
		Config:              cfg,
		Log:                 log,
		Tokens:              do.MustInvoke[*auth.Tokens](inj),
		Principals:          do.MustInvoke[*cache.PrincipalCache](inj),
		ProjectHandler:      do.MustInvoke[*handler.ProjectHandler](inj),
		TaskHandler:         do.MustInvoke[*handler.TaskHandler](inj),
		AssetHandler:        do.MustInvoke[*handler.AssetHandler](inj),
		CommentHandler:      do.MustInvoke[*handler.CommentHandler](inj),
		NotificationHandler: do.MustInvoke[*handler.NotificationHandler](inj),
		ActivityHandler:     do.MustInvoke[*handler.ActivityHandler](inj),
		UserHandler:         do.MustInvoke[*handler.UserHandler](inj),
	})

	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
	srv := &http.Server{Addr: addr, Handler: engine}

	go func() {
		log.Sugar().Infow("starting http server", "addr", addr)
		log.Sugar().Infow("swagger url", "url", addr+"/swagger/index.html")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Sugar().Fatalw("listen error", "err", err)
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Sugar().Errorw("server shutdown", "err", err)
	}
	if err := inj.Shutdown(); err != nil {
		log.Sugar().Warnw("container shutdown", "err", err)
	}
	log.Sugar().Info("server exited")
}
