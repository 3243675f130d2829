package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/company-sys/backend/internal/bootstrap"
	"github.com/company-sys/backend/internal/config"
	dbpkg "github.com/company-sys/backend/internal/infra/db"
	"github.com/company-sys/backend/internal/infra/queue"
	"github.com/company-sys/backend/internal/modules/dispatch"
	"github.com/company-sys/backend/internal/telemetry"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run returns a non-nil error when a consumer stopped on its own, so the
// process exits non-zero and its supervisor restarts it.
func run() error {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	db := do.MustInvoke[*gorm.DB](inj)
	conn := do.MustInvoke[*amqp.Connection](inj)

	shutdown, err := telemetry.SetupTracing(cfg, "worker")
	if err != nil {
		log.Sugar().Warnw("failed to setup tracing, continuing without tracing", "err", err)
	} else if cfg.Telemetry.Enabled {
		if err := dbpkg.RegisterOpenTelemetryPlugin(db); err != nil {
			log.Sugar().Warnw("failed to register GORM OpenTelemetry plugin", "err", err)
		}
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Sugar().Errorw("failed to shutdown tracer", "err", err)
		}
	}()

	worker := do.MustInvoke[*dispatch.Worker](inj)
	sweeper := do.MustInvoke[*dispatch.Sweeper](inj)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumers := []struct {
		queue  string
		handle queue.Handler
	}{
		{cfg.RabbitMQ.QueueName.Notification, worker.HandleNotification},
		{cfg.RabbitMQ.QueueName.Reminder, worker.HandleReminder},
	}

	var (
		wg     sync.WaitGroup
		failed atomic.Pointer[error]
	)
	for _, c := range consumers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			consumer := queue.NewConsumer(conn, c.queue, cfg.RabbitMQ.Prefetch, log)
			if err := consumer.Run(ctx, cfg.Dispatcher.Workers, c.handle); err != nil && ctx.Err() == nil {
				log.Sugar().Errorw("consumer stopped", "queue", c.queue, "err", err)
				failed.CompareAndSwap(nil, &err)
				stop()
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		sweeper.Run(ctx)
	}()

	log.Sugar().Infow("worker started", "workers", cfg.Dispatcher.Workers)
	<-ctx.Done()
	wg.Wait()

	if err := inj.Shutdown(); err != nil {
		log.Sugar().Warnw("container shutdown", "err", err)
	}
	if errp := failed.Load(); errp != nil {
		log.Sugar().Errorw("worker exited", "err", *errp)
		return *errp
	}
	log.Sugar().Info("worker exited")
	return nil
}
