package bootstrap

import (
	"context"
	"time"

	"github.com/company-sys/backend/internal/auth"
	"github.com/company-sys/backend/internal/config"
	"github.com/company-sys/backend/internal/infra/blob"
	"github.com/company-sys/backend/internal/infra/cache"
	"github.com/company-sys/backend/internal/infra/db"
	"github.com/company-sys/backend/internal/infra/httpclient"
	"github.com/company-sys/backend/internal/infra/logger"
	"github.com/company-sys/backend/internal/infra/queue"
	"github.com/company-sys/backend/internal/modules/dispatch"
	"github.com/company-sys/backend/internal/modules/handler"
	"github.com/company-sys/backend/internal/modules/repo"
	"github.com/company-sys/backend/internal/modules/service"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	notificationPublisher = "publisher.notification"
	reminderPublisher     = "publisher.reminder"
)

func BuildContainer() *do.Injector {
	inj := do.New()

	// config
	do.Provide(inj, func(i *do.Injector) (*config.Config, error) {
		return config.Load()
	})

	// logger
	do.Provide(inj, func(i *do.Injector) (*zap.Logger, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return logger.New(cfg.Log.Level)
	})

	// DB
	do.Provide(inj, func(i *do.Injector) (*gorm.DB, error) {
		cfg := do.MustInvoke[*config.Config](i)
		d, err := db.New(cfg)
		if err != nil {
			return nil, err
		}
		// [optional] auto migrate
		if cfg.Database.AutoMigrate {
			if err := db.Migrate(d); err != nil {
				return nil, err
			}
		}
		return d, nil
	})

	// Redis
	do.Provide(inj, func(i *do.Injector) (*redis.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.New(cfg), nil
	})

	// RabbitMQ Connection
	do.Provide(inj, func(i *do.Injector) (*amqp.Connection, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return amqp.Dial(cfg.RabbitMQ.URL)
	})
	do.ProvideNamed(inj, notificationPublisher, func(i *do.Injector) (*queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return queue.NewPublisher(do.MustInvoke[*amqp.Connection](i), cfg.RabbitMQ.QueueName.Notification, do.MustInvoke[*zap.Logger](i))
	})
	do.ProvideNamed(inj, reminderPublisher, func(i *do.Injector) (*queue.Publisher, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return queue.NewPublisher(do.MustInvoke[*amqp.Connection](i), cfg.RabbitMQ.QueueName.Reminder, do.MustInvoke[*zap.Logger](i))
	})
	do.Provide(inj, func(i *do.Injector) (*dispatch.Producer, error) {
		return dispatch.NewProducer(
			do.MustInvokeNamed[*queue.Publisher](i, notificationPublisher),
			do.MustInvokeNamed[*queue.Publisher](i, reminderPublisher),
		), nil
	})

	// S3
	do.Provide(inj, func(i *do.Injector) (*blob.S3Deps, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return blob.NewS3(context.Background(), cfg)
	})
	// get presign expire duration
	do.Provide(inj, func(i *do.Injector) (func() time.Duration, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return func() time.Duration {
			if cfg.S3.PresignExpireSec <= 0 {
				return 15 * time.Minute
			}
			return time.Duration(cfg.S3.PresignExpireSec) * time.Second
		}, nil
	})

	// Auth
	do.Provide(inj, func(i *do.Injector) (*auth.Tokens, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	})
	do.Provide(inj, func(i *do.Injector) (*cache.PrincipalCache, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return cache.NewPrincipalCache(
			do.MustInvoke[*redis.Client](i),
			do.MustInvoke[repo.UserRepo](i),
			cfg.Auth.PrincipalCacheTTL,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Repo
	do.Provide(inj, func(i *do.Injector) (repo.UserRepo, error) {
		return repo.NewUserRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ProjectRepo, error) {
		return repo.NewProjectRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.TaskRepo, error) {
		return repo.NewTaskRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.AssetRepo, error) {
		return repo.NewAssetRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.CommentRepo, error) {
		return repo.NewCommentRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.NotificationRepo, error) {
		return repo.NewNotificationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (repo.ActivityLogRepo, error) {
		return repo.NewActivityLogRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// Service
	do.Provide(inj, func(i *do.Injector) (service.ProjectService, error) {
		return service.NewProjectService(
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*dispatch.Producer](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.TaskService, error) {
		return service.NewTaskService(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*dispatch.Producer](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.AssetService, error) {
		return service.NewAssetService(
			do.MustInvoke[repo.AssetRepo](i),
			do.MustInvoke[repo.ProjectRepo](i),
			do.MustInvoke[*blob.S3Deps](i),
			do.MustInvoke[func() time.Duration](i)(),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.CommentService, error) {
		return service.NewCommentService(do.MustInvoke[repo.CommentRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.NotificationService, error) {
		return service.NewNotificationService(do.MustInvoke[repo.NotificationRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.ActivityService, error) {
		return service.NewActivityService(do.MustInvoke[repo.ActivityLogRepo](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (service.UserService, error) {
		return service.NewUserService(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[*cache.PrincipalCache](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	// Handler
	do.Provide(inj, func(i *do.Injector) (*handler.ProjectHandler, error) {
		return handler.NewProjectHandler(
			do.MustInvoke[service.ProjectService](i),
			do.MustInvoke[service.AssetService](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.TaskHandler, error) {
		return handler.NewTaskHandler(do.MustInvoke[service.TaskService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.AssetHandler, error) {
		return handler.NewAssetHandler(do.MustInvoke[service.AssetService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.CommentHandler, error) {
		return handler.NewCommentHandler(do.MustInvoke[service.CommentService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.NotificationHandler, error) {
		return handler.NewNotificationHandler(do.MustInvoke[service.NotificationService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.ActivityHandler, error) {
		return handler.NewActivityHandler(do.MustInvoke[service.ActivityService](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*handler.UserHandler, error) {
		return handler.NewUserHandler(do.MustInvoke[service.UserService](i)), nil
	})

	// Dispatch (worker side)
	do.Provide(inj, func(i *do.Injector) (*httpclient.MailClient, error) {
		return httpclient.NewMailClient(do.MustInvoke[*config.Config](i), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*dispatch.Dispatcher, error) {
		return dispatch.NewDispatcher(
			do.MustInvoke[repo.UserRepo](i),
			do.MustInvoke[repo.NotificationRepo](i),
			do.MustInvoke[*httpclient.MailClient](i),
			do.MustInvoke[*zap.Logger](i),
		), nil
	})
	do.Provide(inj, func(i *do.Injector) (*dispatch.Worker, error) {
		return dispatch.NewWorker(do.MustInvoke[*dispatch.Dispatcher](i), do.MustInvoke[*zap.Logger](i)), nil
	})
	do.Provide(inj, func(i *do.Injector) (*dispatch.Sweeper, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return dispatch.NewSweeper(
			do.MustInvoke[repo.TaskRepo](i),
			do.MustInvoke[*dispatch.Producer](i),
			cache.NewReminderMarks(do.MustInvoke[*redis.Client](i), cfg.Dispatcher.ReminderLead+48*time.Hour),
			cfg.Dispatcher.ReminderInterval,
			cfg.Dispatcher.ReminderLead,
			do.MustInvoke[*zap.Logger](i),
		), nil
	})

	return inj
}
