package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/company-sys/backend/docs"
	"github.com/company-sys/backend/internal/config"
	"github.com/company-sys/backend/internal/middleware"
	"github.com/company-sys/backend/internal/modules/handler"
	"github.com/company-sys/backend/internal/modules/serializer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	Config              *config.Config
	Log                 *zap.Logger
	Tokens              middleware.TokenVerifier
	Principals          middleware.PrincipalLoader
	ProjectHandler      *handler.ProjectHandler
	TaskHandler         *handler.TaskHandler
	AssetHandler        *handler.AssetHandler
	CommentHandler      *handler.CommentHandler
	NotificationHandler *handler.NotificationHandler
	ActivityHandler     *handler.ActivityHandler
	UserHandler         *handler.UserHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name))
		r.Use(middleware.TraceID())
	}

	r.Use(middleware.ZapLogger(d.Log))

	// health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "ok"}) })

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.PrincipalAuth(d.Tokens, d.Principals))

		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		projects := v1.Group("/projects")
		{
			projects.GET("", d.ProjectHandler.ListProjects)
			projects.POST("", d.ProjectHandler.CreateProject)
			projects.GET("/:id", d.ProjectHandler.GetProject)
			projects.PATCH("/:id", d.ProjectHandler.UpdateProject)
			projects.DELETE("/:id", d.ProjectHandler.DeleteProject)
		}

		tasks := v1.Group("/tasks")
		{
			tasks.GET("", d.TaskHandler.ListTasks)
			tasks.POST("", d.TaskHandler.CreateTask)
			tasks.GET("/:id", d.TaskHandler.GetTask)
			tasks.PATCH("/:id", d.TaskHandler.UpdateTask)
			tasks.DELETE("/:id", d.TaskHandler.DeleteTask)
		}

		assets := v1.Group("/assets")
		{
			assets.GET("", d.AssetHandler.ListAssets)
			assets.POST("", d.AssetHandler.CreateAsset)
			assets.GET("/:id", d.AssetHandler.GetAsset)
			assets.PATCH("/:id", d.AssetHandler.UpdateAsset)
			assets.DELETE("/:id", d.AssetHandler.DeleteAsset)
		}

		comments := v1.Group("/comments")
		{
			comments.GET("", d.CommentHandler.ListComments)
			comments.POST("", d.CommentHandler.CreateComment)
			comments.GET("/:id", d.CommentHandler.GetComment)
			comments.DELETE("/:id", d.CommentHandler.DeleteComment)
		}

		notifications := v1.Group("/notifications")
		{
			notifications.GET("", d.NotificationHandler.ListNotifications)
			notifications.POST("/mark_all_read", d.NotificationHandler.MarkAllRead)
			notifications.GET("/:id", d.NotificationHandler.GetNotification)
			notifications.POST("/:id/mark_read", d.NotificationHandler.MarkRead)
			notifications.DELETE("/:id", d.NotificationHandler.DeleteNotification)
		}

		v1.GET("/activity-log", d.ActivityHandler.ListActivity)

		users := v1.Group("/users")
		{
			users.GET("", d.UserHandler.ListUsers)
			users.POST("", d.UserHandler.CreateUser)
			users.GET("/me", d.UserHandler.Me)
			users.GET("/:id", d.UserHandler.GetUser)
			users.PATCH("/:id", d.UserHandler.UpdateUser)
			users.DELETE("/:id", d.UserHandler.DeleteUser)
		}
	}
	return r
}
