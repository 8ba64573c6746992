package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/yukikurage/team-collab-api/internal/auth"
	"github.com/yukikurage/team-collab-api/internal/constants"
	"github.com/yukikurage/team-collab-api/internal/handlers"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"github.com/yukikurage/team-collab-api/internal/middleware"
	"github.com/yukikurage/team-collab-api/internal/repository"
	"github.com/yukikurage/team-collab-api/internal/services"
	"gorm.io/gorm"
)

// Options configures the HTTP surface.
type Options struct {
	DB           *gorm.DB
	Tokens       *auth.TokenManager
	Logger       logging.Logger
	CORSOrigins  []string
	SecureCookie bool
}

// New wires repositories, services and handlers and returns the API with
// CORS applied.
func New(opts Options) http.Handler {
	userRepo := repository.NewUserRepository(opts.DB)
	taskRepo := repository.NewTaskRepository(opts.DB)
	commentRepo := repository.NewCommentRepository(opts.DB)
	activityRepo := repository.NewActivityRepository(opts.DB)
	notificationRepo := repository.NewNotificationRepository(opts.DB)

	notifier := services.NewNotifier(notificationRepo)
	authService := services.NewAuthService(userRepo)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, commentRepo, activityRepo, userRepo, notifier)
	notificationService := services.NewNotificationService(notificationRepo)

	authHandler := handlers.NewAuthHandler(authService, opts.Tokens, opts.Logger, opts.SecureCookie)
	userHandler := handlers.NewUserHandler(userService, opts.Logger)
	taskHandler := handlers.NewTaskHandler(taskService, opts.Logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, opts.Logger)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(opts.Logger))

	r.GET("/health", handlers.Health)

	requireAuth := middleware.RequireAuth(opts.Tokens)
	withID := middleware.RequireIDParam("id")

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
			authRoutes.POST("/logout", authHandler.Logout)
			authRoutes.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		users := api.Group("/users", requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.PUT("/me/profile", userHandler.UpdateMyProfile)
			users.GET("/:id/profile", withID, userHandler.GetProfile)
		}

		tasks := api.Group("/tasks", requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", withID, taskHandler.GetTask)
			tasks.PATCH("/:id", withID, taskHandler.UpdateTask)
			tasks.DELETE("/:id", withID, taskHandler.DeleteTask)
			tasks.PUT("/:id/assignees", withID, taskHandler.ReplaceAssignees)
			tasks.GET("/:id/comments", withID, taskHandler.ListComments)
			tasks.POST("/:id/comments", withID, taskHandler.AddComment)
			tasks.POST("/:id/result", withID, taskHandler.AddResult)
			tasks.GET("/:id/activities", withID, taskHandler.ListActivities)
		}

		notifications := api.Group("/notifications", requireAuth)
		{
			notifications.GET("", notificationHandler.ListNotifications)
			notifications.GET("/unread-count", notificationHandler.UnreadCount)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", withID, notificationHandler.MarkRead)
			notifications.DELETE("/:id", withID, notificationHandler.DeleteNotification)
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", constants.RequestIDHeader},
		ExposedHeaders:   []string{constants.RequestIDHeader},
		AllowCredentials: true,
	})
	return c.Handler(r)
}
