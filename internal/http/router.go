package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	useJSONFieldNames()

	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(RecoveryMiddleware())

	owners := cfg.Owners
	if owners == nil {
		owners = cfg.Users
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	usersController := NewUsersController(cfg.Users, cfg.AuditService)
	booksController := NewBooksController(cfg.Books, owners, cfg.AuditService)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// User endpoints
	users := router.Group("/users")
	users.GET("", usersController.ListUsers)
	users.POST("", usersController.CreateUser)
	users.GET("/:user_id", usersController.GetUser)
	users.PUT("/:user_id", usersController.UpdateUser)
	users.DELETE("/:user_id", usersController.DeleteUser)

	// Book endpoints. The static /books segments take precedence over the
	// :user_id and :book_id wildcards.
	users.GET("/books", booksController.ListBooks)
	users.GET("/:user_id/books", booksController.ListUserBooks)
	users.POST("/:user_id/books", booksController.CreateBook)
	users.GET("/:user_id/:book_id", booksController.GetBook)
	users.PUT("/:user_id/:book_id", booksController.UpdateBook)
	users.DELETE("/:user_id/:book_id", booksController.DeleteBook)

	if cfg.Audit != nil {
		auditController := NewAuditController(cfg.Audit)
		router.GET("/audit/events", auditController.RecentEvents)
		router.GET("/audit/events/:entity_type/:entity_id", auditController.EntityEvents)
	}

	if cfg.TaskClient != nil {
		tasksController := NewTasksController(cfg.TaskClient, cfg.AuditRetentionDays)
		router.GET("/tasks/:id", tasksController.GetTaskStatus)
		router.POST("/tasks/:type/run", tasksController.RunTask)
	}

	return router
}
