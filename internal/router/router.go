package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/daydone/backend/api/handler"
)

type Handlers struct {
	Auth     *apiHandler.AuthHandler
	Todo     *apiHandler.TodoHandler
	Report   *apiHandler.ReportHandler
	Settings *apiHandler.SettingsHandler
	Health   *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/token", handlers.Auth.IssueToken)

	// Protected routes
	r.GET("/api/v1/todos", authMiddleware(handlers.Todo.GetTodos))
	r.POST("/api/v1/todos", authMiddleware(handlers.Todo.CreateTodo))
	r.GET("/api/v1/todos/export", authMiddleware(handlers.Todo.ExportTodos))
	r.POST("/api/v1/todos/import", authMiddleware(handlers.Todo.ImportTodos))
	r.DELETE("/api/v1/todos/edit", authMiddleware(handlers.Todo.CancelEdit))
	r.PUT("/api/v1/todos/{id}", authMiddleware(handlers.Todo.UpdateTodo))
	r.DELETE("/api/v1/todos/{id}", authMiddleware(handlers.Todo.DeleteTodo))
	r.POST("/api/v1/todos/{id}/toggle", authMiddleware(handlers.Todo.ToggleTodo))
	r.POST("/api/v1/todos/{id}/edit", authMiddleware(handlers.Todo.BeginEdit))
	r.POST("/api/v1/todos/{id}/subtasks/{subtaskId}/toggle", authMiddleware(handlers.Todo.ToggleSubtask))

	r.GET("/api/v1/report", authMiddleware(handlers.Report.GetReport))
	r.GET("/api/v1/report/export", authMiddleware(handlers.Report.ExportReport))
	r.GET("/api/v1/report/pdf", authMiddleware(handlers.Report.ExportPDF))

	r.GET("/api/v1/settings", authMiddleware(handlers.Settings.GetSettings))
	r.PUT("/api/v1/settings/theme", authMiddleware(handlers.Settings.SetTheme))
	r.PUT("/api/v1/settings/notifications", authMiddleware(handlers.Settings.SetNotifications))
	r.PUT("/api/v1/settings/permission", authMiddleware(handlers.Settings.SetPermission))

	return r
}
