package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskboard/taskboard/internal/api/http/handlers"
)

// TaskRouteConfig bundles dependencies for the task service routes.
type TaskRouteConfig struct {
	Health *handlers.HealthHandler
	Tasks  *handlers.TasksHandler
}

// UserRouteConfig bundles dependencies for the user service routes.
type UserRouteConfig struct {
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
}

// RegisterTaskRoutes wires the task service HTTP routes.
func RegisterTaskRoutes(app *fiber.App, cfg TaskRouteConfig) {
	registerHealthRoutes(app, cfg.Health)

	tasks := app.Group("/tasks")
	tasks.Post("", cfg.Tasks.CreateTask)
	tasks.Get("", cfg.Tasks.ListTasks)
	tasks.Get("/:id", cfg.Tasks.GetTask)
	tasks.Put("/:id", cfg.Tasks.UpdateTask)
	tasks.Delete("/:id", cfg.Tasks.DeleteTask)
}

// RegisterUserRoutes wires the user service HTTP routes.
func RegisterUserRoutes(app *fiber.App, cfg UserRouteConfig) {
	registerHealthRoutes(app, cfg.Health)

	users := app.Group("/users")
	users.Post("", cfg.Users.CreateUser)
	users.Get("/:id", cfg.Users.GetUser)
	users.Put("/:id", cfg.Users.ReplaceUser)
	users.Delete("/:id", cfg.Users.DeleteUser)
	users.Get("/:id/tasks", cfg.Users.GetUserWithTasks)
}

func registerHealthRoutes(app *fiber.App, h *handlers.HealthHandler) {
	app.Get("/health", h.Health)
	app.Get("/health/live", h.Live)
	app.Get("/health/ready", h.Ready)
	app.Get("/metrics", h.Metrics)
}
