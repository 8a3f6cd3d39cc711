package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/taskboard/taskboard/internal/api/dto"
	"github.com/taskboard/taskboard/internal/service"
)

// UsersHandler exposes the user service endpoints.
type UsersHandler struct {
	service *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{service: userService}
}

// CreateUser POST /users.
func (h *UsersHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.service.CreateUser(c.UserContext(), req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// GetUser GET /users/:id.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// ReplaceUser PUT /users/:id.
func (h *UsersHandler) ReplaceUser(c *fiber.Ctx) error {
	var req dto.ReplaceUserRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	user, err := h.service.ReplaceUser(c.UserContext(), c.Params("id"), req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// DeleteUser DELETE /users/:id.
func (h *UsersHandler) DeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// GetUserWithTasks GET /users/:id/tasks.
func (h *UsersHandler) GetUserWithTasks(c *fiber.Ctx) error {
	view, err := h.service.GetUserWithTasks(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.UserWithTasksResponse{
		User:  dto.NewUserResponse(view.User),
		Tasks: dto.NewTaskResponses(view.Tasks),
	})
}
