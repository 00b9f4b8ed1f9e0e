package api

import (
	"errors"
	"log"

	"github.com/example/task-tracker/modules/task"
	"github.com/gofiber/fiber/v2"
)

// Handlers holds the HTTP handlers for the task REST surface.
type Handlers struct {
	port task.TaskPort
}

// NewHandlers creates the handler set over the given task port.
func NewHandlers(port task.TaskPort) *Handlers {
	return &Handlers{port: port}
}

// RegisterRoutes wires all task routes onto the app.
func (h *Handlers) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.health)

	tasks := app.Group("/api/tasks")
	tasks.Get("/", h.listTasks)
	tasks.Post("/", h.createTask)
	tasks.Get("/priority/:priority", h.listByPriority)
	tasks.Get("/:id", h.getTask)
	tasks.Put("/:id", h.updateTask)
	tasks.Delete("/:id", h.deleteTask)
	tasks.Patch("/:id/complete", h.markComplete)
	tasks.Patch("/:id/incomplete", h.markIncomplete)
}

// health handles GET /health.
func (h *Handlers) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"module": "api",
	})
}

// listTasks handles GET /api/tasks with optional q and sort parameters.
func (h *Handlers) listTasks(c *fiber.Ctx) error {
	tasks, err := h.port.ListTasks(c.UserContext(), c.Query("q"), c.Query("sort"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(tasks)
}

// getTask handles GET /api/tasks/:id.
func (h *Handlers) getTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidIDProblem(c)
	}

	resp, err := h.port.GetTask(c.UserContext(), id)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(resp)
}

// createTask handles POST /api/tasks.
func (h *Handlers) createTask(c *fiber.Ctx) error {
	var req task.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return writeProblem(c, fiber.StatusBadRequest,
			"Invalid request body", "Request body must be valid JSON")
	}

	resp, location, err := h.port.CreateTask(c.UserContext(), &req)
	if err != nil {
		return h.renderError(c, err)
	}

	c.Set(fiber.HeaderLocation, location)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// updateTask handles PUT /api/tasks/:id. The body carries partial-update
// semantics: absent fields keep their stored value.
func (h *Handlers) updateTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidIDProblem(c)
	}

	var req task.UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return writeProblem(c, fiber.StatusBadRequest,
			"Invalid request body", "Request body must be valid JSON")
	}
	req.TaskID = id

	if err := h.port.UpdateTask(c.UserContext(), &req); err != nil {
		return h.renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// deleteTask handles DELETE /api/tasks/:id.
func (h *Handlers) deleteTask(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidIDProblem(c)
	}

	if err := h.port.DeleteTask(c.UserContext(), id); err != nil {
		return h.renderError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// markComplete handles PATCH /api/tasks/:id/complete.
func (h *Handlers) markComplete(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidIDProblem(c)
	}

	resp, err := h.port.MarkComplete(c.UserContext(), id)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(resp)
}

// markIncomplete handles PATCH /api/tasks/:id/incomplete.
func (h *Handlers) markIncomplete(c *fiber.Ctx) error {
	id, ok := parseTaskID(c)
	if !ok {
		return invalidIDProblem(c)
	}

	resp, err := h.port.MarkIncomplete(c.UserContext(), id)
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(resp)
}

// listByPriority handles GET /api/tasks/priority/:priority.
func (h *Handlers) listByPriority(c *fiber.Ctx) error {
	tasks, err := h.port.ListByPriority(c.UserContext(), c.Params("priority"))
	if err != nil {
		return h.renderError(c, err)
	}
	return c.JSON(tasks)
}

// renderError maps a port failure to its problem response. Unclassified
// errors render as a generic 500 problem, never a stack trace.
func (h *Handlers) renderError(c *fiber.Ctx, err error) error {
	var serr *task.ServiceError
	if errors.As(err, &serr) {
		switch serr.Kind {
		case task.KindInvalidArgument:
			if len(serr.Fields) > 0 {
				return writeValidationProblem(c, serr.Fields)
			}
			return writeProblem(c, fiber.StatusBadRequest, "Invalid request", serr.Detail)
		case task.KindNotFound:
			return writeProblem(c, fiber.StatusNotFound, "Task not found", serr.Detail)
		case task.KindConflict:
			return writeProblem(c, fiber.StatusConflict, "Conflict", serr.Detail)
		}
	}

	log.Printf("[api] %s %s: %v", c.Method(), c.Path(), err)
	return writeProblem(c, fiber.StatusInternalServerError,
		"Internal Server Error", "An unexpected error occurred while processing the request")
}

func parseTaskID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func invalidIDProblem(c *fiber.Ctx) error {
	return writeProblem(c, fiber.StatusBadRequest,
		"Invalid task id", "Task ID must be a positive integer")
}
