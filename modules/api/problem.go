package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RFC 7231 section references used as problem types, matching what API
// clients already key on.
const (
	typeBadRequest = "https://tools.ietf.org/html/rfc7231#section-6.5.1"
	typeNotFound   = "https://tools.ietf.org/html/rfc7231#section-6.5.4"
	typeConflict   = "https://tools.ietf.org/html/rfc7231#section-6.5.8"
	typeInternal   = "https://tools.ietf.org/html/rfc7231#section-6.6.1"
)

// ProblemDetails is the error body rendered for every failure response.
// Errors is present only for field-validation failures and maps field name
// to its list of messages.
type ProblemDetails struct {
	Type      string              `json:"type"`
	Title     string              `json:"title"`
	Status    int                 `json:"status"`
	Detail    string              `json:"detail,omitempty"`
	Instance  string              `json:"instance,omitempty"`
	RequestID string              `json:"requestId,omitempty"`
	Timestamp time.Time           `json:"timestamp"`
	Errors    map[string][]string `json:"errors,omitempty"`
}

func problemType(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return typeBadRequest
	case fiber.StatusNotFound:
		return typeNotFound
	case fiber.StatusConflict:
		return typeConflict
	}
	return typeInternal
}

// newProblem builds a problem body bound to the current request.
func newProblem(c *fiber.Ctx, status int, title, detail string) ProblemDetails {
	requestID, _ := c.Locals(requestIDKey).(string)
	return ProblemDetails{
		Type:      problemType(status),
		Title:     title,
		Status:    status,
		Detail:    detail,
		Instance:  c.Path(),
		RequestID: requestID,
		Timestamp: time.Now().UTC(),
	}
}

// writeProblem renders a problem body with the matching HTTP status.
func writeProblem(c *fiber.Ctx, status int, title, detail string) error {
	return c.Status(status).JSON(newProblem(c, status, title, detail))
}

// writeValidationProblem renders a 400 problem enumerating every invalid
// field.
func writeValidationProblem(c *fiber.Ctx, fields map[string][]string) error {
	problem := newProblem(c, fiber.StatusBadRequest,
		"Validation Error", "One or more validation errors occurred")
	problem.Errors = fields
	return c.Status(fiber.StatusBadRequest).JSON(problem)
}
