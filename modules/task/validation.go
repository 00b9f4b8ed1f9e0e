package task

import (
	"strings"
	"unicode/utf8"

	domain "github.com/example/task-tracker/domain/task"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 1000
)

// Validation messages mirror the field annotations of the public API docs.
const (
	msgTitleRequired    = "Title is required"
	msgTitleLength      = "Title must be between 1 and 200 characters"
	msgDescriptionLong  = "Description cannot exceed 1000 characters"
	msgStatusRequired   = "Status is required"
	msgStatusInvalid    = "Status must be one of: New, InProgress, Done"
	msgPriorityRequired = "Priority is required"
	msgPriorityInvalid  = "Priority must be one of: Low, Medium, High"
)

// fieldErrors accumulates validation failures per field so that every
// invalid field is reported, not just the first.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, message string) {
	f[field] = append(f[field], message)
}

func validateTitle(title string, errs fieldErrors) {
	if strings.TrimSpace(title) == "" {
		errs.add("title", msgTitleRequired)
		return
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		errs.add("title", msgTitleLength)
	}
}

func validateDescription(description string, errs fieldErrors) {
	if utf8.RuneCountInString(description) > maxDescriptionLength {
		errs.add("description", msgDescriptionLong)
	}
}

// validateCreate checks every field of a create request.
func validateCreate(req *CreateTaskRequest) fieldErrors {
	errs := make(fieldErrors)

	validateTitle(req.Title, errs)
	validateDescription(req.Description, errs)

	if req.Status == "" {
		errs.add("status", msgStatusRequired)
	} else if !domain.Status(req.Status).Valid() {
		errs.add("status", msgStatusInvalid)
	}

	if req.Priority == "" {
		errs.add("priority", msgPriorityRequired)
	} else if !domain.Priority(req.Priority).Valid() {
		errs.add("priority", msgPriorityInvalid)
	}

	return errs
}

// validateUpdate checks only the fields present in a partial update request.
func validateUpdate(req *UpdateTaskRequest) fieldErrors {
	errs := make(fieldErrors)

	if req.Title != nil {
		validateTitle(*req.Title, errs)
	}
	if req.Description != nil {
		validateDescription(*req.Description, errs)
	}
	if req.Status != nil && !domain.Status(*req.Status).Valid() {
		errs.add("status", msgStatusInvalid)
	}
	if req.Priority != nil && !domain.Priority(*req.Priority).Valid() {
		errs.add("priority", msgPriorityInvalid)
	}

	return errs
}
