package task

import (
	"strings"
	"testing"
)

func TestValidateCreateAcceptsValidRequest(t *testing.T) {
	errs := validateCreate(&CreateTaskRequest{
		Title:       "Ship it",
		Description: "A perfectly fine description",
		Status:      "InProgress",
		Priority:    "High",
	})
	if len(errs) != 0 {
		t.Errorf("unexpected validation errors: %v", errs)
	}
}

func TestValidateCreateBoundaryLengths(t *testing.T) {
	errs := validateCreate(&CreateTaskRequest{
		Title:       strings.Repeat("t", 200),
		Description: strings.Repeat("d", 1000),
		Status:      "New",
		Priority:    "Low",
	})
	if len(errs) != 0 {
		t.Errorf("boundary-length fields rejected: %v", errs)
	}

	errs = validateCreate(&CreateTaskRequest{
		Title:       strings.Repeat("t", 201),
		Description: strings.Repeat("d", 1001),
		Status:      "New",
		Priority:    "Low",
	})
	if len(errs["title"]) == 0 || len(errs["description"]) == 0 {
		t.Errorf("over-length fields not rejected: %v", errs)
	}
}

func TestValidateUpdateSkipsAbsentFields(t *testing.T) {
	errs := validateUpdate(&UpdateTaskRequest{TaskID: 1})
	if len(errs) != 0 {
		t.Errorf("empty partial update rejected: %v", errs)
	}
}

func TestValidateUpdateChecksPresentFields(t *testing.T) {
	empty := ""
	status := "Blocked"
	errs := validateUpdate(&UpdateTaskRequest{
		TaskID: 1,
		Title:  &empty,
		Status: &status,
	})
	if len(errs["title"]) == 0 {
		t.Errorf("empty title not rejected: %v", errs)
	}
	if len(errs["status"]) == 0 {
		t.Errorf("unknown status not rejected: %v", errs)
	}
}
