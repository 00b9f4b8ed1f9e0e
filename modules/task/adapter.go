package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// Replies carry domain failures in their error envelope; the adapter turns
// them back into *ServiceError values so callers keep the full taxonomy
// (invalid-argument, not-found, conflict, unexpected) across the wire.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via
// SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a new task via the create service. On success it
// returns the created task and a location reference for re-fetching it.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, string, error) {
	var resp CreateTaskResponse
	if err := call(a, ctx, "create", req, &resp); err != nil {
		return nil, "", err
	}
	if resp.Error != nil {
		return nil, "", resp.Error
	}
	return resp.Task, resp.Location, nil
}

// GetTask retrieves a task by ID via the get service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID uint) (*TaskResponse, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp GetTaskResponse
	if err := call(a, ctx, "get", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Task, nil
}

// ListTasks lists tasks with optional filtering and sorting via the list
// service.
func (a *taskAdapter) ListTasks(ctx context.Context, query, sort string) ([]TaskResponse, error) {
	req := ListTasksRequest{Query: query, Sort: sort}
	var resp ListTasksResponse
	if err := call(a, ctx, "list", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Tasks, nil
}

// UpdateTask applies a partial update via the update service.
func (a *taskAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) error {
	var resp UpdateTaskResponse
	if err := call(a, ctx, "update", req, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// DeleteTask deletes a task via the delete service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID uint) error {
	req := DeleteTaskRequest{TaskID: taskID}
	var resp DeleteTaskResponse
	if err := call(a, ctx, "delete", &req, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error
	}
	return nil
}

// MarkComplete marks a task as done via the complete service.
func (a *taskAdapter) MarkComplete(ctx context.Context, taskID uint) (*TaskResponse, error) {
	req := CompleteTaskRequest{TaskID: taskID}
	var resp CompleteTaskResponse
	if err := call(a, ctx, "complete", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Task, nil
}

// MarkIncomplete moves a task back to in-progress via the incomplete service.
func (a *taskAdapter) MarkIncomplete(ctx context.Context, taskID uint) (*TaskResponse, error) {
	req := IncompleteTaskRequest{TaskID: taskID}
	var resp CompleteTaskResponse
	if err := call(a, ctx, "incomplete", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Task, nil
}

// ListByPriority lists tasks of one priority via the list-by-priority
// service.
func (a *taskAdapter) ListByPriority(ctx context.Context, priority string) ([]TaskResponse, error) {
	req := ListByPriorityRequest{Priority: priority}
	var resp ListTasksResponse
	if err := call(a, ctx, "list-by-priority", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}
	return resp.Tasks, nil
}

func call[T1 any, T2 any](a *taskAdapter, ctx context.Context, service string, req T1, resp *T2) error {
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}
