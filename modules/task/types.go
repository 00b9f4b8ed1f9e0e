package task

import (
	"context"
	"time"
)

// CreateTaskRequest is the request for creating a task. Title, status and
// priority are required; description and due date are optional.
type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// UpdateTaskRequest is the request for updating a task. Every field is a
// pointer: nil means "leave the stored value unchanged" (merge semantics).
type UpdateTaskRequest struct {
	TaskID      uint       `json:"task_id"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
}

// GetTaskRequest is the request for fetching a single task.
type GetTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// CompleteTaskRequest is the request for marking a task complete.
type CompleteTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// IncompleteTaskRequest is the request for marking a task incomplete.
type IncompleteTaskRequest struct {
	TaskID uint `json:"task_id"`
}

// ListTasksRequest is the request for listing tasks with optional filtering
// and sorting. Sort has the shape "<field>[:<direction>]".
type ListTasksRequest struct {
	Query string `json:"q,omitempty"`
	Sort  string `json:"sort,omitempty"`
}

// ListByPriorityRequest is the request for listing tasks of one priority.
type ListByPriorityRequest struct {
	Priority string `json:"priority"`
}

// TaskResponse is the boundary view of a task, including the derived
// completion flag.
type TaskResponse struct {
	ID          uint       `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	IsCompleted bool       `json:"isCompleted"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// CreateTaskResponse is the reply for the create service. Location is a
// reference usable to re-fetch the created task.
type CreateTaskResponse struct {
	Task     *TaskResponse `json:"task,omitempty"`
	Location string        `json:"location,omitempty"`
	Error    *ServiceError `json:"error,omitempty"`
}

// GetTaskResponse is the reply for the get service.
type GetTaskResponse struct {
	Task  *TaskResponse `json:"task,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// ListTasksResponse is the reply for the list and list-by-priority services.
type ListTasksResponse struct {
	Tasks []TaskResponse `json:"tasks"`
	Total int            `json:"total"`
	Error *ServiceError  `json:"error,omitempty"`
}

// UpdateTaskResponse is the reply for the update service. A successful
// update carries no body.
type UpdateTaskResponse struct {
	Error *ServiceError `json:"error,omitempty"`
}

// DeleteTaskResponse is the reply for the delete service.
type DeleteTaskResponse struct {
	Deleted bool          `json:"deleted"`
	Error   *ServiceError `json:"error,omitempty"`
}

// CompleteTaskResponse is the reply for the complete and incomplete services.
type CompleteTaskResponse struct {
	Task  *TaskResponse `json:"task,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters (like the HTTP API) use this contract to reach the core
// domain. Failures are *ServiceError values.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*TaskResponse, string, error)
	GetTask(ctx context.Context, taskID uint) (*TaskResponse, error)
	ListTasks(ctx context.Context, query, sort string) ([]TaskResponse, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) error
	DeleteTask(ctx context.Context, taskID uint) error
	MarkComplete(ctx context.Context, taskID uint) (*TaskResponse, error)
	MarkIncomplete(ctx context.Context, taskID uint) (*TaskResponse, error)
	ListByPriority(ctx context.Context, priority string) ([]TaskResponse, error)
}
