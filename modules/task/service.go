package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	domain "github.com/example/task-tracker/domain/task"
	"github.com/example/task-tracker/events"
	"github.com/go-monolith/mono"
)

// createTask handles the task.create service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (CreateTaskResponse, error) {
	if errs := validateCreate(&req); len(errs) > 0 {
		return CreateTaskResponse{Error: validationFailed(errs)}, nil
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.Status(req.Status),
		Priority:    domain.Priority(req.Priority),
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC(),
	}

	if err := m.store.Create(task); err != nil {
		log.Printf("[task] create: %v", err)
		return CreateTaskResponse{Error: unexpected()}, nil
	}

	if m.eventBus != nil {
		event := events.TaskCreatedEvent{
			TaskID:    task.ID,
			Title:     task.Title,
			Priority:  string(task.Priority),
			CreatedAt: task.CreatedAt,
		}
		if err := events.TaskCreatedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCreated event for task %d: %v", task.ID, err)
		}
	}

	return CreateTaskResponse{
		Task:     toTaskResponse(task),
		Location: fmt.Sprintf("/api/tasks/%d", task.ID),
	}, nil
}

// getTask handles the task.get service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (GetTaskResponse, error) {
	task, serr := m.findTask("get", req.TaskID)
	if serr != nil {
		return GetTaskResponse{Error: serr}, nil
	}
	return GetTaskResponse{Task: toTaskResponse(task)}, nil
}

// listTasks handles the task.list service request. The query filters on
// title and description; the sort expression is resolved against the
// comparator whitelist before the store is touched.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	spec, serr := parseSort(req.Sort)
	if serr != nil {
		return ListTasksResponse{Error: serr}, nil
	}

	tasks, err := m.store.Search(strings.TrimSpace(req.Query))
	if err != nil {
		log.Printf("[task] list: %v", err)
		return ListTasksResponse{Error: unexpected()}, nil
	}

	sortTasks(tasks, spec)

	return ListTasksResponse{Tasks: toTaskResponses(tasks), Total: len(tasks)}, nil
}

// listByPriority handles the task.list-by-priority service request.
func (m *TaskModule) listByPriority(_ context.Context, req ListByPriorityRequest, _ *mono.Msg) (ListTasksResponse, error) {
	priority := domain.Priority(req.Priority)
	if !priority.Valid() {
		return ListTasksResponse{Error: invalidArgument(msgPriorityInvalid)}, nil
	}

	tasks, err := m.store.FindByPriority(priority)
	if err != nil {
		log.Printf("[task] list-by-priority: %v", err)
		return ListTasksResponse{Error: unexpected()}, nil
	}

	return ListTasksResponse{Tasks: toTaskResponses(tasks), Total: len(tasks)}, nil
}

// updateTask handles the task.update service request. Only fields present
// in the request are validated and copied onto the stored entity; the write
// is conditioned on the version read.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (UpdateTaskResponse, error) {
	if errs := validateUpdate(&req); len(errs) > 0 {
		return UpdateTaskResponse{Error: validationFailed(errs)}, nil
	}

	task, serr := m.findTask("update", req.TaskID)
	if serr != nil {
		return UpdateTaskResponse{Error: serr}, nil
	}

	readVersion := task.Version
	mergeUpdate(task, &req)
	now := time.Now().UTC()
	task.UpdatedAt = &now

	if serr := m.writeConditional("update", task, readVersion); serr != nil {
		return UpdateTaskResponse{Error: serr}, nil
	}

	return UpdateTaskResponse{}, nil
}

// deleteTask handles the task.delete service request.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	task, serr := m.findTask("delete", req.TaskID)
	if serr != nil {
		return DeleteTaskResponse{Error: serr}, nil
	}

	if err := m.store.Delete(req.TaskID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return DeleteTaskResponse{Error: notFound(req.TaskID)}, nil
		}
		log.Printf("[task] delete: task %d: %v", req.TaskID, err)
		return DeleteTaskResponse{Error: unexpected()}, nil
	}

	if m.eventBus != nil {
		event := events.TaskDeletedEvent{
			TaskID:    task.ID,
			Title:     task.Title,
			DeletedAt: time.Now().UTC(),
		}
		if err := events.TaskDeletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskDeleted event for task %d: %v", task.ID, err)
		}
	}

	return DeleteTaskResponse{Deleted: true}, nil
}

// completeTask handles the task.complete service request.
func (m *TaskModule) completeTask(_ context.Context, req CompleteTaskRequest, _ *mono.Msg) (CompleteTaskResponse, error) {
	task, serr := m.setStatus("complete", req.TaskID, domain.StatusDone)
	if serr != nil {
		return CompleteTaskResponse{Error: serr}, nil
	}

	if m.eventBus != nil {
		event := events.TaskCompletedEvent{
			TaskID:      task.ID,
			Title:       task.Title,
			CompletedAt: *task.UpdatedAt,
		}
		if err := events.TaskCompletedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskCompleted event for task %d: %v", task.ID, err)
		}
	}

	return CompleteTaskResponse{Task: toTaskResponse(task)}, nil
}

// incompleteTask handles the task.incomplete service request. Marking a
// task incomplete moves it back to InProgress.
func (m *TaskModule) incompleteTask(_ context.Context, req IncompleteTaskRequest, _ *mono.Msg) (CompleteTaskResponse, error) {
	task, serr := m.setStatus("incomplete", req.TaskID, domain.StatusInProgress)
	if serr != nil {
		return CompleteTaskResponse{Error: serr}, nil
	}

	if m.eventBus != nil {
		event := events.TaskReopenedEvent{
			TaskID:     task.ID,
			Title:      task.Title,
			ReopenedAt: *task.UpdatedAt,
		}
		if err := events.TaskReopenedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[task] Warning: failed to publish TaskReopened event for task %d: %v", task.ID, err)
		}
	}

	return CompleteTaskResponse{Task: toTaskResponse(task)}, nil
}

// findTask reads a task, translating repository failures.
func (m *TaskModule) findTask(op string, id uint) (*domain.Task, *ServiceError) {
	task, err := m.store.FindByID(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, notFound(id)
		}
		log.Printf("[task] %s: task %d: %v", op, id, err)
		return nil, unexpected()
	}
	return task, nil
}

// setStatus forces a task into the given status with a conditional write.
func (m *TaskModule) setStatus(op string, id uint, status domain.Status) (*domain.Task, *ServiceError) {
	task, serr := m.findTask(op, id)
	if serr != nil {
		return nil, serr
	}

	readVersion := task.Version
	task.Status = status
	now := time.Now().UTC()
	task.UpdatedAt = &now

	if serr := m.writeConditional(op, task, readVersion); serr != nil {
		return nil, serr
	}
	return task, nil
}

// writeConditional performs the optimistic-concurrency write. When the store
// reports a conflict, existence is rechecked once: a record deleted in the
// meantime yields not-found, a modified one yields conflict. The conflict is
// surfaced to the caller; there is no internal retry.
func (m *TaskModule) writeConditional(op string, task *domain.Task, expectedVersion int64) *ServiceError {
	err := m.store.UpdateConditional(task, expectedVersion)
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrConflict) {
		exists, checkErr := m.store.Exists(task.ID)
		if checkErr != nil {
			log.Printf("[task] %s: task %d: %v", op, task.ID, checkErr)
			return unexpected()
		}
		if !exists {
			return notFound(task.ID)
		}
		log.Printf("[task] %s: task %d: write conflict", op, task.ID)
		return conflict(task.ID)
	}

	log.Printf("[task] %s: task %d: %v", op, task.ID, err)
	return unexpected()
}

// mergeUpdate copies every field present in the request onto the entity.
// Absent (nil) fields keep their stored value.
func mergeUpdate(task *domain.Task, req *UpdateTaskRequest) {
	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = domain.Status(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = domain.Priority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
}

// toTaskResponse converts a domain Task to its boundary view.
func toTaskResponse(task *domain.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		IsCompleted: task.IsCompleted(),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func toTaskResponses(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, *toTaskResponse(t))
	}
	return out
}
