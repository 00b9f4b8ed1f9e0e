package task

import (
	"context"
	"strings"
	"testing"
	"time"

	domain "github.com/example/task-tracker/domain/task"
)

// newTestModule creates a TaskModule over an in-memory store, without the
// NATS plumbing; handlers are exercised directly.
func newTestModule(t *testing.T) *TaskModule {
	t.Helper()
	return &TaskModule{store: NewRepository(setupTestDB(t))}
}

func mustCreate(t *testing.T, m *TaskModule, req CreateTaskRequest) *TaskResponse {
	t.Helper()
	resp, err := m.createTask(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("createTask returned error: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("createTask failed: %v", resp.Error)
	}
	return resp.Task
}

func validCreateRequest(title string) CreateTaskRequest {
	return CreateTaskRequest{
		Title:    title,
		Status:   "New",
		Priority: "Medium",
	}
}

func TestCreateTask(t *testing.T) {
	m := newTestModule(t)

	due := time.Now().UTC().AddDate(0, 0, 14)
	resp, err := m.createTask(context.Background(), CreateTaskRequest{
		Title:    "New Test Task",
		Status:   "New",
		Priority: "Medium",
		DueDate:  &due,
	}, nil)
	if err != nil {
		t.Fatalf("createTask returned error: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("createTask failed: %v", resp.Error)
	}

	if resp.Task.ID == 0 {
		t.Error("expected a newly assigned id")
	}
	if resp.Task.Status != "New" {
		t.Errorf("Status = %q, want New", resp.Task.Status)
	}
	if resp.Task.IsCompleted {
		t.Error("IsCompleted = true for a New task")
	}
	if resp.Task.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if want := "/api/tasks/"; !strings.HasPrefix(resp.Location, want) {
		t.Errorf("Location = %q, want prefix %q", resp.Location, want)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	m := newTestModule(t)

	tests := []struct {
		name      string
		req       CreateTaskRequest
		wantField string
	}{
		{
			name:      "empty title",
			req:       CreateTaskRequest{Title: "", Status: "New", Priority: "Medium"},
			wantField: "title",
		},
		{
			name:      "whitespace title",
			req:       CreateTaskRequest{Title: "   ", Status: "New", Priority: "Medium"},
			wantField: "title",
		},
		{
			name:      "title too long",
			req:       CreateTaskRequest{Title: strings.Repeat("x", 201), Status: "New", Priority: "Medium"},
			wantField: "title",
		},
		{
			name: "description too long",
			req: CreateTaskRequest{
				Title: "ok", Description: strings.Repeat("d", 1001),
				Status: "New", Priority: "Medium",
			},
			wantField: "description",
		},
		{
			name:      "unknown status",
			req:       CreateTaskRequest{Title: "ok", Status: "Paused", Priority: "Medium"},
			wantField: "status",
		},
		{
			name:      "unknown priority",
			req:       CreateTaskRequest{Title: "ok", Status: "New", Priority: "Urgent"},
			wantField: "priority",
		},
		{
			name:      "missing status",
			req:       CreateTaskRequest{Title: "ok", Priority: "Medium"},
			wantField: "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := m.createTask(context.Background(), tt.req, nil)
			if err != nil {
				t.Fatalf("createTask returned error: %v", err)
			}
			if resp.Error == nil {
				t.Fatal("expected a validation failure")
			}
			if resp.Error.Kind != KindInvalidArgument {
				t.Errorf("Kind = %q, want %q", resp.Error.Kind, KindInvalidArgument)
			}
			if len(resp.Error.Fields[tt.wantField]) == 0 {
				t.Errorf("no error reported for field %q: %v", tt.wantField, resp.Error.Fields)
			}
		})
	}
}

func TestCreateTaskReportsAllInvalidFields(t *testing.T) {
	m := newTestModule(t)

	resp, err := m.createTask(context.Background(), CreateTaskRequest{
		Title:       "",
		Description: strings.Repeat("d", 1001),
		Status:      "New",
		Priority:    "Medium",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil {
		t.Fatal("expected a validation failure")
	}
	for _, field := range []string{"title", "description"} {
		if len(resp.Error.Fields[field]) == 0 {
			t.Errorf("field %q not reported: %v", field, resp.Error.Fields)
		}
	}
}

func TestGetTaskNotFound(t *testing.T) {
	m := newTestModule(t)

	resp, err := m.getTask(context.Background(), GetTaskRequest{TaskID: 123}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Kind != KindNotFound {
		t.Errorf("Error = %v, want kind %q", resp.Error, KindNotFound)
	}
}

func TestCompleteThenGetScenario(t *testing.T) {
	m := newTestModule(t)

	created := mustCreate(t, m, validCreateRequest("New Test Task"))

	completed, err := m.completeTask(context.Background(), CompleteTaskRequest{TaskID: created.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if completed.Error != nil {
		t.Fatalf("completeTask failed: %v", completed.Error)
	}
	if completed.Task.Status != "Done" || !completed.Task.IsCompleted {
		t.Errorf("after complete: status=%q isCompleted=%v, want Done/true",
			completed.Task.Status, completed.Task.IsCompleted)
	}

	got, err := m.getTask(context.Background(), GetTaskRequest{TaskID: created.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Task.Status != "Done" || !got.Task.IsCompleted {
		t.Errorf("after re-fetch: status=%q isCompleted=%v, want Done/true",
			got.Task.Status, got.Task.IsCompleted)
	}
	if got.Task.UpdatedAt == nil {
		t.Error("UpdatedAt not set by complete")
	}
}

func TestIncompleteMovesTaskToInProgress(t *testing.T) {
	m := newTestModule(t)

	created := mustCreate(t, m, validCreateRequest("toggle me"))

	if _, err := m.completeTask(context.Background(), CompleteTaskRequest{TaskID: created.ID}, nil); err != nil {
		t.Fatal(err)
	}

	resp, err := m.incompleteTask(context.Background(), IncompleteTaskRequest{TaskID: created.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("incompleteTask failed: %v", resp.Error)
	}
	if resp.Task.Status != "InProgress" || resp.Task.IsCompleted {
		t.Errorf("status=%q isCompleted=%v, want InProgress/false", resp.Task.Status, resp.Task.IsCompleted)
	}
}

func TestUpdateTaskMergesPresentFieldsOnly(t *testing.T) {
	m := newTestModule(t)

	due := time.Now().UTC().AddDate(0, 0, 3)
	created := mustCreate(t, m, CreateTaskRequest{
		Title:       "keep title",
		Description: "keep description",
		Status:      "New",
		Priority:    "Medium",
		DueDate:     &due,
	})

	priority := "High"
	resp, err := m.updateTask(context.Background(), UpdateTaskRequest{
		TaskID:   created.ID,
		Priority: &priority,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("updateTask failed: %v", resp.Error)
	}

	got, err := m.getTask(context.Background(), GetTaskRequest{TaskID: created.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Task.Title != "keep title" {
		t.Errorf("Title = %q, want unchanged", got.Task.Title)
	}
	if got.Task.Description != "keep description" {
		t.Errorf("Description = %q, want unchanged", got.Task.Description)
	}
	if got.Task.Priority != "High" {
		t.Errorf("Priority = %q, want High", got.Task.Priority)
	}
	if got.Task.DueDate == nil {
		t.Error("DueDate cleared by partial update")
	}
}

func TestUpdateTaskEmptyBodyOnlyTouchesUpdatedAt(t *testing.T) {
	m := newTestModule(t)

	created := mustCreate(t, m, CreateTaskRequest{
		Title:       "untouched",
		Description: "still here",
		Status:      "InProgress",
		Priority:    "Low",
	})

	resp, err := m.updateTask(context.Background(), UpdateTaskRequest{TaskID: created.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("updateTask failed: %v", resp.Error)
	}

	got, err := m.getTask(context.Background(), GetTaskRequest{TaskID: created.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if got.Task.Title != "untouched" || got.Task.Description != "still here" ||
		got.Task.Status != "InProgress" || got.Task.Priority != "Low" {
		t.Errorf("fields changed by empty update: %+v", got.Task)
	}
	if got.Task.UpdatedAt == nil {
		t.Error("UpdatedAt not set")
	}
}

func TestUpdateTaskValidatesPresentFields(t *testing.T) {
	m := newTestModule(t)

	created := mustCreate(t, m, validCreateRequest("valid"))

	blank := "   "
	resp, err := m.updateTask(context.Background(), UpdateTaskRequest{
		TaskID: created.ID,
		Title:  &blank,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Kind != KindInvalidArgument {
		t.Fatalf("Error = %v, want invalid_argument", resp.Error)
	}
	if len(resp.Error.Fields["title"]) == 0 {
		t.Errorf("no title error: %v", resp.Error.Fields)
	}
}

func TestMutationsOnMissingTaskReturnNotFound(t *testing.T) {
	m := newTestModule(t)
	ctx := context.Background()

	title := "x"
	update, _ := m.updateTask(ctx, UpdateTaskRequest{TaskID: 77, Title: &title}, nil)
	if update.Error == nil || update.Error.Kind != KindNotFound {
		t.Errorf("update: %v, want not_found", update.Error)
	}

	del, _ := m.deleteTask(ctx, DeleteTaskRequest{TaskID: 77}, nil)
	if del.Error == nil || del.Error.Kind != KindNotFound {
		t.Errorf("delete: %v, want not_found", del.Error)
	}

	complete, _ := m.completeTask(ctx, CompleteTaskRequest{TaskID: 77}, nil)
	if complete.Error == nil || complete.Error.Kind != KindNotFound {
		t.Errorf("complete: %v, want not_found", complete.Error)
	}

	incomplete, _ := m.incompleteTask(ctx, IncompleteTaskRequest{TaskID: 77}, nil)
	if incomplete.Error == nil || incomplete.Error.Kind != KindNotFound {
		t.Errorf("incomplete: %v, want not_found", incomplete.Error)
	}
}

func TestDeleteTask(t *testing.T) {
	m := newTestModule(t)

	created := mustCreate(t, m, validCreateRequest("to delete"))

	resp, err := m.deleteTask(context.Background(), DeleteTaskRequest{TaskID: created.ID}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil || !resp.Deleted {
		t.Fatalf("deleteTask: deleted=%v err=%v", resp.Deleted, resp.Error)
	}

	got, _ := m.getTask(context.Background(), GetTaskRequest{TaskID: created.ID}, nil)
	if got.Error == nil || got.Error.Kind != KindNotFound {
		t.Errorf("get after delete: %v, want not_found", got.Error)
	}
}

func TestListTasksSortsByTitle(t *testing.T) {
	m := newTestModule(t)

	for _, title := range []string{"Test Task 2", "Another Task", "Test Task 1"} {
		mustCreate(t, m, validCreateRequest(title))
	}

	resp, err := m.listTasks(context.Background(), ListTasksRequest{Sort: "title:asc"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("listTasks failed: %v", resp.Error)
	}

	want := []string{"Another Task", "Test Task 1", "Test Task 2"}
	if resp.Total != len(want) {
		t.Fatalf("Total = %d, want %d", resp.Total, len(want))
	}
	for i, title := range want {
		if resp.Tasks[i].Title != title {
			t.Errorf("tasks[%d].Title = %q, want %q", i, resp.Tasks[i].Title, title)
		}
	}
}

func TestListTasksFiltersByQuery(t *testing.T) {
	m := newTestModule(t)

	for _, title := range []string{"Another Task", "Test Task 1", "Test Task 2"} {
		mustCreate(t, m, validCreateRequest(title))
	}

	resp, err := m.listTasks(context.Background(), ListTasksRequest{Query: "Test"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("listTasks failed: %v", resp.Error)
	}
	if resp.Total != 2 {
		t.Fatalf("Total = %d, want 2", resp.Total)
	}
	for _, got := range resp.Tasks {
		if !strings.Contains(got.Title, "Test") {
			t.Errorf("unexpected task %q in filtered result", got.Title)
		}
	}
}

func TestListTasksRejectsUnknownSortField(t *testing.T) {
	m := newTestModule(t)

	resp, err := m.listTasks(context.Background(), ListTasksRequest{Sort: "id:asc"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Kind != KindInvalidArgument {
		t.Fatalf("Error = %v, want invalid_argument", resp.Error)
	}
	for _, field := range sortFieldNames {
		if !strings.Contains(resp.Error.Detail, field) {
			t.Errorf("detail %q does not name allowed field %q", resp.Error.Detail, field)
		}
	}
}

func TestListByPriority(t *testing.T) {
	m := newTestModule(t)
	now := time.Now().UTC()

	later := now.AddDate(0, 0, 5)
	sooner := now.AddDate(0, 0, 1)
	mustCreate(t, m, CreateTaskRequest{Title: "high later", Status: "New", Priority: "High", DueDate: &later})
	mustCreate(t, m, CreateTaskRequest{Title: "medium", Status: "New", Priority: "Medium"})
	mustCreate(t, m, CreateTaskRequest{Title: "high sooner", Status: "New", Priority: "High", DueDate: &sooner})

	resp, err := m.listByPriority(context.Background(), ListByPriorityRequest{Priority: "High"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error != nil {
		t.Fatalf("listByPriority failed: %v", resp.Error)
	}

	want := []string{"high sooner", "high later"}
	if resp.Total != len(want) {
		t.Fatalf("Total = %d, want %d", resp.Total, len(want))
	}
	for i, title := range want {
		if resp.Tasks[i].Title != title {
			t.Errorf("tasks[%d].Title = %q, want %q", i, resp.Tasks[i].Title, title)
		}
	}
}

func TestListByPriorityRejectsUnknownPriority(t *testing.T) {
	m := newTestModule(t)

	resp, err := m.listByPriority(context.Background(), ListByPriorityRequest{Priority: "Critical"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Kind != KindInvalidArgument {
		t.Errorf("Error = %v, want invalid_argument", resp.Error)
	}
}

// conflictStore wraps a Store and forces UpdateConditional to report a
// conflict, simulating a concurrent writer between read and write.
type conflictStore struct {
	Store
	exists bool
}

func (s *conflictStore) UpdateConditional(_ *domain.Task, _ int64) error {
	return ErrConflict
}

func (s *conflictStore) Exists(_ uint) (bool, error) {
	return s.exists, nil
}

func TestUpdateTaskConflictSurfacedWhenRecordStillExists(t *testing.T) {
	m := newTestModule(t)

	created := mustCreate(t, m, validCreateRequest("contended"))
	m.store = &conflictStore{Store: m.store, exists: true}

	title := "second writer"
	resp, err := m.updateTask(context.Background(), UpdateTaskRequest{
		TaskID: created.ID,
		Title:  &title,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Kind != KindConflict {
		t.Errorf("Error = %v, want conflict", resp.Error)
	}
}

func TestUpdateTaskConflictOnDeletedRecordBecomesNotFound(t *testing.T) {
	m := newTestModule(t)

	created := mustCreate(t, m, validCreateRequest("vanishing"))
	m.store = &conflictStore{Store: m.store, exists: false}

	title := "second writer"
	resp, err := m.updateTask(context.Background(), UpdateTaskRequest{
		TaskID: created.ID,
		Title:  &title,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Error == nil || resp.Error.Kind != KindNotFound {
		t.Errorf("Error = %v, want not_found", resp.Error)
	}
}
