package task

import (
	"fmt"
	"log"
	"time"

	domain "github.com/example/task-tracker/domain/task"
)

// seedTasks inserts the initial task set on first start. A non-empty store
// is left untouched.
func seedTasks(store Store) error {
	count, err := store.Count()
	if err != nil {
		return fmt.Errorf("failed to check seed state: %w", err)
	}
	if count > 0 {
		return nil
	}

	now := time.Now().UTC()
	days := func(d int) *time.Time {
		t := now.AddDate(0, 0, d)
		return &t
	}

	tasks := []*domain.Task{
		{
			Title:       "Complete API Implementation",
			Description: "Finish building the RESTful API for tasks",
			Status:      domain.StatusNew,
			Priority:    domain.PriorityHigh,
			CreatedAt:   now.AddDate(0, 0, -2),
			DueDate:     days(1),
		},
		{
			Title:       "Write Documentation",
			Description: "Create API documentation for the task system",
			Status:      domain.StatusNew,
			Priority:    domain.PriorityMedium,
			CreatedAt:   now.AddDate(0, 0, -1),
			DueDate:     days(3),
		},
		{
			Title:       "Test API Endpoints",
			Description: "Write unit tests for all API endpoints",
			Status:      domain.StatusNew,
			Priority:    domain.PriorityHigh,
			CreatedAt:   now,
			DueDate:     days(5),
		},
		{
			Title:       "Setup CI/CD Pipeline",
			Description: "Configure continuous integration and deployment",
			Status:      domain.StatusNew,
			Priority:    domain.PriorityLow,
			CreatedAt:   now.AddDate(0, 0, -3),
			DueDate:     days(7),
		},
		{
			Title:       "Design Frontend UI",
			Description: "Create mockups for the SPA frontend",
			Status:      domain.StatusNew,
			Priority:    domain.PriorityMedium,
			CreatedAt:   now.AddDate(0, 0, -5),
			DueDate:     days(-1),
		},
	}

	for _, t := range tasks {
		if err := store.Create(t); err != nil {
			return fmt.Errorf("failed to seed task %q: %w", t.Title, err)
		}
	}

	log.Printf("[task] Seeded %d initial tasks", len(tasks))
	return nil
}
