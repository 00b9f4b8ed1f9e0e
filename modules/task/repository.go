package task

import (
	"errors"
	"fmt"
	"strings"

	domain "github.com/example/task-tracker/domain/task"
	"gorm.io/gorm"
)

// Store is the record-store contract consumed by the service handlers.
// *Repository is the production implementation; tests substitute it to
// inject failures such as write conflicts.
type Store interface {
	FindByID(id uint) (*domain.Task, error)
	Search(query string) ([]*domain.Task, error)
	FindByPriority(priority domain.Priority) ([]*domain.Task, error)
	Create(task *domain.Task) error
	UpdateConditional(task *domain.Task, expectedVersion int64) error
	Delete(id uint) error
	Exists(id uint) (bool, error)
	Count() (int64, error)
}

// Repository provides access to task storage backed by GORM.
type Repository struct {
	db *gorm.DB
}

var _ Store = (*Repository)(nil)

// NewRepository creates a new task repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves a task by its ID.
func (r *Repository) FindByID(id uint) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return &task, nil
}

// Search retrieves tasks whose title or description contains query
// (case-insensitive). An empty query returns every task. Results come back
// in insertion order so callers can apply a stable sort on top.
func (r *Repository) Search(query string) ([]*domain.Task, error) {
	tx := r.db.Order("id")
	if query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		tx = tx.Where("lower(title) LIKE ? OR lower(description) LIKE ?", pattern, pattern)
	}

	var tasks []*domain.Task
	if err := tx.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

// FindByPriority retrieves tasks of the given priority ordered by due date
// ascending, tasks without a due date last.
func (r *Repository) FindByPriority(priority domain.Priority) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.
		Where("priority = ?", priority).
		Order("due_date IS NULL, due_date, id").
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find tasks by priority: %w", err)
	}
	return tasks, nil
}

// Create saves a new task; the store assigns the ID.
func (r *Repository) Create(task *domain.Task) error {
	if err := r.db.Create(task).Error; err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// UpdateConditional writes the full record guarded by the version the caller
// read. When the guard misses (the record was modified or deleted in the
// meantime) it returns ErrConflict; the caller distinguishes the two cases
// with Exists. On success the task's version is advanced.
func (r *Repository) UpdateConditional(task *domain.Task, expectedVersion int64) error {
	result := r.db.Model(&domain.Task{}).
		Where("id = ? AND version = ?", task.ID, expectedVersion).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"due_date":    task.DueDate,
			"updated_at":  task.UpdatedAt,
			"version":     expectedVersion + 1,
		})
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrConflict
	}

	task.Version = expectedVersion + 1
	return nil
}

// Delete removes a task by ID (hard delete).
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&domain.Task{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Exists reports whether a task with the given ID is present.
func (r *Repository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Task{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return count > 0, nil
}

// Count returns the total number of stored tasks.
func (r *Repository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Task{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}
