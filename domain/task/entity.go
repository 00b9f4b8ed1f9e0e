package task

import "time"

// Status represents the workflow state of a task. All transitions between
// states are allowed; Done is what makes a task count as completed.
type Status string

const (
	StatusNew        Status = "New"
	StatusInProgress Status = "InProgress"
	StatusDone       Status = "Done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusNew, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Priority represents the importance of a task.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank returns the ordering position of the priority (Low < Medium < High).
// Unknown priorities sort after known ones.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 0
	case PriorityMedium:
		return 1
	case PriorityHigh:
		return 2
	}
	return 3
}

// Task is the core domain entity representing a tracked task.
//
// CreatedAt and UpdatedAt are owned by the service layer, so GORM's automatic
// timestamp tracking is disabled. Version is the optimistic-concurrency token:
// every conditional write is guarded by the version that was read and
// increments it on success.
type Task struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"size:1000" json:"description"`
	Status      Status     `gorm:"size:20;not null;default:New" json:"status"`
	Priority    Priority   `gorm:"size:20;not null;default:Medium" json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime:false" json:"createdAt"`
	UpdatedAt   *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt,omitempty"`
	Version     int64      `gorm:"not null;default:0" json:"-"`
}

// IsCompleted reports whether the task is done. The flag is always derived
// from Status and never stored independently.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusDone
}

// TableName returns the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}
