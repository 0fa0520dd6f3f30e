package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TaskStatus enumerates task lifecycle states.
type TaskStatus string

const (
	TaskPending    TaskStatus = "PENDING"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// DisplayName returns a human readable status label
func (s TaskStatus) DisplayName() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskInProgress:
		return "In progress"
	case TaskCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Task moves strictly Pending -> InProgress -> Completed. Creation never
// requires complete fields; progression does.
type Task struct {
	ID          string // UUID
	Title       string
	Description string
	ProjectID   string // required, references Project
	TeamID      string // required, references Team
	AssigneeID  string // set on start
	Status      TaskStatus
	CreatedAt   time.Time
	DueAt       *time.Time
	CompletedAt *time.Time

	// FieldsComplete caches the last ValidateRequiredFields result.
	FieldsComplete bool
}

// NewTask builds a pending task with a generated id. Field completeness is
// evaluated but never blocks creation.
func NewTask(title, description, projectID, teamID string) *Task {
	t := &Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		ProjectID:   projectID,
		TeamID:      teamID,
		Status:      TaskPending,
		CreatedAt:   time.Now(),
	}
	t.ValidateRequiredFields()
	return t
}

// ValidateRequiredFields recomputes and returns the required-field flag:
// title, description, project and team must all be non-empty.
func (t *Task) ValidateRequiredFields() bool {
	t.FieldsComplete = t.Title != "" && t.Description != "" && t.ProjectID != "" && t.TeamID != ""
	return t.FieldsComplete
}

// Start moves a pending task to in progress and records the assignee.
func (t *Task) Start(userID string) error {
	if t.Status != TaskPending {
		return fmt.Errorf("%w: cannot start task in status %s", ErrInvalidTransition, t.Status)
	}
	if !t.ValidateRequiredFields() {
		return fmt.Errorf("%w: task %s", ErrFieldsIncomplete, t.ID)
	}
	t.Status = TaskInProgress
	t.AssigneeID = userID
	return nil
}

// Complete moves an in-progress task to completed and stamps the time.
func (t *Task) Complete() error {
	if t.Status != TaskInProgress {
		return fmt.Errorf("%w: cannot complete task in status %s", ErrInvalidTransition, t.Status)
	}
	now := time.Now()
	t.Status = TaskCompleted
	t.CompletedAt = &now
	return nil
}

// Clone returns an independent copy
func (t *Task) Clone() *Task {
	c := *t
	if t.DueAt != nil {
		d := *t.DueAt
		c.DueAt = &d
	}
	if t.CompletedAt != nil {
		d := *t.CompletedAt
		c.CompletedAt = &d
	}
	return &c
}

// EntityID implements store.Entity
func (t *Task) EntityID() string { return t.ID }
