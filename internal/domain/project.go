package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ProjectStatus enumerates project lifecycle states.
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "PLANNED"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCanceled   ProjectStatus = "CANCELED"
)

// DisplayName returns a human readable status label
func (s ProjectStatus) DisplayName() string {
	switch s {
	case ProjectPlanned:
		return "Planned"
	case ProjectInProgress:
		return "In progress"
	case ProjectCompleted:
		return "Completed"
	case ProjectCanceled:
		return "Canceled"
	default:
		return string(s)
	}
}

// Project is a managed unit of work. Once canceled, no field mutation or
// task creation is allowed until it is reactivated.
type Project struct {
	ID          string // UUID
	Name        string
	Description string
	StartDate   *time.Time
	PlannedEnd  *time.Time
	ActualEnd   *time.Time // set on completion, reserved
	ManagerID   string     // required, references User
	Status      ProjectStatus
	TaskIDs     []string
}

// NewProject builds a planned project with a generated id.
func NewProject(name, description string, startDate, plannedEnd *time.Time, managerID string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: project name is required", ErrValidation)
	}
	if managerID == "" {
		return nil, fmt.Errorf("%w: manager id is required", ErrValidation)
	}
	return &Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		StartDate:   startDate,
		PlannedEnd:  plannedEnd,
		ManagerID:   managerID,
		Status:      ProjectPlanned,
	}, nil
}

// IsCanceled reports whether the project is canceled.
func (p *Project) IsCanceled() bool {
	return p.Status == ProjectCanceled
}

// Cancel moves the project to the canceled state.
func (p *Project) Cancel() error {
	if p.IsCanceled() {
		return fmt.Errorf("%w: project %s", ErrAlreadyCanceled, p.ID)
	}
	p.Status = ProjectCanceled
	return nil
}

// Reactivate returns a canceled project to the planned, editable state.
func (p *Project) Reactivate() error {
	if !p.IsCanceled() {
		return fmt.Errorf("%w: project %s", ErrNotCanceled, p.ID)
	}
	p.Status = ProjectPlanned
	return nil
}

// AddTask links a task id to the project, ignoring duplicates.
func (p *Project) AddTask(taskID string) {
	for _, id := range p.TaskIDs {
		if id == taskID {
			return
		}
	}
	p.TaskIDs = append(p.TaskIDs, taskID)
}

// TaskCount returns the number of linked tasks.
func (p *Project) TaskCount() int { return len(p.TaskIDs) }

// Clone returns an independent copy
func (p *Project) Clone() *Project {
	c := *p
	c.TaskIDs = append([]string(nil), p.TaskIDs...)
	if p.StartDate != nil {
		d := *p.StartDate
		c.StartDate = &d
	}
	if p.PlannedEnd != nil {
		d := *p.PlannedEnd
		c.PlannedEnd = &d
	}
	if p.ActualEnd != nil {
		d := *p.ActualEnd
		c.ActualEnd = &d
	}
	return &c
}

// EntityID implements store.Entity
func (p *Project) EntityID() string { return p.ID }
