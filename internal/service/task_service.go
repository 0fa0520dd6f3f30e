package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/projectdesk/internal/audit"
	"github.com/yourorg/projectdesk/internal/domain"
	"github.com/yourorg/projectdesk/internal/observability/metrics"
	"github.com/yourorg/projectdesk/internal/security"
	"github.com/yourorg/projectdesk/internal/store"
)

// TaskService handles task creation and the pending/in-progress/completed
// state machine.
type TaskService struct {
	tasks    *store.Tasks
	projects *store.Projects
	teams    *store.Teams
	session  *security.Session
	auditLog *audit.Log
	log      *zap.SugaredLogger
}

// NewTaskService constructs the task workflow service.
func NewTaskService(
	tasks *store.Tasks,
	projects *store.Projects,
	teams *store.Teams,
	session *security.Session,
	auditLog *audit.Log,
	log *zap.SugaredLogger,
) *TaskService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &TaskService{
		tasks:    tasks,
		projects: projects,
		teams:    teams,
		session:  session,
		auditLog: auditLog,
		log:      log,
	}
}

// CreateTaskInput carries the fields for task creation.
type CreateTaskInput struct {
	Title       string
	Description string
	ProjectID   string
	TeamID      string
	DueAt       *time.Time
}

// Create registers a pending task under a project and team. Requires
// CREATE_TASK. Incomplete fields do not block creation; they only block a
// later start.
func (s *TaskService) Create(ctx context.Context, in CreateTaskInput) (task *domain.Task, err error) {
	_, span := tracer.Start(ctx, "task.create")
	defer span.End()
	defer func() { observe("create_task", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return nil, err
	}
	if !s.session.HasPermission(security.PermCreateTask) {
		return nil, fmt.Errorf("%w: creating tasks requires CREATE_TASK", domain.ErrPermissionDenied)
	}

	project, ok := s.projects.FindByID(in.ProjectID)
	if !ok {
		return nil, fmt.Errorf("%w: project %s", domain.ErrNotFound, in.ProjectID)
	}
	if project.IsCanceled() {
		return nil, fmt.Errorf("%w: project %s", domain.ErrProjectCanceled, in.ProjectID)
	}
	if _, ok := s.teams.FindByID(in.TeamID); !ok {
		return nil, fmt.Errorf("%w: team %s", domain.ErrNotFound, in.TeamID)
	}

	task = domain.NewTask(in.Title, in.Description, in.ProjectID, in.TeamID)
	task.DueAt = in.DueAt
	s.tasks.Save(task)
	metrics.SetEntityCount("tasks", s.tasks.Len())

	_ = s.projects.Update(in.ProjectID, func(p *domain.Project) (*domain.Project, error) {
		p.AddTask(task.ID)
		return p, nil
	})

	s.auditLog.Record(actor.ID, "CREATE_TASK", task.ID, "task created: "+in.Title)
	s.log.Infow("task created", "task_id", task.ID, "project_id", in.ProjectID, "team_id", in.TeamID)
	return task, nil
}

// Start moves a task from pending to in progress and records the assignee.
// The acting user may start tasks for themself; starting on behalf of
// someone else requires MANAGE_TASKS. Tasks with missing required fields
// cannot start, and neither can tasks of canceled projects.
func (s *TaskService) Start(ctx context.Context, taskID, actingUserID string) (err error) {
	_, span := tracer.Start(ctx, "task.start")
	defer span.End()
	defer func() { observe("start_task", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	task, ok := s.tasks.FindByID(taskID)
	if !ok {
		return fmt.Errorf("%w: task %s", domain.ErrNotFound, taskID)
	}
	project, ok := s.projects.FindByID(task.ProjectID)
	if !ok {
		return fmt.Errorf("%w: project %s", domain.ErrNotFound, task.ProjectID)
	}
	if project.IsCanceled() {
		return fmt.Errorf("%w: project %s", domain.ErrProjectCanceled, task.ProjectID)
	}
	if !task.ValidateRequiredFields() {
		return fmt.Errorf("%w: task %s", domain.ErrFieldsIncomplete, taskID)
	}
	if actingUserID != actor.ID && !s.session.HasPermission(security.PermManageTasks) {
		return fmt.Errorf("%w: starting tasks for another user requires MANAGE_TASKS", domain.ErrPermissionDenied)
	}

	err = s.tasks.Update(taskID, func(t *domain.Task) (*domain.Task, error) {
		if serr := t.Start(actingUserID); serr != nil {
			return nil, serr
		}
		return t, nil
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "START_TASK", taskID, "started by="+actingUserID)
	s.log.Infow("task started", "task_id", taskID, "assignee_id", actingUserID)
	return nil
}

// Complete moves an in-progress task to completed. Only the exact assignee
// may complete it; even administrators are refused.
func (s *TaskService) Complete(ctx context.Context, taskID, actingUserID string) (err error) {
	_, span := tracer.Start(ctx, "task.complete")
	defer span.End()
	defer func() { observe("complete_task", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	task, ok := s.tasks.FindByID(taskID)
	if !ok {
		return fmt.Errorf("%w: task %s", domain.ErrNotFound, taskID)
	}
	project, ok := s.projects.FindByID(task.ProjectID)
	if !ok {
		return fmt.Errorf("%w: project %s", domain.ErrNotFound, task.ProjectID)
	}
	if project.IsCanceled() {
		return fmt.Errorf("%w: project %s", domain.ErrProjectCanceled, task.ProjectID)
	}
	if actingUserID != task.AssigneeID {
		return fmt.Errorf("%w: only the assignee may complete task %s", domain.ErrPermissionDenied, taskID)
	}

	err = s.tasks.Update(taskID, func(t *domain.Task) (*domain.Task, error) {
		if cerr := t.Complete(); cerr != nil {
			return nil, cerr
		}
		return t, nil
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "COMPLETE_TASK", taskID, "completed by="+actingUserID)
	s.log.Infow("task completed", "task_id", taskID)
	return nil
}

// EditTaskInput carries partial updates: empty string or nil date means
// "keep current value".
type EditTaskInput struct {
	Title       string
	Description string
	DueAt       *time.Time
}

// Edit updates task fields. Allowed for the assignee or anyone with
// MANAGE_TASKS. Re-evaluates required-field completeness afterwards.
func (s *TaskService) Edit(ctx context.Context, taskID string, in EditTaskInput) (err error) {
	_, span := tracer.Start(ctx, "task.edit")
	defer span.End()
	defer func() { observe("edit_task", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	task, ok := s.tasks.FindByID(taskID)
	if !ok {
		return fmt.Errorf("%w: task %s", domain.ErrNotFound, taskID)
	}
	project, ok := s.projects.FindByID(task.ProjectID)
	if !ok {
		return fmt.Errorf("%w: project %s", domain.ErrNotFound, task.ProjectID)
	}
	if project.IsCanceled() {
		return fmt.Errorf("%w: project %s", domain.ErrProjectCanceled, task.ProjectID)
	}
	err = s.tasks.Update(taskID, func(t *domain.Task) (*domain.Task, error) {
		if actor.ID != t.AssigneeID && !security.RoleHasPermission(actor.Role, security.PermManageTasks) {
			return nil, fmt.Errorf("%w: editing task %s requires MANAGE_TASKS or being its assignee", domain.ErrPermissionDenied, taskID)
		}
		if in.Title != "" {
			t.Title = in.Title
		}
		if in.Description != "" {
			t.Description = in.Description
		}
		if in.DueAt != nil {
			t.DueAt = in.DueAt
		}
		t.ValidateRequiredFields()
		return t, nil
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "EDIT_TASK", taskID, "task edited")
	return nil
}

// Get returns a task snapshot.
func (s *TaskService) Get(taskID string) (*domain.Task, error) {
	task, ok := s.tasks.FindByID(taskID)
	if !ok {
		return nil, fmt.Errorf("%w: task %s", domain.ErrNotFound, taskID)
	}
	return task, nil
}

// List returns all tasks in creation order.
func (s *TaskService) List() []*domain.Task {
	return s.tasks.FindAll()
}

// ByProject returns the tasks of one project.
func (s *TaskService) ByProject(projectID string) []*domain.Task {
	return s.tasks.FindByProjectID(projectID)
}

// ByTeam returns the tasks assigned to one team.
func (s *TaskService) ByTeam(teamID string) []*domain.Task {
	return s.tasks.FindByTeamID(teamID)
}
