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

// ProjectService handles the project lifecycle: create, partial edit,
// cancel and reactivate.
type ProjectService struct {
	projects *store.Projects
	tasks    *store.Tasks
	users    *store.Users
	session  *security.Session
	auditLog *audit.Log
	log      *zap.SugaredLogger
}

// NewProjectService constructs the project workflow service.
func NewProjectService(
	projects *store.Projects,
	tasks *store.Tasks,
	users *store.Users,
	session *security.Session,
	auditLog *audit.Log,
	log *zap.SugaredLogger,
) *ProjectService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &ProjectService{
		projects: projects,
		tasks:    tasks,
		users:    users,
		session:  session,
		auditLog: auditLog,
		log:      log,
	}
}

// CreateProjectInput carries the fields for project creation. Dates are
// optional.
type CreateProjectInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	PlannedEnd  *time.Time
	ManagerID   string
}

// Create builds a planned project. Requires CREATE_PROJECT.
func (s *ProjectService) Create(ctx context.Context, in CreateProjectInput) (project *domain.Project, err error) {
	_, span := tracer.Start(ctx, "project.create")
	defer span.End()
	defer func() { observe("create_project", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return nil, err
	}
	if !s.session.HasPermission(security.PermCreateProject) {
		return nil, fmt.Errorf("%w: creating projects requires CREATE_PROJECT", domain.ErrPermissionDenied)
	}

	project, err = domain.NewProject(in.Name, in.Description, in.StartDate, in.PlannedEnd, in.ManagerID)
	if err != nil {
		return nil, err
	}
	s.projects.Save(project)
	metrics.SetEntityCount("projects", s.projects.Len())

	// Managed-project cache on the user record, best effort: the manager id
	// is not required to reference a stored user.
	_ = s.users.Update(in.ManagerID, func(u *domain.User) (*domain.User, error) {
		u.ProjectIDs = append(u.ProjectIDs, project.ID)
		return u, nil
	})

	s.auditLog.Record(actor.ID, "CREATE_PROJECT", project.ID, fmt.Sprintf("project created: %s manager=%s", in.Name, in.ManagerID))
	s.log.Infow("project created", "project_id", project.ID, "manager_id", in.ManagerID)
	return project, nil
}

// EditProjectInput carries partial updates: empty strings and nil dates
// mean "keep current value".
type EditProjectInput struct {
	Name        string
	Description string
	StartDate   *time.Time
	PlannedEnd  *time.Time
}

// Edit applies a sentinel-based partial update. Canceled projects cannot be
// edited. Requires EDIT_PROJECT or being the project's manager.
func (s *ProjectService) Edit(ctx context.Context, id string, in EditProjectInput) (err error) {
	_, span := tracer.Start(ctx, "project.edit")
	defer span.End()
	defer func() { observe("edit_project", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	err = s.projects.Update(id, func(p *domain.Project) (*domain.Project, error) {
		if p.IsCanceled() {
			return nil, fmt.Errorf("%w: project %s cannot be edited", domain.ErrProjectCanceled, id)
		}
		if !security.RoleHasPermission(actor.Role, security.PermEditProject) && actor.ID != p.ManagerID {
			return nil, fmt.Errorf("%w: editing project %s", domain.ErrPermissionDenied, id)
		}
		if in.Name != "" {
			p.Name = in.Name
		}
		if in.Description != "" {
			p.Description = in.Description
		}
		if in.StartDate != nil {
			p.StartDate = in.StartDate
		}
		if in.PlannedEnd != nil {
			p.PlannedEnd = in.PlannedEnd
		}
		return p, nil
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "EDIT_PROJECT", id, "project edited")
	return nil
}

// Cancel moves a project to canceled. Linked tasks stay stored; their
// state-advancing operations re-check the project status themselves.
// Requires CANCEL_PROJECT or being the manager.
func (s *ProjectService) Cancel(ctx context.Context, id string) (err error) {
	_, span := tracer.Start(ctx, "project.cancel")
	defer span.End()
	defer func() { observe("cancel_project", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	err = s.projects.Update(id, func(p *domain.Project) (*domain.Project, error) {
		if p.IsCanceled() {
			return nil, fmt.Errorf("%w: project %s", domain.ErrAlreadyCanceled, id)
		}
		if !security.RoleHasPermission(actor.Role, security.PermCancelProject) && actor.ID != p.ManagerID {
			return nil, fmt.Errorf("%w: canceling project %s", domain.ErrPermissionDenied, id)
		}
		return p, p.Cancel()
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "CANCEL_PROJECT", id, "project canceled")
	s.log.Infow("project canceled", "project_id", id)
	return nil
}

// Reactivate returns a canceled project to the planned state. Requires
// REACTIVATE_PROJECT or being the manager.
func (s *ProjectService) Reactivate(ctx context.Context, id string) (err error) {
	_, span := tracer.Start(ctx, "project.reactivate")
	defer span.End()
	defer func() { observe("reactivate_project", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	err = s.projects.Update(id, func(p *domain.Project) (*domain.Project, error) {
		if !p.IsCanceled() {
			return nil, fmt.Errorf("%w: project %s", domain.ErrNotCanceled, id)
		}
		if !security.RoleHasPermission(actor.Role, security.PermReactivateProject) && actor.ID != p.ManagerID {
			return nil, fmt.Errorf("%w: reactivating project %s", domain.ErrPermissionDenied, id)
		}
		return p, p.Reactivate()
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "REACTIVATE_PROJECT", id, "project reactivated")
	s.log.Infow("project reactivated", "project_id", id)
	return nil
}

// Get returns a project snapshot.
func (s *ProjectService) Get(id string) (*domain.Project, error) {
	project, ok := s.projects.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: project %s", domain.ErrNotFound, id)
	}
	return project, nil
}

// List returns all projects in creation order.
func (s *ProjectService) List() []*domain.Project {
	return s.projects.FindAll()
}

// Counts returns the derived linked team and task counts, computed from the
// task store on demand rather than cached on the entity.
func (s *ProjectService) Counts(id string) (teams, tasks int) {
	linked := s.tasks.FindByProjectID(id)
	seen := make(map[string]struct{})
	for _, t := range linked {
		if t.TeamID != "" {
			seen[t.TeamID] = struct{}{}
		}
	}
	return len(seen), len(linked)
}
