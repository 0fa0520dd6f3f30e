package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/projectdesk/internal/audit"
	"github.com/yourorg/projectdesk/internal/domain"
	"github.com/yourorg/projectdesk/internal/security"
	"github.com/yourorg/projectdesk/internal/security/auth"
	"github.com/yourorg/projectdesk/internal/store"
)

const (
	testAdminLogin    = "admin"
	testAdminPassword = "123456"
)

// fixture wires the full workflow stack over fresh in-memory stores with
// the default administrator seeded and logged in.
type fixture struct {
	users    *store.Users
	teams    *store.Teams
	projects *store.Projects
	tasks    *store.Tasks
	session  *security.Session
	auditLog *audit.Log

	userSvc    *UserService
	teamSvc    *TeamService
	projectSvc *ProjectService
	taskSvc    *TaskService

	admin *domain.User
	seq   int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    store.NewUsers(),
		teams:    store.NewTeams(),
		projects: store.NewProjects(),
		tasks:    store.NewTasks(),
		auditLog: audit.NewLog(nil),
	}
	f.session = security.NewSession(f.users, nil)
	tokens := auth.NewTokenManager("test-secret", "projectdesk")

	f.userSvc = NewUserService(f.users, f.teams, f.session, f.auditLog, tokens, time.Hour, nil)
	f.teamSvc = NewTeamService(f.teams, f.users, f.tasks, f.session, f.auditLog, nil)
	f.projectSvc = NewProjectService(f.projects, f.tasks, f.users, f.session, f.auditLog, nil)
	f.taskSvc = NewTaskService(f.tasks, f.projects, f.teams, f.session, f.auditLog, nil)

	admin, err := f.userSvc.EnsureDefaultAdmin(context.Background(), testAdminLogin, testAdminPassword)
	require.NoError(t, err)
	require.NotNil(t, admin)
	f.admin = admin

	f.loginAs(t, testAdminLogin, testAdminPassword)
	return f
}

func (f *fixture) loginAs(t *testing.T, login, password string) {
	t.Helper()
	_, err := f.userSvc.Login(context.Background(), login, password)
	require.NoError(t, err)
}

// registerUser creates a user with unique identity fields as the current
// (admin) session.
func (f *fixture) registerUser(t *testing.T, login string, role domain.Role) *domain.User {
	t.Helper()
	f.seq++
	u, err := f.userSvc.Register(context.Background(), RegisterInput{
		FullName: "Test " + login,
		TaxID:    fmt.Sprintf("%011d", f.seq),
		Email:    login + "@example.com",
		JobTitle: "Engineer",
		Login:    login,
		Password: "secret1",
		Role:     role,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) createProject(t *testing.T, managerID string) *domain.Project {
	t.Helper()
	f.seq++
	p, err := f.projectSvc.Create(context.Background(), CreateProjectInput{
		Name:        fmt.Sprintf("Project %d", f.seq),
		Description: "test project",
		ManagerID:   managerID,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) createTeam(t *testing.T) *domain.Team {
	t.Helper()
	f.seq++
	team, err := f.teamSvc.Create(context.Background(), CreateTeamInput{
		Name:        fmt.Sprintf("Team %d", f.seq),
		Description: "test team",
	})
	require.NoError(t, err)
	return team
}

func (f *fixture) createTask(t *testing.T, projectID, teamID string) *domain.Task {
	t.Helper()
	f.seq++
	task, err := f.taskSvc.Create(context.Background(), CreateTaskInput{
		Title:       fmt.Sprintf("Task %d", f.seq),
		Description: "test task",
		ProjectID:   projectID,
		TeamID:      teamID,
	})
	require.NoError(t, err)
	return task
}

func TestObserveClassifiesErrors(t *testing.T) {
	// smoke check: observe must not panic for any class of outcome
	observe("op", nil)
	observe("op", domain.ErrPermissionDenied)
	observe("op", domain.ErrNoActiveSession)
	observe("op", domain.ErrValidation)
}
