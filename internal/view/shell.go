package view

import (
	"context"

	"github.com/yourorg/projectdesk/internal/audit"
	"github.com/yourorg/projectdesk/internal/security"
	"github.com/yourorg/projectdesk/internal/service"
)

// Shell is the root console loop: login, main menu, logout.
type Shell struct {
	console  *Console
	users    *service.UserService
	session  *security.Session
	auditLog *audit.Log

	userView    *UserView
	teamView    *TeamView
	projectView *ProjectView
	taskView    *TaskView

	// TokenSaver persists the session token after a login, when set.
	TokenSaver func(token string) error
}

// NewShell wires the root loop over the sub menus.
func NewShell(
	console *Console,
	users *service.UserService,
	session *security.Session,
	auditLog *audit.Log,
	userView *UserView,
	teamView *TeamView,
	projectView *ProjectView,
	taskView *TaskView,
) *Shell {
	return &Shell{
		console:     console,
		users:       users,
		session:     session,
		auditLog:    auditLog,
		userView:    userView,
		teamView:    teamView,
		projectView: projectView,
		taskView:    taskView,
	}
}

// Run drives the console until the user exits. Returns when option 0 is
// chosen at the top level.
func (s *Shell) Run(ctx context.Context) {
	for {
		if !s.session.IsLoggedIn() {
			if !s.loginLoop(ctx) {
				return
			}
		}
		if !s.mainMenu(ctx) {
			return
		}
	}
}

// loginLoop prompts for credentials until login succeeds or the user quits.
// Returns false on quit.
func (s *Shell) loginLoop(ctx context.Context) bool {
	for {
		s.console.ClearScreen()
		s.console.Title("ProjectDesk")
		s.console.Println("1. Login")
		s.console.Println("0. Exit")

		switch s.console.ReadInt("Choose an option: ") {
		case 1:
			login := s.console.ReadString("Login: ")
			password := s.console.ReadString("Password: ")
			user, err := s.users.Login(ctx, login, password)
			if err != nil {
				s.console.Error("login or password incorrect, or user inactive")
				s.console.Pause()
				continue
			}
			s.console.Success("welcome, " + user.FullName)
			if s.TokenSaver != nil {
				if token, terr := s.users.SessionToken(); terr == nil {
					_ = s.TokenSaver(token)
				}
			}
			return true
		case 0:
			return false
		default:
			s.console.Error("invalid option")
			s.console.Pause()
		}
	}
}

// mainMenu runs the authenticated top menu. Returns false when the program
// should exit.
func (s *Shell) mainMenu(ctx context.Context) bool {
	for {
		s.console.ClearScreen()
		s.console.Title("Main Menu")
		if user, err := s.session.CurrentUser(); err == nil {
			s.console.Println("Logged in as: " + user.FullName + " (" + user.Role.DisplayName() + ")")
		}
		s.console.Println("1. Users")
		s.console.Println("2. Teams")
		s.console.Println("3. Projects")
		s.console.Println("4. Tasks")
		s.console.Println("5. Audit log")
		s.console.Println("6. Logout")
		s.console.Println("0. Exit")

		switch s.console.ReadInt("Choose an option: ") {
		case 1:
			s.userView.Show(ctx)
		case 2:
			s.teamView.Show(ctx)
		case 3:
			s.projectView.Show(ctx)
		case 4:
			s.taskView.Show(ctx)
		case 5:
			s.showAuditLog()
		case 6:
			s.users.Logout()
			s.console.Success("logged out")
			s.console.Pause()
			return true
		case 0:
			return false
		default:
			s.console.Error("invalid option")
			s.console.Pause()
		}
	}
}

func (s *Shell) showAuditLog() {
	s.console.Title("Audit Log")
	entries := s.auditLog.AllEntries()
	if len(entries) == 0 {
		s.console.Println("No entries recorded.")
	}
	for _, e := range entries {
		s.console.Printf("[%s] %s %s by %s: %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.EntityID, e.ActorID, e.Details)
	}
	s.console.Pause()
}
