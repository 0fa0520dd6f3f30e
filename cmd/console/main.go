package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourorg/projectdesk/internal/audit"
	"github.com/yourorg/projectdesk/internal/observability/tracing"
	"github.com/yourorg/projectdesk/internal/security"
	"github.com/yourorg/projectdesk/internal/security/auth"
	"github.com/yourorg/projectdesk/internal/service"
	"github.com/yourorg/projectdesk/internal/store"
	"github.com/yourorg/projectdesk/internal/view"
	"github.com/yourorg/projectdesk/pkg/config"
	"github.com/yourorg/projectdesk/pkg/logger"
)

var (
	cfg *config.Config
	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "projectdesk",
	Short: "Console project management: users, teams, projects and tasks",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.NewConfig()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		log, err = logger.New(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func run(ctx context.Context) error {
	log.Infow("starting projectdesk", "environment", cfg.App.Environment)

	shutdownTracing, err := tracing.Init(ctx, log, "projectdesk", cfg.App.Environment)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = shutdownTracing(ctx) }()

	users := store.NewUsers()
	teams := store.NewTeams()
	projects := store.NewProjects()
	tasks := store.NewTasks()

	auditLog := audit.NewLog(log)
	session := security.NewSession(users, log)
	tokens := auth.NewTokenManager(cfg.Session.TokenSecret, "projectdesk")

	userService := service.NewUserService(users, teams, session, auditLog, tokens, cfg.Session.TokenTTL, log)
	teamService := service.NewTeamService(teams, users, tasks, session, auditLog, log)
	projectService := service.NewProjectService(projects, tasks, users, session, auditLog, log)
	taskService := service.NewTaskService(tasks, projects, teams, session, auditLog, log)

	admin, err := userService.EnsureDefaultAdmin(ctx, cfg.Bootstrap.AdminLogin, cfg.Bootstrap.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}

	console := view.NewConsole(os.Stdin, os.Stdout)
	if admin != nil {
		console.Println("Default administrator created:")
		console.Println("Login: " + cfg.Bootstrap.AdminLogin)
		console.Println("Password: " + cfg.Bootstrap.AdminPassword)
		console.Println("Change the password after the first login.")
		console.Println("")
	}

	resumeSession(ctx, console, userService)

	shell := view.NewShell(
		console,
		userService,
		session,
		auditLog,
		view.NewUserView(console, userService, session),
		view.NewTeamView(console, teamService, auditLog),
		view.NewProjectView(console, projectService, auditLog),
		view.NewTaskView(console, taskService, auditLog),
	)
	shell.TokenSaver = saveToken

	shell.Run(ctx)
	log.Infow("projectdesk stopped")
	return nil
}

// resumeSession restores the previous login from the persisted session
// token, if one exists and still validates.
func resumeSession(ctx context.Context, console *view.Console, users *service.UserService) {
	if cfg.Session.TokenFile == "" {
		return
	}
	raw, err := os.ReadFile(cfg.Session.TokenFile)
	if err != nil {
		return
	}
	user, err := users.ResumeSession(ctx, strings.TrimSpace(string(raw)))
	if err != nil {
		log.Debugw("stale session token ignored", "error", err)
		_ = os.Remove(cfg.Session.TokenFile)
		return
	}
	console.Println("Session restored for " + user.FullName + ".")
}

func saveToken(token string) error {
	if cfg.Session.TokenFile == "" {
		return nil
	}
	return os.WriteFile(cfg.Session.TokenFile, []byte(token), 0o600)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
