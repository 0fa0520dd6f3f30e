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
	"github.com/yourorg/projectdesk/internal/security/auth"
	"github.com/yourorg/projectdesk/internal/store"
)

// actorSystem is the audit actor for operations performed before any login.
const actorSystem = "SYSTEM"

// UserService handles registration, login and account maintenance.
type UserService struct {
	users    *store.Users
	teams    *store.Teams
	session  *security.Session
	auditLog *audit.Log
	tokens   *auth.TokenManager
	tokenTTL time.Duration
	log      *zap.SugaredLogger
}

// NewUserService constructs the user workflow service.
func NewUserService(
	users *store.Users,
	teams *store.Teams,
	session *security.Session,
	auditLog *audit.Log,
	tokens *auth.TokenManager,
	tokenTTL time.Duration,
	log *zap.SugaredLogger,
) *UserService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &UserService{
		users:    users,
		teams:    teams,
		session:  session,
		auditLog: auditLog,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		log:      log,
	}
}

// RegisterInput carries the fields for user registration.
type RegisterInput struct {
	FullName string
	TaxID    string
	Email    string
	JobTitle string
	Login    string
	Password string
	Role     domain.Role
}

// Register creates a user after validation and uniqueness checks. The
// acting user needs MANAGE_USERS and a role able to manage the new role.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (user *domain.User, err error) {
	_, span := tracer.Start(ctx, "user.register")
	defer span.End()
	defer func() { observe("register_user", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return nil, err
	}
	if !s.session.HasPermission(security.PermManageUsers) {
		return nil, fmt.Errorf("%w: registering users requires MANAGE_USERS", domain.ErrPermissionDenied)
	}
	if !actor.Role.CanManage(in.Role) {
		return nil, fmt.Errorf("%w: role %s cannot create users with role %s", domain.ErrPermissionDenied, actor.Role, in.Role)
	}

	candidate := domain.NewUser(in.FullName, domain.NormalizeTaxID(in.TaxID), in.Email, in.JobTitle, in.Login, in.Password, in.Role)
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if _, exists := s.users.FindByTaxID(in.TaxID); exists {
		return nil, fmt.Errorf("%w: tax id already registered", domain.ErrValidation)
	}
	if _, exists := s.users.FindByEmail(in.Email); exists {
		return nil, fmt.Errorf("%w: email already registered", domain.ErrValidation)
	}
	if _, exists := s.users.FindByLogin(in.Login); exists {
		return nil, fmt.Errorf("%w: login already taken", domain.ErrValidation)
	}

	s.users.Save(candidate)
	metrics.SetEntityCount("users", s.users.Len())
	s.auditLog.Record(actor.ID, "CREATE_USER", candidate.ID, "user created with role="+string(in.Role))
	s.log.Infow("user registered", "user_id", candidate.ID, "login", candidate.Login, "role", candidate.Role)
	return candidate, nil
}

// EnsureDefaultAdmin seeds the bootstrap administrator when the user store
// is empty. Returns the admin if one was created.
func (s *UserService) EnsureDefaultAdmin(ctx context.Context, login, password string) (*domain.User, error) {
	_, span := tracer.Start(ctx, "user.ensure_default_admin")
	defer span.End()

	if s.users.Len() > 0 {
		return nil, nil
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	admin := domain.NewUser(
		"System Administrator",
		"00000000000",
		"admin@projectdesk.local",
		"Administrator",
		login,
		password,
		domain.RoleAdministrator,
	)
	s.users.Save(admin)
	metrics.SetEntityCount("users", s.users.Len())
	s.auditLog.Record(actorSystem, "CREATE_USER", admin.ID, "default administrator created")
	s.log.Warnw("default administrator created, change the password after first login", "login", login)
	return admin, nil
}

// Login authenticates and records the attempt in the audit log.
func (s *UserService) Login(ctx context.Context, login, password string) (user *domain.User, err error) {
	_, span := tracer.Start(ctx, "user.login")
	defer span.End()
	defer func() { observe("login", err) }()

	if !s.session.Login(login, password) {
		return nil, fmt.Errorf("%w: login %q", domain.ErrInvalidCredentials, login)
	}
	current, err := s.session.CurrentUser()
	if err != nil {
		return nil, err
	}
	s.auditLog.Record(current.ID, "LOGIN", "USER", "login accepted")
	return current, nil
}

// Logout drops the active session.
func (s *UserService) Logout() {
	s.session.Logout()
}

// SessionToken mints a resume token for the active session.
func (s *UserService) SessionToken() (string, error) {
	current, err := s.session.CurrentUser()
	if err != nil {
		return "", err
	}
	return s.tokens.GenerateToken(current.ID, current.Login, s.tokenTTL)
}

// ResumeSession restores a session from a previously minted token. The
// referenced user must still exist and be active.
func (s *UserService) ResumeSession(ctx context.Context, token string) (user *domain.User, err error) {
	_, span := tracer.Start(ctx, "user.resume_session")
	defer span.End()
	defer func() { observe("resume_session", err) }()

	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidCredentials, err)
	}
	if !s.session.Resume(claims.UserID) {
		return nil, fmt.Errorf("%w: stale session token", domain.ErrInvalidCredentials)
	}
	current, err := s.session.CurrentUser()
	if err != nil {
		return nil, err
	}
	s.auditLog.Record(current.ID, "RESUME_SESSION", "USER", "session resumed from token")
	return current, nil
}

// ChangePassword replaces the caller's own password after checking the
// current one. Verbatim comparison, matching login.
func (s *UserService) ChangePassword(ctx context.Context, currentPassword, newPassword string) (err error) {
	_, span := tracer.Start(ctx, "user.change_password")
	defer span.End()
	defer func() { observe("change_password", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	if actor.Password != currentPassword {
		return fmt.Errorf("%w: current password does not match", domain.ErrValidation)
	}
	if err := domain.ValidatePassword(newPassword); err != nil {
		return err
	}
	err = s.users.Update(actor.ID, func(u *domain.User) (*domain.User, error) {
		u.Password = newPassword
		return u, nil
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "CHANGE_PASSWORD", "USER", "password changed")
	return nil
}

// Deactivate flips a user to inactive. Soft delete: records are never
// removed by workflow operations.
func (s *UserService) Deactivate(ctx context.Context, userID string) (err error) {
	_, span := tracer.Start(ctx, "user.deactivate")
	defer span.End()
	defer func() { observe("deactivate_user", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	if !s.session.HasPermission(security.PermManageUsers) {
		return fmt.Errorf("%w: deactivating users requires MANAGE_USERS", domain.ErrPermissionDenied)
	}
	err = s.users.Update(userID, func(u *domain.User) (*domain.User, error) {
		u.Active = false
		return u, nil
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "DEACTIVATE_USER", userID, "user deactivated")
	return nil
}

// Get returns a user snapshot.
func (s *UserService) Get(userID string) (*domain.User, error) {
	user, ok := s.users.FindByID(userID)
	if !ok {
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}
	return user, nil
}

// List returns all users in registration order.
func (s *UserService) List() []*domain.User {
	return s.users.FindAll()
}

// TeamsOf returns the teams a user belongs to, creator membership included.
func (s *UserService) TeamsOf(userID string) []*domain.Team {
	return s.teams.FindByMemberID(userID)
}
