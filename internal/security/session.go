package security

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/yourorg/projectdesk/internal/domain"
	"github.com/yourorg/projectdesk/internal/observability/metrics"
	"github.com/yourorg/projectdesk/internal/store"
)

// Session is the authorization context: at most one logged-in identity at a
// time. The session keeps only the user id; CurrentUser always re-reads the
// store, so role or status changes take effect immediately.
type Session struct {
	mu        sync.RWMutex
	users     *store.Users
	currentID string
	log       *zap.SugaredLogger
}

// NewSession constructs an unauthenticated session over the user store.
func NewSession(users *store.Users, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{users: users, log: log}
}

// Login authenticates by login name and verbatim password comparison.
// Succeeds only for active users; on failure the session is unchanged.
func (s *Session) Login(login, password string) bool {
	user, ok := s.users.FindByLogin(login)
	if !ok || user.Password != password || !user.Active {
		s.log.Infow("login rejected", "login", login)
		metrics.ObserveLogin("rejected")
		return false
	}

	s.mu.Lock()
	s.currentID = user.ID
	s.mu.Unlock()

	s.log.Infow("login accepted", "login", login, "user_id", user.ID, "role", user.Role)
	metrics.ObserveLogin("accepted")
	return true
}

// Resume restores a session for a user id, typically from a verified
// session token. The user must still exist and be active.
func (s *Session) Resume(userID string) bool {
	user, ok := s.users.FindByID(userID)
	if !ok || !user.Active {
		return false
	}
	s.mu.Lock()
	s.currentID = user.ID
	s.mu.Unlock()
	return true
}

// Logout clears the active session, no-op when nothing is logged in.
func (s *Session) Logout() {
	s.mu.Lock()
	s.currentID = ""
	s.mu.Unlock()
}

// IsLoggedIn reports whether an identity is active.
func (s *Session) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentID != ""
}

// CurrentUser returns a snapshot of the logged-in user, or
// ErrNoActiveSession when nothing is logged in. A user deleted from under
// an open session also reads as no active session.
func (s *Session) CurrentUser() (*domain.User, error) {
	s.mu.RLock()
	id := s.currentID
	s.mu.RUnlock()

	if id == "" {
		return nil, domain.ErrNoActiveSession
	}
	user, ok := s.users.FindByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: user %s no longer stored", domain.ErrNoActiveSession, id)
	}
	return user, nil
}

// HasPermission checks the active identity's role against the permission
// table. Unauthenticated sessions hold the empty permission set.
func (s *Session) HasPermission(permission Permission) bool {
	user, err := s.CurrentUser()
	if err != nil {
		return false
	}
	return RoleHasPermission(user.Role, permission)
}
