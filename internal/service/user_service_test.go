package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/projectdesk/internal/domain"
)

func TestEnsureDefaultAdminOnlyWhenEmpty(t *testing.T) {
	f := newFixture(t)

	again, err := f.userSvc.EnsureDefaultAdmin(context.Background(), "admin2", "123456")
	require.NoError(t, err)
	require.Nil(t, again)
	require.Equal(t, 1, f.users.Len())

	require.Equal(t, "System Administrator", f.admin.FullName)
	require.Equal(t, "00000000000", f.admin.TaxID)
	require.Equal(t, domain.RoleAdministrator, f.admin.Role)
}

func TestRegisterRequiresManageUsers(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t, "mgr", domain.RoleManager)
	f.loginAs(t, "mgr", "secret1")

	_, err := f.userSvc.Register(context.Background(), RegisterInput{
		FullName: "New User",
		TaxID:    "99999999999",
		Email:    "new@example.com",
		JobTitle: "Engineer",
		Login:    "new",
		Password: "secret1",
		Role:     domain.RoleCollaborator,
	})
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestRegisterRequiresSession(t *testing.T) {
	f := newFixture(t)
	f.userSvc.Logout()

	_, err := f.userSvc.Register(context.Background(), RegisterInput{
		FullName: "New User",
		TaxID:    "99999999999",
		Email:    "new@example.com",
		JobTitle: "Engineer",
		Login:    "new",
		Password: "secret1",
		Role:     domain.RoleCollaborator,
	})
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	existing := f.registerUser(t, "ana", domain.RoleCollaborator)

	base := RegisterInput{
		FullName: "Clone",
		TaxID:    "99999999999",
		Email:    "clone@example.com",
		JobTitle: "Engineer",
		Login:    "clone",
		Password: "secret1",
		Role:     domain.RoleCollaborator,
	}

	dup := base
	dup.TaxID = existing.TaxID
	_, err := f.userSvc.Register(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrValidation)

	dup = base
	dup.Email = existing.Email
	_, err = f.userSvc.Register(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrValidation)

	dup = base
	dup.Login = existing.Login
	_, err = f.userSvc.Register(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrValidation)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newFixture(t)

	_, err := f.userSvc.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.userSvc.Login(context.Background(), "nobody", "123456")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginIsAudited(t *testing.T) {
	f := newFixture(t)

	entries := f.auditLog.EntriesFor("USER")
	var found bool
	for _, e := range entries {
		if e.Action == "LOGIN" && e.ActorID == f.admin.ID {
			found = true
		}
	}
	require.True(t, found)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)

	err := f.userSvc.ChangePassword(context.Background(), "wrong", "newsecret")
	require.ErrorIs(t, err, domain.ErrValidation)

	err = f.userSvc.ChangePassword(context.Background(), testAdminPassword, "short")
	require.ErrorIs(t, err, domain.ErrValidation)

	require.NoError(t, f.userSvc.ChangePassword(context.Background(), testAdminPassword, "newsecret"))

	f.userSvc.Logout()
	_, err = f.userSvc.Login(context.Background(), testAdminLogin, testAdminPassword)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
	f.loginAs(t, testAdminLogin, "newsecret")
}

func TestDeactivateBlocksLogin(t *testing.T) {
	f := newFixture(t)
	u := f.registerUser(t, "ana", domain.RoleCollaborator)

	require.NoError(t, f.userSvc.Deactivate(context.Background(), u.ID))

	_, err := f.userSvc.Login(context.Background(), "ana", "secret1")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestDeactivateRequiresManageUsers(t *testing.T) {
	f := newFixture(t)
	u := f.registerUser(t, "ana", domain.RoleCollaborator)
	f.registerUser(t, "mgr", domain.RoleManager)
	f.loginAs(t, "mgr", "secret1")

	err := f.userSvc.Deactivate(context.Background(), u.ID)
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestSessionTokenRoundTrip(t *testing.T) {
	f := newFixture(t)

	token, err := f.userSvc.SessionToken()
	require.NoError(t, err)

	f.userSvc.Logout()

	user, err := f.userSvc.ResumeSession(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, f.admin.ID, user.ID)
	require.True(t, f.session.IsLoggedIn())
}

func TestResumeSessionRejectsDeactivatedUser(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t, "ana", domain.RoleCollaborator)
	f.loginAs(t, "ana", "secret1")

	token, err := f.userSvc.SessionToken()
	require.NoError(t, err)

	// back as admin to deactivate, then the old token must be refused
	f.loginAs(t, testAdminLogin, testAdminPassword)
	ana, ok := f.users.FindByLogin("ana")
	require.True(t, ok)
	require.NoError(t, f.userSvc.Deactivate(context.Background(), ana.ID))
	f.userSvc.Logout()

	_, err = f.userSvc.ResumeSession(context.Background(), token)
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestSessionTokenRequiresLogin(t *testing.T) {
	f := newFixture(t)
	f.userSvc.Logout()

	_, err := f.userSvc.SessionToken()
	require.ErrorIs(t, err, domain.ErrNoActiveSession)
}
