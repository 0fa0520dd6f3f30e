package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yourorg/projectdesk/internal/domain"
)

func TestCreateTeamDefaultsCreatorToActor(t *testing.T) {
	f := newFixture(t)

	team := f.createTeam(t)
	require.Equal(t, f.admin.ID, team.CreatorID)
	require.True(t, team.IsMember(f.admin.ID))

	admin, err := f.userSvc.Get(f.admin.ID)
	require.NoError(t, err)
	require.Contains(t, admin.TeamIDs, team.ID)
}

func TestCreateTeamRequiresPermission(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t, "collab", domain.RoleCollaborator)
	f.loginAs(t, "collab", "secret1")

	_, err := f.teamSvc.Create(context.Background(), CreateTeamInput{Name: "Nope"})
	require.ErrorIs(t, err, domain.ErrPermissionDenied)
}

func TestCreateTeamRejectsUnknownCreator(t *testing.T) {
	f := newFixture(t)

	_, err := f.teamSvc.Create(context.Background(), CreateTeamInput{
		Name:      "Platform",
		CreatorID: "ghost",
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCollaboratorSingleTeamRule(t *testing.T) {
	f := newFixture(t)
	collab := f.registerUser(t, "collab", domain.RoleCollaborator)
	mgr := f.registerUser(t, "mgr", domain.RoleManager)
	teamA := f.createTeam(t)
	teamB := f.createTeam(t)

	require.NoError(t, f.teamSvc.AddMember(context.Background(), teamA.ID, collab.ID))

	err := f.teamSvc.AddMember(context.Background(), teamB.ID, collab.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyInAnotherTeam)

	// managers may belong to several teams
	require.NoError(t, f.teamSvc.AddMember(context.Background(), teamA.ID, mgr.ID))
	require.NoError(t, f.teamSvc.AddMember(context.Background(), teamB.ID, mgr.ID))
}

func TestAddMemberRejectsDuplicates(t *testing.T) {
	f := newFixture(t)
	collab := f.registerUser(t, "collab", domain.RoleCollaborator)
	team := f.createTeam(t)

	require.NoError(t, f.teamSvc.AddMember(context.Background(), team.ID, collab.ID))
	err := f.teamSvc.AddMember(context.Background(), team.ID, collab.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyMember)

	// the creator counts as a member from the start
	err = f.teamSvc.AddMember(context.Background(), team.ID, f.admin.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyMember)
}

func TestAddMemberUnknownTargets(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t)

	require.ErrorIs(t, f.teamSvc.AddMember(context.Background(), "ghost", f.admin.ID), domain.ErrNotFound)
	require.ErrorIs(t, f.teamSvc.AddMember(context.Background(), team.ID, "ghost"), domain.ErrNotFound)
}

func TestRemoveCreatorAlwaysFails(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t)

	// even the administrator cannot remove the creator
	err := f.teamSvc.RemoveMember(context.Background(), team.ID, team.CreatorID)
	require.ErrorIs(t, err, domain.ErrCannotRemoveCreator)
}

func TestRemoveMemberPermissions(t *testing.T) {
	f := newFixture(t)
	collab := f.registerUser(t, "collab", domain.RoleCollaborator)
	other := f.registerUser(t, "other", domain.RoleManager)
	team := f.createTeam(t)
	require.NoError(t, f.teamSvc.AddMember(context.Background(), team.ID, collab.ID))
	require.NoError(t, f.teamSvc.AddMember(context.Background(), team.ID, other.ID))

	// an unrelated member cannot remove someone else
	f.loginAs(t, "other", "secret1")
	err := f.teamSvc.RemoveMember(context.Background(), team.ID, collab.ID)
	require.ErrorIs(t, err, domain.ErrPermissionDenied)

	// members can leave on their own
	f.loginAs(t, "collab", "secret1")
	require.NoError(t, f.teamSvc.RemoveMember(context.Background(), team.ID, collab.ID))

	got, err := f.teamSvc.Get(team.ID)
	require.NoError(t, err)
	require.False(t, got.IsMember(collab.ID))

	user, err := f.userSvc.Get(collab.ID)
	require.NoError(t, err)
	require.NotContains(t, user.TeamIDs, team.ID)
}

func TestRemoveMemberNotMember(t *testing.T) {
	f := newFixture(t)
	stranger := f.registerUser(t, "stranger", domain.RoleManager)
	team := f.createTeam(t)

	err := f.teamSvc.RemoveMember(context.Background(), team.ID, stranger.ID)
	require.ErrorIs(t, err, domain.ErrNotMember)
}

func TestEditTeamCreatorOrAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t, "mgr", domain.RoleManager)
	team := f.createTeam(t) // created by admin

	f.loginAs(t, "mgr", "secret1")
	err := f.teamSvc.Edit(context.Background(), team.ID, EditTeamInput{Name: "Hijacked"})
	require.ErrorIs(t, err, domain.ErrPermissionDenied)

	// the creator edits freely, empty fields keep current values
	f.loginAs(t, testAdminLogin, testAdminPassword)
	require.NoError(t, f.teamSvc.Edit(context.Background(), team.ID, EditTeamInput{Description: "updated"}))

	got, err := f.teamSvc.Get(team.ID)
	require.NoError(t, err)
	require.Equal(t, team.Name, got.Name)
	require.Equal(t, "updated", got.Description)
}

func TestToggleActiveAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t, "mgr", domain.RoleManager)
	team := f.createTeam(t)

	f.loginAs(t, "mgr", "secret1")
	_, err := f.teamSvc.ToggleActive(context.Background(), team.ID)
	require.ErrorIs(t, err, domain.ErrPermissionDenied)

	f.loginAs(t, testAdminLogin, testAdminPassword)
	active, err := f.teamSvc.ToggleActive(context.Background(), team.ID)
	require.NoError(t, err)
	require.False(t, active)

	active, err = f.teamSvc.ToggleActive(context.Background(), team.ID)
	require.NoError(t, err)
	require.True(t, active)
}

func TestTeamProjectCountDerivedFromTasks(t *testing.T) {
	f := newFixture(t)
	team := f.createTeam(t)
	projA := f.createProject(t, f.admin.ID)
	projB := f.createProject(t, f.admin.ID)

	require.Equal(t, 0, f.teamSvc.ProjectCount(team.ID))

	f.createTask(t, projA.ID, team.ID)
	f.createTask(t, projA.ID, team.ID)
	f.createTask(t, projB.ID, team.ID)

	require.Equal(t, 2, f.teamSvc.ProjectCount(team.ID))
}
