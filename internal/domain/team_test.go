package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewTeamValidation(t *testing.T) {
	_, err := NewTeam("", "desc", "creator-1")
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewTeam("Platform", "desc", "")
	require.ErrorIs(t, err, ErrValidation)

	team, err := NewTeam("Platform", "desc", "creator-1")
	require.NoError(t, err)
	require.True(t, team.Active)
	require.Empty(t, team.MemberIDs)
}

func TestTeamCreatorIsImplicitMember(t *testing.T) {
	team, err := NewTeam("Platform", "desc", "creator-1")
	require.NoError(t, err)

	require.True(t, team.IsMember("creator-1"))
	require.Equal(t, 1, team.MemberCount())

	require.False(t, team.AddMember("creator-1"))
	require.Empty(t, team.MemberIDs)

	require.False(t, team.RemoveMember("creator-1"))
	require.True(t, team.IsMember("creator-1"))
}

func TestTeamAddAndRemoveMember(t *testing.T) {
	team, err := NewTeam("Platform", "desc", "creator-1")
	require.NoError(t, err)

	require.True(t, team.AddMember("user-1"))
	require.False(t, team.AddMember("user-1"))
	require.True(t, team.IsMember("user-1"))
	require.Equal(t, 2, team.MemberCount())

	require.True(t, team.RemoveMember("user-1"))
	require.False(t, team.RemoveMember("user-1"))
	require.False(t, team.IsMember("user-1"))
}
