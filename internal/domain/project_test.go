package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProjectValidation(t *testing.T) {
	_, err := NewProject("", "desc", nil, nil, "mgr-1")
	require.ErrorIs(t, err, ErrValidation)

	_, err = NewProject("Website", "desc", nil, nil, "")
	require.ErrorIs(t, err, ErrValidation)

	p, err := NewProject("Website", "desc", nil, nil, "mgr-1")
	require.NoError(t, err)
	require.Equal(t, ProjectPlanned, p.Status)
	require.NotEmpty(t, p.ID)
}

func TestProjectCancelAndReactivate(t *testing.T) {
	p, err := NewProject("Website", "desc", nil, nil, "mgr-1")
	require.NoError(t, err)

	require.ErrorIs(t, p.Reactivate(), ErrNotCanceled)

	require.NoError(t, p.Cancel())
	require.True(t, p.IsCanceled())
	require.ErrorIs(t, p.Cancel(), ErrAlreadyCanceled)

	require.NoError(t, p.Reactivate())
	require.Equal(t, ProjectPlanned, p.Status)
}

func TestProjectAddTaskDeduplicates(t *testing.T) {
	p, err := NewProject("Website", "desc", nil, nil, "mgr-1")
	require.NoError(t, err)

	p.AddTask("task-1")
	p.AddTask("task-1")
	p.AddTask("task-2")
	require.Equal(t, 2, p.TaskCount())
}
