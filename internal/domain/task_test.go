package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewTaskStartsPending(t *testing.T) {
	task := NewTask("Ship report", "Quarterly numbers", "proj-1", "team-1")

	require.NotEmpty(t, task.ID)
	require.Equal(t, TaskPending, task.Status)
	require.True(t, task.FieldsComplete)
	require.Empty(t, task.AssigneeID)
	require.Nil(t, task.CompletedAt)
}

func TestNewTaskAllowsIncompleteFields(t *testing.T) {
	task := NewTask("", "", "proj-1", "team-1")

	require.Equal(t, TaskPending, task.Status)
	require.False(t, task.FieldsComplete)
}

func TestTaskStart(t *testing.T) {
	task := NewTask("Ship report", "Quarterly numbers", "proj-1", "team-1")

	require.NoError(t, task.Start("user-1"))
	require.Equal(t, TaskInProgress, task.Status)
	require.Equal(t, "user-1", task.AssigneeID)

	err := task.Start("user-2")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Equal(t, "user-1", task.AssigneeID)
}

func TestTaskStartRequiresCompleteFields(t *testing.T) {
	task := NewTask("Ship report", "", "proj-1", "team-1")

	err := task.Start("user-1")
	require.ErrorIs(t, err, ErrFieldsIncomplete)
	require.Equal(t, TaskPending, task.Status)

	task.Description = "Quarterly numbers"
	require.NoError(t, task.Start("user-1"))
}

func TestTaskComplete(t *testing.T) {
	task := NewTask("Ship report", "Quarterly numbers", "proj-1", "team-1")

	err := task.Complete()
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, task.Start("user-1"))
	require.NoError(t, task.Complete())
	require.Equal(t, TaskCompleted, task.Status)
	require.NotNil(t, task.CompletedAt)
	require.False(t, task.CompletedAt.Before(task.CreatedAt))

	err = task.Complete()
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTaskCloneIsIndependent(t *testing.T) {
	due := time.Now().Add(48 * time.Hour)
	task := NewTask("Ship report", "Quarterly numbers", "proj-1", "team-1")
	task.DueAt = &due

	clone := task.Clone()
	clone.Title = "Changed"
	*clone.DueAt = clone.DueAt.Add(time.Hour)

	require.Equal(t, "Ship report", task.Title)
	require.Equal(t, due, *task.DueAt)
}
