// Package domain contains the core entities, their state machines and errors.
package domain

import "errors"

var (
	// ErrNotFound is returned when an entity id is absent from its store.
	ErrNotFound = errors.New("not found")
	// ErrPermissionDenied signals a failed role or ownership check.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrNoActiveSession signals an operation that requires a logged-in user.
	ErrNoActiveSession = errors.New("no active session")
	// ErrValidation signals malformed or missing required input.
	ErrValidation = errors.New("validation failed")
	// ErrAlreadyCanceled signals cancellation of an already canceled project.
	ErrAlreadyCanceled = errors.New("project already canceled")
	// ErrNotCanceled signals reactivation of a project that is not canceled.
	ErrNotCanceled = errors.New("project not canceled")
	// ErrProjectCanceled signals a mutation blocked by a canceled project.
	ErrProjectCanceled = errors.New("project canceled")
	// ErrInvalidTransition signals an illegal task status transition.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrFieldsIncomplete signals a task whose required fields are not filled.
	ErrFieldsIncomplete = errors.New("required fields incomplete")
	// ErrAlreadyMember signals adding a user who is already a team member.
	ErrAlreadyMember = errors.New("already a member")
	// ErrNotMember signals removing a user who is not a team member.
	ErrNotMember = errors.New("not a member")
	// ErrCannotRemoveCreator signals removal of a team's creator.
	ErrCannotRemoveCreator = errors.New("cannot remove team creator")
	// ErrAlreadyInAnotherTeam signals the one-team rule for collaborators.
	ErrAlreadyInAnotherTeam = errors.New("already in another team")
	// ErrInvalidCredentials signals a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
