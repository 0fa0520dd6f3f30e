package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Team groups users under a creator. The creator is an implicit member: it
// never appears in MemberIDs but IsMember and MemberCount account for it,
// and it can never be removed.
type Team struct {
	ID          string // UUID
	Name        string
	Description string
	CreatorID   string // immutable, references User
	Active      bool
	MemberIDs   []string // unique, creator excluded
}

// NewTeam builds an active team with a generated id.
func NewTeam(name, description, creatorID string) (*Team, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrValidation)
	}
	if creatorID == "" {
		return nil, fmt.Errorf("%w: creator id is required", ErrValidation)
	}
	return &Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatorID:   creatorID,
		Active:      true,
	}, nil
}

// IsMember reports team membership, counting the creator.
func (t *Team) IsMember(userID string) bool {
	if userID == t.CreatorID {
		return true
	}
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AddMember adds a user id to the member set. Returns false without change
// when the user is already a member (the creator included).
func (t *Team) AddMember(userID string) bool {
	if t.IsMember(userID) {
		return false
	}
	t.MemberIDs = append(t.MemberIDs, userID)
	return true
}

// RemoveMember removes a user id from the member set. Returns false when
// the user is not an explicit member. Callers must reject the creator
// before calling; RemoveMember never touches it.
func (t *Team) RemoveMember(userID string) bool {
	for i, id := range t.MemberIDs {
		if id == userID {
			t.MemberIDs = append(t.MemberIDs[:i], t.MemberIDs[i+1:]...)
			return true
		}
	}
	return false
}

// MemberCount counts members including the implicit creator.
func (t *Team) MemberCount() int {
	return len(t.MemberIDs) + 1
}

// Clone returns an independent copy
func (t *Team) Clone() *Team {
	c := *t
	c.MemberIDs = append([]string(nil), t.MemberIDs...)
	return &c
}

// EntityID implements store.Entity
func (t *Team) EntityID() string { return t.ID }
