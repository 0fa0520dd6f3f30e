package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yourorg/projectdesk/internal/audit"
	"github.com/yourorg/projectdesk/internal/domain"
	"github.com/yourorg/projectdesk/internal/observability/metrics"
	"github.com/yourorg/projectdesk/internal/security"
	"github.com/yourorg/projectdesk/internal/store"
)

// TeamService handles team lifecycle and membership rules.
type TeamService struct {
	teams    *store.Teams
	users    *store.Users
	tasks    *store.Tasks
	session  *security.Session
	auditLog *audit.Log
	log      *zap.SugaredLogger
}

// NewTeamService constructs the team workflow service.
func NewTeamService(
	teams *store.Teams,
	users *store.Users,
	tasks *store.Tasks,
	session *security.Session,
	auditLog *audit.Log,
	log *zap.SugaredLogger,
) *TeamService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &TeamService{
		teams:    teams,
		users:    users,
		tasks:    tasks,
		session:  session,
		auditLog: auditLog,
		log:      log,
	}
}

// CreateTeamInput carries the fields for team creation. An empty CreatorID
// defaults to the acting user.
type CreateTeamInput struct {
	Name        string
	Description string
	CreatorID   string
}

// Create builds an active team. Requires CREATE_TEAM. The creator is an
// implicit member from the start and can never be removed.
func (s *TeamService) Create(ctx context.Context, in CreateTeamInput) (team *domain.Team, err error) {
	_, span := tracer.Start(ctx, "team.create")
	defer span.End()
	defer func() { observe("create_team", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return nil, err
	}
	if !s.session.HasPermission(security.PermCreateTeam) {
		return nil, fmt.Errorf("%w: creating teams requires CREATE_TEAM", domain.ErrPermissionDenied)
	}

	creatorID := in.CreatorID
	if creatorID == "" {
		creatorID = actor.ID
	} else if _, ok := s.users.FindByID(creatorID); !ok {
		return nil, fmt.Errorf("%w: creator user %s", domain.ErrNotFound, creatorID)
	}

	team, err = domain.NewTeam(in.Name, in.Description, creatorID)
	if err != nil {
		return nil, err
	}
	s.teams.Save(team)
	metrics.SetEntityCount("teams", s.teams.Len())

	_ = s.users.Update(creatorID, func(u *domain.User) (*domain.User, error) {
		u.TeamIDs = append(u.TeamIDs, team.ID)
		return u, nil
	})

	s.auditLog.Record(actor.ID, "CREATE_TEAM", team.ID, "team created: "+in.Name)
	s.log.Infow("team created", "team_id", team.ID, "creator_id", creatorID)
	return team, nil
}

// EditTeamInput carries partial updates: empty means "keep current value".
type EditTeamInput struct {
	Name        string
	Description string
}

// Edit renames or re-describes a team. Only the creator or an ADMIN may
// edit.
func (s *TeamService) Edit(ctx context.Context, teamID string, in EditTeamInput) (err error) {
	_, span := tracer.Start(ctx, "team.edit")
	defer span.End()
	defer func() { observe("edit_team", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	err = s.teams.Update(teamID, func(t *domain.Team) (*domain.Team, error) {
		if actor.ID != t.CreatorID && !security.RoleHasPermission(actor.Role, security.PermAdmin) {
			return nil, fmt.Errorf("%w: only the creator or an administrator may edit team %s", domain.ErrPermissionDenied, teamID)
		}
		if in.Name != "" {
			t.Name = in.Name
		}
		if in.Description != "" {
			t.Description = in.Description
		}
		return t, nil
	})
	if err != nil {
		return err
	}
	s.auditLog.Record(actor.ID, "EDIT_TEAM", teamID, "team edited")
	return nil
}

// AddMember adds a user to a team. Collaborators may belong to at most one
// team at a time; the rule runs before any mutation. Adding an existing
// member (the creator included) reports AlreadyMember without change.
func (s *TeamService) AddMember(ctx context.Context, teamID, userID string) (err error) {
	_, span := tracer.Start(ctx, "team.add_member")
	defer span.End()
	defer func() { observe("add_team_member", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	if _, ok := s.teams.FindByID(teamID); !ok {
		return fmt.Errorf("%w: team %s", domain.ErrNotFound, teamID)
	}
	user, ok := s.users.FindByID(userID)
	if !ok {
		return fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	}

	if user.Role == domain.RoleCollaborator {
		memberships := s.teams.FindByMemberID(userID)
		for _, m := range memberships {
			if m.ID != teamID {
				return fmt.Errorf("%w: user %s is a collaborator already in team %s", domain.ErrAlreadyInAnotherTeam, userID, m.ID)
			}
		}
	}

	err = s.teams.Update(teamID, func(t *domain.Team) (*domain.Team, error) {
		if !t.AddMember(userID) {
			return nil, fmt.Errorf("%w: user %s in team %s", domain.ErrAlreadyMember, userID, teamID)
		}
		return t, nil
	})
	if err != nil {
		return err
	}

	_ = s.users.Update(userID, func(u *domain.User) (*domain.User, error) {
		u.TeamIDs = append(u.TeamIDs, teamID)
		return u, nil
	})

	s.auditLog.Record(actor.ID, "ADD_TEAM_MEMBER", teamID, "added member="+userID)
	s.log.Infow("team member added", "team_id", teamID, "user_id", userID)
	return nil
}

// RemoveMember removes a user from a team. The creator can never be
// removed. Allowed for the creator, an ADMIN, or the user themself.
func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID string) (err error) {
	_, span := tracer.Start(ctx, "team.remove_member")
	defer span.End()
	defer func() { observe("remove_team_member", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return err
	}
	err = s.teams.Update(teamID, func(t *domain.Team) (*domain.Team, error) {
		if userID == t.CreatorID {
			return nil, fmt.Errorf("%w: team %s", domain.ErrCannotRemoveCreator, teamID)
		}
		isCreator := actor.ID == t.CreatorID
		isAdmin := security.RoleHasPermission(actor.Role, security.PermAdmin)
		isSelf := actor.ID == userID
		if !isCreator && !isAdmin && !isSelf {
			return nil, fmt.Errorf("%w: only the creator, an administrator or the user may remove membership", domain.ErrPermissionDenied)
		}
		if !t.RemoveMember(userID) {
			return nil, fmt.Errorf("%w: user %s in team %s", domain.ErrNotMember, userID, teamID)
		}
		return t, nil
	})
	if err != nil {
		return err
	}

	_ = s.users.Update(userID, func(u *domain.User) (*domain.User, error) {
		for i, id := range u.TeamIDs {
			if id == teamID {
				u.TeamIDs = append(u.TeamIDs[:i], u.TeamIDs[i+1:]...)
				break
			}
		}
		return u, nil
	})

	s.auditLog.Record(actor.ID, "REMOVE_TEAM_MEMBER", teamID, "removed member="+userID)
	s.log.Infow("team member removed", "team_id", teamID, "user_id", userID)
	return nil
}

// ToggleActive flips the team's active flag. Strictly ADMIN, no ownership
// override.
func (s *TeamService) ToggleActive(ctx context.Context, teamID string) (active bool, err error) {
	_, span := tracer.Start(ctx, "team.toggle_active")
	defer span.End()
	defer func() { observe("toggle_team_active", err) }()

	actor, err := s.session.CurrentUser()
	if err != nil {
		return false, err
	}
	if !s.session.HasPermission(security.PermAdmin) {
		return false, fmt.Errorf("%w: only administrators may toggle teams", domain.ErrPermissionDenied)
	}
	err = s.teams.Update(teamID, func(t *domain.Team) (*domain.Team, error) {
		t.Active = !t.Active
		active = t.Active
		return t, nil
	})
	if err != nil {
		return false, err
	}
	s.auditLog.Record(actor.ID, "TOGGLE_TEAM_ACTIVE", teamID, fmt.Sprintf("active=%t", active))
	return active, nil
}

// Get returns a team snapshot.
func (s *TeamService) Get(teamID string) (*domain.Team, error) {
	team, ok := s.teams.FindByID(teamID)
	if !ok {
		return nil, fmt.Errorf("%w: team %s", domain.ErrNotFound, teamID)
	}
	return team, nil
}

// List returns all teams in creation order.
func (s *TeamService) List() []*domain.Team {
	return s.teams.FindAll()
}

// Members resolves a team's members to user snapshots, creator first.
func (s *TeamService) Members(teamID string) ([]*domain.User, error) {
	team, err := s.Get(teamID)
	if err != nil {
		return nil, err
	}
	var members []*domain.User
	if creator, ok := s.users.FindByID(team.CreatorID); ok {
		members = append(members, creator)
	}
	for _, id := range team.MemberIDs {
		if u, ok := s.users.FindByID(id); ok {
			members = append(members, u)
		}
	}
	return members, nil
}

// ProjectCount returns the derived count of distinct projects the team
// works on, computed from the task store on demand.
func (s *TeamService) ProjectCount(teamID string) int {
	seen := make(map[string]struct{})
	for _, t := range s.tasks.FindByTeamID(teamID) {
		if t.ProjectID != "" {
			seen[t.ProjectID] = struct{}{}
		}
	}
	return len(seen)
}
