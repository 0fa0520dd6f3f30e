package store

import "github.com/yourorg/projectdesk/internal/domain"

// Users stores User records with unique-key scans.
type Users struct {
	*Store[*domain.User]
}

// NewUsers constructs an empty user store.
func NewUsers() *Users {
	return &Users{Store: New[*domain.User]()}
}

// FindByTaxID scans for a user by normalized tax id.
func (s *Users) FindByTaxID(taxID string) (*domain.User, bool) {
	want := domain.NormalizeTaxID(taxID)
	return s.FindFirst(func(u *domain.User) bool {
		return domain.NormalizeTaxID(u.TaxID) == want
	})
}

// FindByEmail scans for a user by email.
func (s *Users) FindByEmail(email string) (*domain.User, bool) {
	return s.FindFirst(func(u *domain.User) bool { return u.Email == email })
}

// FindByLogin scans for a user by login.
func (s *Users) FindByLogin(login string) (*domain.User, bool) {
	return s.FindFirst(func(u *domain.User) bool { return u.Login == login })
}

// Teams stores Team records with membership scans.
type Teams struct {
	*Store[*domain.Team]
}

// NewTeams constructs an empty team store.
func NewTeams() *Teams {
	return &Teams{Store: New[*domain.Team]()}
}

// FindByMemberID returns every team the user belongs to. The creator counts
// as an implicit member.
func (s *Teams) FindByMemberID(userID string) []*domain.Team {
	return s.Find(func(t *domain.Team) bool { return t.IsMember(userID) })
}

// Projects stores Project records.
type Projects struct {
	*Store[*domain.Project]
}

// NewProjects constructs an empty project store.
func NewProjects() *Projects {
	return &Projects{Store: New[*domain.Project]()}
}

// FindByManagerID returns every project managed by the user.
func (s *Projects) FindByManagerID(managerID string) []*domain.Project {
	return s.Find(func(p *domain.Project) bool { return p.ManagerID == managerID })
}

// Tasks stores Task records.
type Tasks struct {
	*Store[*domain.Task]
}

// NewTasks constructs an empty task store.
func NewTasks() *Tasks {
	return &Tasks{Store: New[*domain.Task]()}
}

// FindByProjectID returns every task linked to the project.
func (s *Tasks) FindByProjectID(projectID string) []*domain.Task {
	return s.Find(func(t *domain.Task) bool { return t.ProjectID == projectID })
}

// FindByTeamID returns every task assigned to the team.
func (s *Tasks) FindByTeamID(teamID string) []*domain.Task {
	return s.Find(func(t *domain.Task) bool { return t.TeamID == teamID })
}
