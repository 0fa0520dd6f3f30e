package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role represents a user role tier
type Role string

const (
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleManager       Role = "MANAGER"
	RoleCollaborator  Role = "COLLABORATOR"
)

// Roles lists all role tiers in decreasing permission scope.
func Roles() []Role {
	return []Role{RoleAdministrator, RoleManager, RoleCollaborator}
}

// DisplayName returns a human readable role label
func (r Role) DisplayName() string {
	switch r {
	case RoleAdministrator:
		return "Administrator"
	case RoleManager:
		return "Manager"
	case RoleCollaborator:
		return "Collaborator"
	default:
		return string(r)
	}
}

// CanManage reports whether a user with this role may create or edit a user
// holding the other role. Administrators manage everyone, managers manage
// collaborators only.
func (r Role) CanManage(other Role) bool {
	switch r {
	case RoleAdministrator:
		return true
	case RoleManager:
		return other == RoleCollaborator
	default:
		return false
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a system user
type User struct {
	ID        string // UUID
	FullName  string
	TaxID     string // normalized 11-digit CPF
	Email     string // unique
	JobTitle  string
	Login     string // unique
	Password  string // compared verbatim on login
	Role      Role
	Active    bool
	CreatedAt time.Time

	// Derived caches maintained by the workflow layer. The stores'
	// secondary scans remain the source of truth for these relations.
	TeamIDs    []string
	ProjectIDs []string
}

// NewUser builds an active user with a generated id. Inputs are assumed to
// be already validated; see ValidateTaxID and ValidateEmail.
func NewUser(fullName, taxID, email, jobTitle, login, password string, role Role) *User {
	return &User{
		ID:        uuid.NewString(),
		FullName:  fullName,
		TaxID:     taxID,
		Email:     email,
		JobTitle:  jobTitle,
		Login:     login,
		Password:  password,
		Role:      role,
		Active:    true,
		CreatedAt: time.Now(),
	}
}

// NormalizeTaxID strips formatting separators from a CPF-style tax id.
func NormalizeTaxID(taxID string) string {
	replacer := strings.NewReplacer(".", "", "-", "", " ", "")
	return replacer.Replace(taxID)
}

// ValidateTaxID checks that the tax id is exactly 11 digits after
// normalization.
func ValidateTaxID(taxID string) error {
	normalized := NormalizeTaxID(taxID)
	if len(normalized) != 11 {
		return fmt.Errorf("%w: tax id must have 11 digits", ErrValidation)
	}
	for _, c := range normalized {
		if c < '0' || c > '9' {
			return fmt.Errorf("%w: tax id must contain only digits", ErrValidation)
		}
	}
	return nil
}

// FormatTaxID renders a normalized tax id as 000.000.000-00.
func FormatTaxID(taxID string) string {
	n := NormalizeTaxID(taxID)
	if len(n) != 11 {
		return taxID
	}
	return fmt.Sprintf("%s.%s.%s-%s", n[0:3], n[3:6], n[6:9], n[9:11])
}

// ValidateEmail checks basic email shape.
func ValidateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: malformed email %q", ErrValidation, email)
	}
	return nil
}

// MinPasswordLength is the minimum accepted password size.
const MinPasswordLength = 6

// ValidatePassword enforces the minimum password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must have at least %d characters", ErrValidation, MinPasswordLength)
	}
	return nil
}

// Validate checks the user's required fields.
func (u *User) Validate() error {
	if u.FullName == "" {
		return fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if u.JobTitle == "" {
		return fmt.Errorf("%w: job title is required", ErrValidation)
	}
	if u.Login == "" {
		return fmt.Errorf("%w: login is required", ErrValidation)
	}
	if err := ValidateTaxID(u.TaxID); err != nil {
		return err
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	return ValidatePassword(u.Password)
}

// Clone returns an independent copy
func (u *User) Clone() *User {
	c := *u
	c.TeamIDs = append([]string(nil), u.TeamIDs...)
	c.ProjectIDs = append([]string(nil), u.ProjectIDs...)
	return &c
}

// EntityID implements store.Entity
func (u *User) EntityID() string { return u.ID }
