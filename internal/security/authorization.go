// Package security holds the role/permission table and the single active
// session that gates every workflow mutation.
package security

import (
	"github.com/yourorg/projectdesk/internal/domain"
)

// Permission represents a named action capability
type Permission string

const (
	PermCreateProject     Permission = "CREATE_PROJECT"
	PermEditProject       Permission = "EDIT_PROJECT"
	PermCancelProject     Permission = "CANCEL_PROJECT"
	PermReactivateProject Permission = "REACTIVATE_PROJECT"
	PermCreateTeam        Permission = "CREATE_TEAM"
	PermCreateTask        Permission = "CREATE_TASK"
	PermManageTasks       Permission = "MANAGE_TASKS"
	PermManageUsers       Permission = "MANAGE_USERS"
	PermAdmin             Permission = "ADMIN"
)

// RolePermissions maps roles to their permissions. Each tier is a strict
// superset of the one below it.
var RolePermissions = map[domain.Role][]Permission{
	domain.RoleAdministrator: {
		PermCreateProject,
		PermEditProject,
		PermCancelProject,
		PermReactivateProject,
		PermCreateTeam,
		PermCreateTask,
		PermManageTasks,
		PermManageUsers,
		PermAdmin,
	},
	domain.RoleManager: {
		PermCreateProject,
		PermEditProject,
		PermCancelProject,
		PermReactivateProject,
		PermCreateTeam,
		PermCreateTask,
		PermManageTasks,
	},
	domain.RoleCollaborator: {
		PermCreateTask,
	},
}

// RoleHasPermission checks if a role has a specific permission
func RoleHasPermission(role domain.Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}
	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}
