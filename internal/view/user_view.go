package view

import (
	"context"
	"fmt"

	"github.com/yourorg/projectdesk/internal/domain"
	"github.com/yourorg/projectdesk/internal/security"
	"github.com/yourorg/projectdesk/internal/service"
)

// UserView drives the user management menu.
type UserView struct {
	console *Console
	users   *service.UserService
	session *security.Session
}

// NewUserView builds the user menu.
func NewUserView(console *Console, users *service.UserService, session *security.Session) *UserView {
	return &UserView{console: console, users: users, session: session}
}

// Show runs the user menu loop until the user goes back.
func (v *UserView) Show(ctx context.Context) {
	for {
		v.console.ClearScreen()
		v.console.Title("User Management")

		canManage := v.session.HasPermission(security.PermManageUsers)
		if canManage {
			v.console.Println("1. Register user")
			v.console.Println("2. List users")
			v.console.Println("3. Deactivate user")
		}
		v.console.Println("4. View my profile")
		v.console.Println("5. Change my password")
		v.console.Println("0. Back")

		switch v.console.ReadInt("Choose an option: ") {
		case 1:
			if canManage {
				v.register(ctx)
			} else {
				v.console.Error("no permission for this action")
			}
		case 2:
			if canManage {
				v.list()
			} else {
				v.console.Error("no permission for this action")
			}
		case 3:
			if canManage {
				v.deactivate(ctx)
			} else {
				v.console.Error("no permission for this action")
			}
		case 4:
			v.profile()
		case 5:
			v.changePassword(ctx)
		case 0:
			return
		default:
			v.console.Error("invalid option")
		}
		v.console.Pause()
	}
}

func (v *UserView) register(ctx context.Context) {
	v.console.Title("Register User")

	in := service.RegisterInput{
		FullName: v.console.ReadString("Full name: "),
		TaxID:    v.console.ReadString("Tax id (11 digits): "),
		Email:    v.console.ReadString("Email: "),
		JobTitle: v.console.ReadString("Job title: "),
		Login:    v.console.ReadString("Login: "),
		Password: v.console.ReadString("Password: "),
	}

	roles := domain.Roles()
	v.console.Println("\nAvailable roles:")
	for i, r := range roles {
		v.console.Printf("%d. %s\n", i+1, r.DisplayName())
	}
	choice := v.console.ReadInt("Choose the role (number): ")
	if choice < 1 || choice > len(roles) {
		v.console.Error("invalid role")
		return
	}
	in.Role = roles[choice-1]

	user, err := v.users.Register(ctx, in)
	if err != nil {
		v.console.Error("register user: " + err.Error())
		return
	}
	v.console.Success("user registered")
	v.console.Println("ID: " + user.ID)
}

func (v *UserView) list() {
	v.console.Title("Users")
	all := v.users.List()
	if len(all) == 0 {
		v.console.Println("No users registered.")
		return
	}
	v.console.Printf("%-15s %-30s %-15s %-24s %-10s\n", "ID", "Name", "Login", "Email", "Status")
	v.console.Separator()
	for _, u := range all {
		status := "Active"
		if !u.Active {
			status = "Inactive"
		}
		v.console.Printf("%-15s %-30s %-15s %-24s %-10s\n",
			truncate(u.ID, 14), truncate(u.FullName, 28), u.Login, truncate(u.Email, 22), status)
	}
}

func (v *UserView) deactivate(ctx context.Context) {
	v.console.Title("Deactivate User")
	id := v.console.ReadString("User id: ")
	if err := v.users.Deactivate(ctx, id); err != nil {
		v.console.Error("deactivate user: " + err.Error())
		return
	}
	v.console.Success("user deactivated")
}

func (v *UserView) profile() {
	v.console.Title("My Profile")
	user, err := v.session.CurrentUser()
	if err != nil {
		v.console.Error(err.Error())
		return
	}

	status := "Active"
	if !user.Active {
		status = "Inactive"
	}
	v.console.Println("ID: " + user.ID)
	v.console.Println("Name: " + user.FullName)
	v.console.Println("Tax id: " + domain.FormatTaxID(user.TaxID))
	v.console.Println("Email: " + user.Email)
	v.console.Println("Job title: " + user.JobTitle)
	v.console.Println("Login: " + user.Login)
	v.console.Println("Role: " + user.Role.DisplayName())
	v.console.Println("Created: " + user.CreatedAt.Format("2006-01-02 15:04"))
	v.console.Println("Status: " + status)
	v.console.Println(fmt.Sprintf("Teams: %d", len(user.TeamIDs)))
	v.console.Println(fmt.Sprintf("Managed projects: %d", len(user.ProjectIDs)))

	teams := v.users.TeamsOf(user.ID)
	if len(teams) > 0 {
		v.console.Println("\nMember of:")
		for _, t := range teams {
			v.console.Println(" - " + t.Name + " (" + t.ID + ")")
		}
	}
}

func (v *UserView) changePassword(ctx context.Context) {
	v.console.Title("Change Password")
	current := v.console.ReadString("Current password: ")
	next := v.console.ReadString("New password: ")
	confirm := v.console.ReadString("Confirm new password: ")
	if next != confirm {
		v.console.Error("passwords do not match")
		return
	}
	if err := v.users.ChangePassword(ctx, current, next); err != nil {
		v.console.Error("change password: " + err.Error())
		return
	}
	v.console.Success("password changed")
}
