package view

import (
	"context"
	"fmt"

	"github.com/yourorg/projectdesk/internal/audit"
	"github.com/yourorg/projectdesk/internal/service"
)

// TeamView drives the team management menu.
type TeamView struct {
	console  *Console
	teams    *service.TeamService
	auditLog *audit.Log
}

// NewTeamView builds the team menu.
func NewTeamView(console *Console, teams *service.TeamService, auditLog *audit.Log) *TeamView {
	return &TeamView{console: console, teams: teams, auditLog: auditLog}
}

// Show runs the team menu loop until the user goes back.
func (v *TeamView) Show(ctx context.Context) {
	for {
		v.console.ClearScreen()
		v.console.Title("Team Management")
		v.console.Println("1. Create team")
		v.console.Println("2. List teams")
		v.console.Println("3. Inspect team")
		v.console.Println("4. Edit team")
		v.console.Println("5. Add member")
		v.console.Println("6. Remove member")
		v.console.Println("7. Toggle active (admin)")
		v.console.Println("0. Back")

		switch v.console.ReadInt("Choose an option: ") {
		case 1:
			v.create(ctx)
		case 2:
			v.list()
		case 3:
			v.inspect()
		case 4:
			v.edit(ctx)
		case 5:
			v.addMember(ctx)
		case 6:
			v.removeMember(ctx)
		case 7:
			v.toggleActive(ctx)
		case 0:
			return
		default:
			v.console.Error("invalid option")
		}
		v.console.Pause()
	}
}

func (v *TeamView) create(ctx context.Context) {
	v.console.Title("Create Team")
	in := service.CreateTeamInput{
		Name:        v.console.ReadString("Team name: "),
		Description: v.console.ReadString("Description: "),
	}
	team, err := v.teams.Create(ctx, in)
	if err != nil {
		v.console.Error("create team: " + err.Error())
		return
	}
	v.console.Success("team created with ID: " + team.ID)
}

func (v *TeamView) list() {
	v.console.Title("Registered Teams")
	all := v.teams.List()
	if len(all) == 0 {
		v.console.Println("No teams registered.")
		return
	}
	for _, t := range all {
		status := "active"
		if !t.Active {
			status = "inactive"
		}
		v.console.Printf("%s  %-30s members=%d  %s\n", t.ID, truncate(t.Name, 30), t.MemberCount(), status)
	}
}

func (v *TeamView) inspect() {
	id := v.console.ReadString("Team id: ")
	team, err := v.teams.Get(id)
	if err != nil {
		v.console.Error("team not found")
		return
	}
	v.console.Title("Team: " + team.Name)
	active := "yes"
	if !team.Active {
		active = "no"
	}
	v.console.Println("ID: " + team.ID)
	v.console.Println("Description: " + team.Description)
	v.console.Println("Creator: " + team.CreatorID)
	v.console.Println("Active: " + active)
	v.console.Println(fmt.Sprintf("Members: %d", team.MemberCount()))
	v.console.Println(fmt.Sprintf("Linked projects: %d", v.teams.ProjectCount(team.ID)))

	members, err := v.teams.Members(team.ID)
	if err == nil {
		for _, m := range members {
			v.console.Println(" - " + m.FullName + " (" + m.ID + ")")
		}
	}

	printHistory(v.console, v.auditLog, team.ID)
}

func (v *TeamView) edit(ctx context.Context) {
	id := v.console.ReadString("Team id to edit: ")
	in := service.EditTeamInput{
		Name:        v.console.ReadString("New name (enter to keep): "),
		Description: v.console.ReadString("New description (enter to keep): "),
	}
	if err := v.teams.Edit(ctx, id, in); err != nil {
		v.console.Error("edit team: " + err.Error())
		return
	}
	v.console.Success("team updated")
}

func (v *TeamView) addMember(ctx context.Context) {
	teamID := v.console.ReadString("Team id: ")
	userID := v.console.ReadString("User id to add: ")
	if err := v.teams.AddMember(ctx, teamID, userID); err != nil {
		v.console.Error("add member: " + err.Error())
		return
	}
	v.console.Success("member added")
}

func (v *TeamView) removeMember(ctx context.Context) {
	teamID := v.console.ReadString("Team id: ")
	userID := v.console.ReadString("User id to remove: ")
	if err := v.teams.RemoveMember(ctx, teamID, userID); err != nil {
		v.console.Error("remove member: " + err.Error())
		return
	}
	v.console.Success("member removed")
}

func (v *TeamView) toggleActive(ctx context.Context) {
	teamID := v.console.ReadString("Team id: ")
	active, err := v.teams.ToggleActive(ctx, teamID)
	if err != nil {
		v.console.Error("toggle team: " + err.Error())
		return
	}
	if active {
		v.console.Success("team is now active")
	} else {
		v.console.Success("team is now inactive")
	}
}
