package view

import (
	"context"
	"fmt"

	"github.com/yourorg/projectdesk/internal/audit"
	"github.com/yourorg/projectdesk/internal/service"
)

// ProjectView drives the project management menu.
type ProjectView struct {
	console  *Console
	projects *service.ProjectService
	auditLog *audit.Log
}

// NewProjectView builds the project menu.
func NewProjectView(console *Console, projects *service.ProjectService, auditLog *audit.Log) *ProjectView {
	return &ProjectView{console: console, projects: projects, auditLog: auditLog}
}

// Show runs the project menu loop until the user goes back.
func (v *ProjectView) Show(ctx context.Context) {
	for {
		v.console.ClearScreen()
		v.console.Title("Project Management")
		v.console.Println("1. Create project")
		v.console.Println("2. List projects")
		v.console.Println("3. Inspect project")
		v.console.Println("4. Edit project")
		v.console.Println("5. Cancel project")
		v.console.Println("6. Reactivate project")
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
			v.cancel(ctx)
		case 6:
			v.reactivate(ctx)
		case 0:
			return
		default:
			v.console.Error("invalid option")
		}
		v.console.Pause()
	}
}

func (v *ProjectView) create(ctx context.Context) {
	v.console.Title("Create Project")
	in := service.CreateProjectInput{
		Name:        v.console.ReadString("Project name: "),
		Description: v.console.ReadString("Description: "),
	}
	start, err := v.console.ReadDate("Start date (yyyy-mm-dd) [optional]: ")
	if err != nil {
		v.console.Error(err.Error())
		return
	}
	planned, err := v.console.ReadDate("Planned end (yyyy-mm-dd) [optional]: ")
	if err != nil {
		v.console.Error(err.Error())
		return
	}
	in.StartDate = start
	in.PlannedEnd = planned
	in.ManagerID = v.console.ReadString("Manager user id: ")

	project, err := v.projects.Create(ctx, in)
	if err != nil {
		v.console.Error("create project: " + err.Error())
		return
	}
	v.console.Success("project created with ID: " + project.ID)
}

func (v *ProjectView) list() {
	v.console.Title("Projects")
	all := v.projects.List()
	if len(all) == 0 {
		v.console.Println("No projects registered.")
		return
	}
	for _, p := range all {
		v.console.Printf("%s  %-30s %-12s manager=%s\n",
			p.ID, truncate(p.Name, 30), p.Status.DisplayName(), p.ManagerID)
	}
}

func (v *ProjectView) inspect() {
	id := v.console.ReadString("Project id: ")
	p, err := v.projects.Get(id)
	if err != nil {
		v.console.Error("project not found")
		return
	}
	teams, tasks := v.projects.Counts(p.ID)

	v.console.Title("Project: " + p.Name)
	v.console.Println("ID: " + p.ID)
	v.console.Println("Description: " + p.Description)
	v.console.Println("Manager: " + p.ManagerID)
	v.console.Println("Start date: " + formatDate(p.StartDate))
	v.console.Println("Planned end: " + formatDate(p.PlannedEnd))
	v.console.Println("Actual end: " + formatDate(p.ActualEnd))
	v.console.Println("Status: " + p.Status.DisplayName())
	v.console.Println(fmt.Sprintf("Linked teams: %d", teams))
	v.console.Println(fmt.Sprintf("Linked tasks: %d", tasks))

	printHistory(v.console, v.auditLog, p.ID)
}

func (v *ProjectView) edit(ctx context.Context) {
	id := v.console.ReadString("Project id to edit: ")
	in := service.EditProjectInput{
		Name:        v.console.ReadString("New name (enter to keep): "),
		Description: v.console.ReadString("New description (enter to keep): "),
	}
	start, err := v.console.ReadDate("New start date (yyyy-mm-dd) or empty: ")
	if err != nil {
		v.console.Error(err.Error())
		return
	}
	planned, err := v.console.ReadDate("New planned end (yyyy-mm-dd) or empty: ")
	if err != nil {
		v.console.Error(err.Error())
		return
	}
	in.StartDate = start
	in.PlannedEnd = planned

	if err := v.projects.Edit(ctx, id, in); err != nil {
		v.console.Error("edit project: " + err.Error())
		return
	}
	v.console.Success("project updated")
}

func (v *ProjectView) cancel(ctx context.Context) {
	id := v.console.ReadString("Project id to cancel: ")
	if err := v.projects.Cancel(ctx, id); err != nil {
		v.console.Error("cancel project: " + err.Error())
		return
	}
	v.console.Success("project canceled, it stays in history until removal")
}

func (v *ProjectView) reactivate(ctx context.Context) {
	id := v.console.ReadString("Project id to reactivate: ")
	if err := v.projects.Reactivate(ctx, id); err != nil {
		v.console.Error("reactivate project: " + err.Error())
		return
	}
	v.console.Success("project reactivated and open for changes")
}
