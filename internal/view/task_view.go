package view

import (
	"context"
	"time"

	"github.com/yourorg/projectdesk/internal/audit"
	"github.com/yourorg/projectdesk/internal/service"
)

// TaskView drives the task management menu.
type TaskView struct {
	console  *Console
	tasks    *service.TaskService
	auditLog *audit.Log
}

// NewTaskView builds the task menu.
func NewTaskView(console *Console, tasks *service.TaskService, auditLog *audit.Log) *TaskView {
	return &TaskView{console: console, tasks: tasks, auditLog: auditLog}
}

// Show runs the task menu loop until the user goes back.
func (v *TaskView) Show(ctx context.Context) {
	for {
		v.console.ClearScreen()
		v.console.Title("Task Management")
		v.console.Println("1. Create task")
		v.console.Println("2. List tasks")
		v.console.Println("3. Inspect task")
		v.console.Println("4. Start task")
		v.console.Println("5. Complete task")
		v.console.Println("6. Edit task")
		v.console.Println("0. Back")

		switch v.console.ReadInt("Choose an option: ") {
		case 1:
			v.create(ctx)
		case 2:
			v.list()
		case 3:
			v.inspect()
		case 4:
			v.start(ctx)
		case 5:
			v.complete(ctx)
		case 6:
			v.edit(ctx)
		case 0:
			return
		default:
			v.console.Error("invalid option")
		}
		v.console.Pause()
	}
}

func (v *TaskView) create(ctx context.Context) {
	v.console.Title("Create Task")
	in := service.CreateTaskInput{
		Title:       v.console.ReadString("Title: "),
		Description: v.console.ReadString("Description: "),
		ProjectID:   v.console.ReadString("Project id: "),
		TeamID:      v.console.ReadString("Team id: "),
	}
	task, err := v.tasks.Create(ctx, in)
	if err != nil {
		v.console.Error("create task: " + err.Error())
		return
	}
	if !task.FieldsComplete {
		v.console.Error("required fields missing, task created as pending only")
	}
	v.console.Success("task created with ID: " + task.ID)
}

func (v *TaskView) list() {
	v.console.Title("Registered Tasks")
	all := v.tasks.List()
	if len(all) == 0 {
		v.console.Println("No tasks registered.")
		return
	}
	for _, t := range all {
		assignee := t.AssigneeID
		if assignee == "" {
			assignee = "unassigned"
		}
		v.console.Printf("%s  %-30s %-12s assignee=%s\n",
			t.ID, truncate(t.Title, 30), t.Status.DisplayName(), assignee)
	}
}

func (v *TaskView) inspect() {
	id := v.console.ReadString("Task id: ")
	t, err := v.tasks.Get(id)
	if err != nil {
		v.console.Error("task not found")
		return
	}
	v.console.Title("Task: " + t.Title)
	assignee := t.AssigneeID
	if assignee == "" {
		assignee = "unassigned"
	}
	created := t.CreatedAt
	v.console.Println("ID: " + t.ID)
	v.console.Println("Description: " + t.Description)
	v.console.Println("Project: " + t.ProjectID)
	v.console.Println("Team: " + t.TeamID)
	v.console.Println("Assignee: " + assignee)
	v.console.Println("Status: " + t.Status.DisplayName())
	v.console.Println("Created: " + formatDateTime(&created))
	v.console.Println("Due: " + formatDateTime(t.DueAt))
	v.console.Println("Completed: " + formatDateTime(t.CompletedAt))

	printHistory(v.console, v.auditLog, t.ID)
}

func (v *TaskView) start(ctx context.Context) {
	id := v.console.ReadString("Task id to start: ")
	userID := v.console.ReadString("Your user id (assignee): ")
	if err := v.tasks.Start(ctx, id, userID); err != nil {
		v.console.Error("start task: " + err.Error())
		return
	}
	v.console.Success("task started")
}

func (v *TaskView) complete(ctx context.Context) {
	id := v.console.ReadString("Task id to complete: ")
	userID := v.console.ReadString("Your user id (assignee): ")
	if err := v.tasks.Complete(ctx, id, userID); err != nil {
		v.console.Error("complete task: " + err.Error())
		return
	}
	v.console.Success("task completed")
}

func (v *TaskView) edit(ctx context.Context) {
	id := v.console.ReadString("Task id to edit: ")
	in := service.EditTaskInput{
		Title:       v.console.ReadString("New title (enter to keep): "),
		Description: v.console.ReadString("New description (enter to keep): "),
	}
	raw := v.console.ReadString("New due date (yyyy-mm-dd hh:mm) or empty: ")
	if raw != "" {
		due, err := time.Parse("2006-01-02 15:04", raw)
		if err != nil {
			v.console.Error("parse due date: " + err.Error())
			return
		}
		in.DueAt = &due
	}
	if err := v.tasks.Edit(ctx, id, in); err != nil {
		v.console.Error("edit task: " + err.Error())
		return
	}
	v.console.Success("task updated")
}
