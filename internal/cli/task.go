package cli

import (
	"fmt"

	"prodhub/internal/constants"
	"prodhub/internal/models"
	"prodhub/internal/validation"
)

type TaskAddCmd struct {
	Title       string `arg:"" help:"Task title."`
	Deadline    string `short:"d" help:"Deadline (YYYY-MM-DD)." required:""`
	Priority    string `short:"p" help:"Priority (low|medium|high)." default:"medium"`
	Description string `short:"D" help:"Optional description."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	task := models.Task{
		UserID:      id.UserID,
		Title:       c.Title,
		Description: c.Description,
		Deadline:    c.Deadline,
		Priority:    constants.Priority(c.Priority),
		Status:      constants.StatusPending,
	}
	if err := validateTask(task); err != nil {
		return err
	}

	task, err = ctx.Store.AddTask(task)
	if err != nil {
		return err
	}

	fmt.Printf("Added task: %s (ID: %d)\n", task.Title, task.ID)
	return nil
}

type TaskListCmd struct {
	Status string `short:"s" help:"Filter by status (all|pending|completed)." default:"all"`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	filter := models.StatusFilter(c.Status)
	switch filter {
	case models.FilterAll, models.FilterPending, models.FilterCompleted:
	default:
		return fmt.Errorf("invalid status filter: %s", c.Status)
	}

	tasks, err := ctx.Store.GetTasks(id.UserID, filter)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Println(titleStyle.Render("Tasks:"))
	for _, task := range tasks {
		marker := "[ ]"
		if task.Status == constants.StatusCompleted {
			marker = "[x]"
		}
		fmt.Printf("  %s #%d %s  %s\n", marker, task.ID, task.Title,
			faintStyle.Render(fmt.Sprintf("(due %s, %s)", task.Deadline, task.Priority)))
		if task.Description != "" {
			fmt.Printf("      %s\n", faintStyle.Render(task.Description))
		}
	}
	return nil
}

type TaskCompleteCmd struct {
	ID int64 `arg:"" help:"Task ID."`
}

func (c *TaskCompleteCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	if err := ctx.Store.CompleteTask(id.UserID, c.ID); err != nil {
		return err
	}
	fmt.Printf("Completed task %d\n", c.ID)
	return nil
}

type TaskEditCmd struct {
	ID          int64  `arg:"" help:"Task ID."`
	Title       string `short:"t" help:"New title."`
	Deadline    string `short:"d" help:"New deadline (YYYY-MM-DD)."`
	Priority    string `short:"p" help:"New priority (low|medium|high)."`
	Status      string `short:"s" help:"New status (pending|completed)."`
	Description string `short:"D" help:"New description."`
}

func (c *TaskEditCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	tasks, err := ctx.Store.GetTasks(id.UserID, models.FilterAll)
	if err != nil {
		return err
	}

	var task *models.Task
	for i := range tasks {
		if tasks[i].ID == c.ID {
			task = &tasks[i]
			break
		}
	}
	if task == nil {
		return fmt.Errorf("task %d not found", c.ID)
	}

	if c.Title != "" {
		task.Title = c.Title
	}
	if c.Deadline != "" {
		task.Deadline = c.Deadline
	}
	if c.Priority != "" {
		task.Priority = constants.Priority(c.Priority)
	}
	if c.Description != "" {
		task.Description = c.Description
	}
	if c.Status != "" {
		switch constants.TaskStatus(c.Status) {
		case constants.StatusPending, constants.StatusCompleted:
			task.Status = constants.TaskStatus(c.Status)
		default:
			return fmt.Errorf("invalid status: %s", c.Status)
		}
	}
	if err := validateTask(*task); err != nil {
		return err
	}

	updated, err := ctx.Store.ReplaceTask(id.UserID, *task)
	if err != nil {
		return err
	}
	fmt.Printf("Updated task %d: %s\n", updated.ID, updated.Title)
	return nil
}

type TaskDeleteCmd struct {
	ID int64 `arg:"" help:"Task ID."`
}

func (c *TaskDeleteCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteTask(id.UserID, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task %d\n", c.ID)
	return nil
}

func validateTask(task models.Task) error {
	if err := validation.Title(task.Title); err != nil {
		return err
	}
	if err := validation.Date("deadline", task.Deadline); err != nil {
		return err
	}
	return validation.Priority(task.Priority)
}
