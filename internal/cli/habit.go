package cli

import (
	"fmt"

	"prodhub/internal/constants"
	"prodhub/internal/models"
	"prodhub/internal/validation"
)

type HabitAddCmd struct {
	Name        string `arg:"" help:"Habit name."`
	Frequency   string `short:"f" help:"Frequency (Daily|Weekly|Monthly)." default:"Daily"`
	StartDate   string `short:"s" help:"Start date (YYYY-MM-DD), defaults to today."`
	Description string `short:"D" help:"Optional description."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	start := c.StartDate
	if start == "" {
		start = today()
	}
	if err := validation.Title(c.Name); err != nil {
		return err
	}
	if err := validation.Date("start date", start); err != nil {
		return err
	}
	if err := validation.Frequency(constants.Frequency(c.Frequency)); err != nil {
		return err
	}

	habit, err := ctx.Store.AddHabit(models.Habit{
		UserID:      id.UserID,
		Name:        c.Name,
		Description: c.Description,
		Frequency:   constants.Frequency(c.Frequency),
		StartDate:   start,
		LastChecked: start,
		Streak:      0,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added habit: %s (ID: %d)\n", habit.Name, habit.ID)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits(id.UserID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits found")
		return nil
	}

	fmt.Println(titleStyle.Render("Habits:"))
	for _, habit := range habits {
		fmt.Printf("  #%d %s  %s  %s\n",
			habit.ID, habit.Name,
			streakStyle.Render(fmt.Sprintf("%d day streak", habit.Streak)),
			faintStyle.Render(fmt.Sprintf("(%s, last checked %s)", habit.Frequency, habit.LastChecked)))
	}
	return nil
}

type HabitCheckinCmd struct {
	ID int64 `arg:"" help:"Habit ID."`
}

func (c *HabitCheckinCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	result, err := ctx.Store.CheckInHabit(id.UserID, c.ID, today())
	if err != nil {
		return err
	}

	switch result {
	case models.AlreadyCheckedToday:
		fmt.Println(warnStyle.Render("Already checked in today"))
	default:
		fmt.Println(successStyle.Render("Checked in!"))
	}
	return nil
}

type HabitDeleteCmd struct {
	ID int64 `arg:"" help:"Habit ID."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteHabit(id.UserID, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted habit %d\n", c.ID)
	return nil
}
