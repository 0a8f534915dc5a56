package cli

import (
	"errors"
	"fmt"

	"prodhub/internal/models"
	"prodhub/internal/storage"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	pending, err := ctx.Store.CountTasks(id.UserID, models.FilterPending)
	if err != nil {
		return err
	}
	completed, err := ctx.Store.CountTasks(id.UserID, models.FilterCompleted)
	if err != nil {
		return err
	}

	habits, err := ctx.Store.GetHabits(id.UserID)
	if err != nil {
		return err
	}
	bestStreak := 0
	for _, h := range habits {
		if h.Streak > bestStreak {
			bestStreak = h.Streak
		}
	}

	entries, err := ctx.Store.GetJournalEntries(id.UserID)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Stats for %s", id.Username)))
	fmt.Printf("  Tasks:    %d pending, %d completed\n", pending, completed)
	fmt.Printf("  Habits:   %d tracked", len(habits))
	if bestStreak > 0 {
		fmt.Printf(", best streak %s", streakStyle.Render(fmt.Sprintf("%d days", bestStreak)))
	}
	fmt.Println()
	fmt.Printf("  Journal:  %d entries\n", len(entries))

	avg, err := ctx.Store.GetAverageScore(id.UserID)
	if err != nil && !errors.Is(err, storage.ErrNoData) {
		return err
	}
	if errors.Is(err, storage.ErrNoData) {
		fmt.Println("  Progress: no scores recorded yet")
	} else {
		fmt.Printf("  Progress: %.1f/10 average\n", avg)
	}

	upcoming, err := ctx.Store.GetTasks(id.UserID, models.FilterPending)
	if err != nil {
		return err
	}
	if len(upcoming) > 0 {
		fmt.Println("\n  Next up:")
		for i, task := range upcoming {
			if i == 3 {
				break
			}
			fmt.Printf("    %s  %s\n", task.Deadline, task.Title)
		}
	}
	return nil
}
