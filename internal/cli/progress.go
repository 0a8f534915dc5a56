package cli

import (
	"errors"
	"fmt"

	"prodhub/internal/models"
	"prodhub/internal/storage"
	"prodhub/internal/validation"
)

type ProgressSaveCmd struct {
	Score int    `arg:"" help:"How the day went, 1-10."`
	Date  string `short:"d" help:"Date (YYYY-MM-DD), defaults to today."`
	Notes string `short:"n" help:"Optional notes."`
}

func (c *ProgressSaveCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = today()
	}
	if err := validation.Score(c.Score); err != nil {
		return err
	}
	if err := validation.Date("date", date); err != nil {
		return err
	}

	p, err := ctx.Store.SaveProgress(models.Progress{
		UserID: id.UserID,
		Date:   date,
		Score:  c.Score,
		Notes:  c.Notes,
	})
	if err != nil {
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("Saved progress for %s: %d/10", p.Date, p.Score)))
	return nil
}

type ProgressHistoryCmd struct{}

func (c *ProgressHistoryCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	history, err := ctx.Store.GetProgressHistory(id.UserID)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("No progress recorded yet")
		return nil
	}

	fmt.Println(titleStyle.Render("Progress:"))
	for _, p := range history {
		line := fmt.Sprintf("  %s  %2d/10", p.Date, p.Score)
		if p.Notes != "" {
			line += "  " + faintStyle.Render(p.Notes)
		}
		fmt.Println(line)
	}

	avg, err := ctx.Store.GetAverageScore(id.UserID)
	if err != nil {
		if errors.Is(err, storage.ErrNoData) {
			return nil
		}
		return err
	}
	fmt.Printf("\nAverage: %.1f/10\n", avg)
	return nil
}
