package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"prodhub/internal/constants"
	"prodhub/internal/models"
	"prodhub/internal/validation"
)

type JournalAddCmd struct {
	Content string `arg:"" optional:"" help:"Entry text (prompted if omitted)."`
	Mood    string `short:"m" help:"Mood (awful|meh|good|great|amazing)."`
	Date    string `short:"d" help:"Entry date (YYYY-MM-DD), defaults to today."`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	var fields []huh.Field
	if c.Content == "" {
		fields = append(fields, huh.NewText().Title("What's on your mind?").Value(&c.Content))
	}
	if c.Mood == "" {
		var options []huh.Option[string]
		for _, m := range constants.Moods {
			options = append(options, huh.NewOption(string(m), string(m)))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Mood").
			Options(options...).
			Value(&c.Mood))
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}

	date := c.Date
	if date == "" {
		date = today()
	}
	if err := validation.Content(c.Content); err != nil {
		return err
	}
	if err := validation.Mood(constants.Mood(c.Mood)); err != nil {
		return err
	}
	if err := validation.Date("entry date", date); err != nil {
		return err
	}

	entry, err := ctx.Store.AddJournalEntry(models.JournalEntry{
		UserID:    id.UserID,
		EntryDate: date,
		Content:   strings.TrimSpace(c.Content),
		Mood:      constants.Mood(c.Mood),
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Added journal entry %d for %s\n", entry.ID, entry.EntryDate)
	return nil
}

type JournalListCmd struct{}

func (c *JournalListCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	entries, err := ctx.Store.GetJournalEntries(id.UserID)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No journal entries yet")
		return nil
	}

	fmt.Println(titleStyle.Render("Journal:"))
	for _, entry := range entries {
		fmt.Printf("  #%d %s  %s\n", entry.ID, entry.EntryDate,
			faintStyle.Render(fmt.Sprintf("(%s)", entry.Mood)))
		fmt.Printf("      %s\n", entry.Content)
	}
	return nil
}

type JournalDeleteCmd struct {
	ID int64 `arg:"" help:"Entry ID."`
}

func (c *JournalDeleteCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteJournalEntry(id.UserID, c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted journal entry %d\n", c.ID)
	return nil
}
