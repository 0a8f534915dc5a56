package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"prodhub/internal/auth"
	"prodhub/internal/constants"
	"prodhub/internal/logger"
	"prodhub/internal/storage"
)

type DbInitCmd struct {
	Seed bool `help:"Create the '${seed_username}' test account after initializing."`
}

func (c *DbInitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized storage at: %s\n", ctx.Store.Path())

	if c.Seed {
		return seedTestUser(ctx)
	}
	return nil
}

type DbResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *DbResetCmd) Run(ctx *Context) error {
	if !c.Yes {
		confirmed, err := confirmReset()
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := ctx.Store.Reset(); err != nil {
		return err
	}
	// The old session points at a user that no longer exists
	if err := ctx.Sessions.Clear(); err != nil {
		return err
	}

	logger.Warn("storage reset", "path", ctx.Store.Path())
	fmt.Println(warnStyle.Render("All data erased and storage re-initialized"))
	return nil
}

// DbManageCmd is the interactive maintenance menu, the default when running
// 'prodhub db' bare.
type DbManageCmd struct{}

func (c *DbManageCmd) Run(ctx *Context) error {
	for {
		var choice string
		err := huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Database maintenance").
				Options(
					huh.NewOption("Initialize storage", "init"),
					huh.NewOption("Reset (erase all data)", "reset"),
					huh.NewOption("Exit", "exit"),
				).
				Value(&choice),
		)).Run()
		if err != nil {
			return err
		}

		switch choice {
		case "init":
			cmd := DbInitCmd{}
			if err := cmd.Run(ctx); err != nil {
				return err
			}
		case "reset":
			cmd := DbResetCmd{}
			if err := cmd.Run(ctx); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func confirmReset() (bool, error) {
	var confirmed bool
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title("Erase ALL data and re-initialize storage?").
			Affirmative("Yes, erase everything").
			Negative("No").
			Value(&confirmed),
	)).Run()
	return confirmed, err
}

func seedTestUser(ctx *Context) error {
	_, err := auth.Register(ctx.Store, constants.SeedUsername, constants.SeedEmail, constants.SeedPassword)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			fmt.Printf("Test user %q already exists\n", constants.SeedUsername)
			return nil
		}
		return err
	}
	fmt.Printf("Created test user %q (password %q)\n", constants.SeedUsername, constants.SeedPassword)
	return nil
}
