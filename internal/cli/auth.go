package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"prodhub/internal/auth"
	"prodhub/internal/logger"
	"prodhub/internal/session"
	"prodhub/internal/storage"
)

type RegisterCmd struct {
	Username string `arg:"" optional:"" help:"Username (prompted if omitted)."`
	Email    string `short:"e" help:"Email address (prompted if omitted)."`
	Password string `short:"p" help:"Password (prompted if omitted)."`
}

func (c *RegisterCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var fields []huh.Field
	if c.Username == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(&c.Username))
	}
	if c.Email == "" {
		fields = append(fields, huh.NewInput().Title("Email").Value(&c.Email))
	}
	if c.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password))
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}

	user, err := auth.Register(ctx.Store, c.Username, c.Email, c.Password)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return fmt.Errorf("username or email is already taken")
		}
		return err
	}

	logger.Info("registered user", "username", user.Username)
	fmt.Println(successStyle.Render(fmt.Sprintf("Registered %s. Run 'prodhub login' to sign in.", user.Username)))
	return nil
}

type LoginCmd struct {
	Username string `arg:"" optional:"" help:"Username (prompted if omitted)."`
	Password string `short:"p" help:"Password (prompted if omitted)."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var fields []huh.Field
	if c.Username == "" {
		fields = append(fields, huh.NewInput().Title("Username").Value(&c.Username))
	}
	if c.Password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&c.Password))
	}
	if len(fields) > 0 {
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return err
		}
	}

	user, err := auth.Authenticate(ctx.Store, c.Username, c.Password)
	if err != nil {
		return err
	}

	if _, err := ctx.Sessions.Begin(session.Identity{UserID: user.ID, Username: user.Username}); err != nil {
		return err
	}

	logger.Info("logged in", "username", user.Username)
	fmt.Println(successStyle.Render(fmt.Sprintf("Logged in as %s", user.Username)))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Sessions.Clear(); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	id, err := ctx.requireUser()
	if err != nil {
		return err
	}

	// A session can outlive its account, e.g. after a db reset elsewhere.
	user, err := ctx.Store.GetUserByID(id.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		_ = ctx.Sessions.Clear()
		return session.ErrNotAuthenticated
	}

	fmt.Printf("%s (%s)\n", user.Username, user.Email)
	return nil
}
