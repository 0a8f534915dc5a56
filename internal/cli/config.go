package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"prodhub/internal/keyring"
	"prodhub/internal/storage"
)

type ConfigSetDbCmd struct {
	ConnectionString string `arg:"" optional:"" help:"Postgres connection string (prompted if omitted)."`
}

func (c *ConfigSetDbCmd) Run(ctx *Context) error {
	if c.ConnectionString == "" {
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Connection string").
				EchoMode(huh.EchoModePassword).
				Value(&c.ConnectionString),
		)).Run()
		if err != nil {
			return err
		}
	}

	if !storage.IsPostgres(c.ConnectionString) {
		return fmt.Errorf("connection string must start with postgres://")
	}

	if err := keyring.SetConnectionString(c.ConnectionString); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("Connection string stored in OS keyring"))
	return nil
}

type ConfigClearDbCmd struct{}

func (c *ConfigClearDbCmd) Run(ctx *Context) error {
	if err := keyring.DeleteConnectionString(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No connection string stored")
			return nil
		}
		return err
	}
	fmt.Println("Connection string removed from OS keyring")
	return nil
}

type ConfigSetAPIKeyCmd struct {
	Key string `arg:"" optional:"" help:"Gemini API key (prompted if omitted)."`
}

func (c *ConfigSetAPIKeyCmd) Run(ctx *Context) error {
	if c.Key == "" {
		err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				EchoMode(huh.EchoModePassword).
				Value(&c.Key),
		)).Run()
		if err != nil {
			return err
		}
	}

	if err := keyring.SetAPIKey(c.Key); err != nil {
		return err
	}
	fmt.Println(successStyle.Render("API key stored in OS keyring"))
	return nil
}

type ConfigClearAPIKeyCmd struct{}

func (c *ConfigClearAPIKeyCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No API key stored")
			return nil
		}
		return err
	}
	fmt.Println("API key removed from OS keyring")
	return nil
}
