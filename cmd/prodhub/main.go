package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"prodhub/internal/cli"
	"prodhub/internal/constants"
	"prodhub/internal/keyring"
	"prodhub/internal/logger"
	"prodhub/internal/session"
	"prodhub/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path or postgres:// connection string." type:"path" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Register cli.RegisterCmd `cmd:"" help:"Create a new account."`
	Login    cli.LoginCmd    `cmd:"" help:"Sign in and start a session."`
	Logout   cli.LogoutCmd   `cmd:"" help:"End the current session."`
	Whoami   cli.WhoamiCmd   `cmd:"" help:"Show the logged-in user."`

	Task struct {
		Add      cli.TaskAddCmd      `cmd:"" help:"Add a task."`
		List     cli.TaskListCmd     `cmd:"" help:"List tasks."`
		Complete cli.TaskCompleteCmd `cmd:"" help:"Mark a task completed."`
		Edit     cli.TaskEditCmd     `cmd:"" help:"Edit a task."`
		Delete   cli.TaskDeleteCmd   `cmd:"" help:"Delete a task."`
	} `cmd:"" help:"Manage tasks."`

	Habit struct {
		Add     cli.HabitAddCmd     `cmd:"" help:"Add a habit."`
		List    cli.HabitListCmd    `cmd:"" help:"List habits with streaks."`
		Checkin cli.HabitCheckinCmd `cmd:"" help:"Check in a habit for today."`
		Delete  cli.HabitDeleteCmd  `cmd:"" help:"Delete a habit."`
	} `cmd:"" help:"Manage habits."`

	Progress struct {
		Save    cli.ProgressSaveCmd    `cmd:"" help:"Rate today (1-10)."`
		History cli.ProgressHistoryCmd `cmd:"" help:"Show progress history and average."`
	} `cmd:"" help:"Track daily progress."`

	Journal struct {
		Add    cli.JournalAddCmd    `cmd:"" help:"Write a journal entry."`
		List   cli.JournalListCmd   `cmd:"" help:"List journal entries."`
		Delete cli.JournalDeleteCmd `cmd:"" help:"Delete a journal entry."`
	} `cmd:"" help:"Keep a journal."`

	Chat  cli.ChatCmd  `cmd:"" help:"Talk to the AI assistant."`
	Stats cli.StatsCmd `cmd:"" help:"Show a summary of your activity."`

	Db struct {
		Init   cli.DbInitCmd   `cmd:"" help:"Initialize storage."`
		Reset  cli.DbResetCmd  `cmd:"" help:"Erase all data and re-initialize."`
		Manage cli.DbManageCmd `cmd:"" default:"1" help:"Interactive maintenance menu."`
	} `cmd:"" help:"Database maintenance."`

	ConfigCmd struct {
		SetDb       cli.ConfigSetDbCmd       `cmd:"" name:"set-db" help:"Store a postgres connection string in the OS keyring."`
		ClearDb     cli.ConfigClearDbCmd     `cmd:"" name:"clear-db" help:"Remove the stored connection string."`
		SetApiKey   cli.ConfigSetAPIKeyCmd   `cmd:"" name:"set-api-key" help:"Store the Gemini API key in the OS keyring."`
		ClearApiKey cli.ConfigClearAPIKeyCmd `cmd:"" name:"clear-api-key" help:"Remove the stored API key."`
	} `cmd:"" name:"config" help:"Manage stored credentials."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal productivity tracker: tasks, habits, progress, journal"),
		kong.UsageOnError(),
		kong.Vars{
			"version":       constants.Version,
			"config_path":   constants.DefaultConfigPath,
			"gemini_model":  constants.DefaultGeminiModel,
			"seed_username": constants.SeedUsername,
		},
	)

	// Session file and logs always live next to the default local config,
	// even when the data itself is in postgres.
	configDir := filepath.Dir(CLI.Config)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	config, err := resolveStorageConfig(CLI.Config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store:    storage.NewProvider(config),
		Sessions: session.NewManager(configDir),
		Debug:    CLI.Debug,
	}

	if err := ctx.Run(appCtx); err != nil {
		logger.Error("command failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveStorageConfig picks the storage backend: an explicit postgres
// connection from the environment or keyring wins over the local file path.
// Connection strings arriving via flag or environment must not carry an
// inline password; the keyring copy is already held securely.
func resolveStorageConfig(path string) (string, error) {
	if conn := os.Getenv("PRODHUB_DB_CONNECTION"); conn != "" {
		if storage.HasEmbeddedCredentials(conn) {
			return "", fmt.Errorf("PRODHUB_DB_CONNECTION contains an inline password; store it with 'prodhub config set-db' or use a .pgpass file")
		}
		return conn, nil
	}

	if conn, err := keyring.GetConnectionString(); err == nil {
		return conn, nil
	}

	if storage.IsPostgres(path) && storage.HasEmbeddedCredentials(path) {
		return "", fmt.Errorf("connection string contains an inline password; store it with 'prodhub config set-db' or use a .pgpass file")
	}
	return path, nil
}
