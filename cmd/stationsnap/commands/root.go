// Package commands contains the commands of the stationsnap command line tool.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bikeshare-tools/stationsnap/internal/archiver"
	"github.com/bikeshare-tools/stationsnap/internal/cli"
	"github.com/bikeshare-tools/stationsnap/internal/constants"
)

type newArchiver func(l *slog.Logger, c archiver.Config, args ...archiver.Options) (archiver.Archiver, error)

// App represents the application.
type App struct {
	cmd   *cobra.Command
	viper *viper.Viper

	config appConfig

	newArchiver newArchiver
}

// appConfig holds the configuration for the application.
type appConfig struct {
	Verbosity int
	JSONLogs  bool

	Fetch archiver.Config
}

type options struct {
	// Private members exported for tests.
	newArchiver newArchiver
}

// Options represents an optional function to override App default values.
type Options func(*options)

// New registers commands and returns a new App.
func New(args ...Options) (*App, error) {
	opts := options{
		newArchiver: archiver.New,
	}
	for _, opt := range args {
		opt(&opts)
	}

	a := App{newArchiver: opts.newArchiver}
	a.cmd = &cobra.Command{
		Use:   constants.CmdName + " [flags]",
		Short: "Fetch and archive one station status feed snapshot",
		Long: `Fetch the bike share station status feed and archive it as one compressed,
timestamped snapshot in the output directory.

The tool performs a single fetch per invocation and does not schedule itself;
run it from cron or a systemd timer. It does not retry either: on failure it
exits non-zero and the next tick fetches again.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true

			cli.SetSlog(a.config.Verbosity, a.config.JSONLogs) // Set verbosity before loading config
			if err := cli.InitViperConfig(constants.CmdName, a.cmd, a.viper); err != nil {
				return err
			}
			if err := a.viper.Unmarshal(&a.config); err != nil {
				return fmt.Errorf("unable to strictly decode configuration into struct: %w", err)
			}

			cli.SetSlog(a.config.Verbosity, a.config.JSONLogs) // Update logging after loading config if necessary
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			slog.Debug("Running fetch")
			return a.fetchRun(cmd.Context())
		},
	}
	a.viper = viper.New()
	a.cmd.CompletionOptions.HiddenDefaultCmd = true

	installRootCmd(&a)
	cli.InstallConfigFlag(a.cmd)

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	// Bind the fetch flags under their config keys so that a flag passed on
	// the command line takes precedence over the configuration file.
	for flag, key := range map[string]string{
		"url":        "fetch.url",
		"output-dir": "fetch.outputdir",
		"timeout":    "fetch.timeout",
	} {
		if err := a.viper.BindPFlag(key, a.cmd.Flags().Lookup(flag)); err != nil {
			return nil, err
		}
	}

	a.installVersion()

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue INFO (-v), DEBUG (-vv)")
	cmd.PersistentFlags().BoolVar(&app.config.JSONLogs, "json-logs", false, "enable JSON formatted logs")

	cmd.Flags().StringVar(&app.config.Fetch.OutputDir, "output-dir", constants.DefaultCachePath, "directory the snapshots are written to")
	cmd.Flags().StringVar(&app.config.Fetch.URL, "url", constants.DefaultFeedURL, "station status feed URL to fetch")
	cmd.Flags().DurationVar(&app.config.Fetch.Timeout, "timeout", constants.DefaultTimeout, "timeout for the feed HTTP request")

	if err := cmd.MarkFlagDirname("output-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark output-dir flag as dirname: %v", err))
	}
}

// Run executes the command and associated process, returning an error if any.
func (a App) Run() error {
	return a.cmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// RootCmd returns the root command.
func (a App) RootCmd() *cobra.Command {
	return a.cmd
}
