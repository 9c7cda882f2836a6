// Package cli implements the cobra commands for formulactl.
//
// Each subcommand (setup, migrate, manage, stats, export) lives in its
// own file. This file defines the root command, the global flags, and
// the shared helpers for configuration and database access.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/formulabase/formulactl/internal/formula"
	"github.com/formulabase/formulactl/internal/lg"
	"github.com/formulabase/formulactl/internal/mongodb"
	"github.com/formulabase/formulactl/pkg/config"
)

// defaultConfigFile is picked up from the working directory when --config
// is not given.
const defaultConfigFile = "formulactl.yaml"

// Global flag variables, bound to persistent flags on the root command.
var (
	cfgFile   string
	uriFlag   string
	debugMode bool
	logFormat string
)

// Version is set at build time via ldflags.
var Version = "dev"

// NewRootCommand creates and configures the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formulactl",
		Short: "MongoDB-backed formula catalog manager",
		Long: `formulactl manages a catalog of mathematical and physical formulas
stored in MongoDB: guided environment setup, catalog seeding, interactive
management, statistics, and JSON export.

The connection string resolves from --uri, then $MONGODB_URI, then
mongodb://localhost:27017/.`,

		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to formulactl.yaml")
	rootCmd.PersistentFlags().StringVar(&uriFlag, "uri", "", "MongoDB connection string (overrides $MONGODB_URI)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "console or json")

	rootCmd.AddCommand(NewSetupCommand())
	rootCmd.AddCommand(NewMigrateCommand())
	rootCmd.AddCommand(NewManageCommand())
	rootCmd.AddCommand(NewStatsCommand())
	rootCmd.AddCommand(NewExportCommand())

	return rootCmd
}

// Execute runs the root command and translates errors into exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() lg.Logger {
	return lg.New(&lg.Config{ToolName: "formulactl", Debug: debugMode, Format: logFormat})
}

// loadSettings reads the optional config file. A missing default file is
// not an error; an explicitly given --config that cannot be read is.
func loadSettings() (*config.Settings, error) {
	settings := &config.Settings{
		Database:   mongodb.DatabaseName,
		Collection: mongodb.FormulasCollection,
	}

	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return settings, nil
		}
		path = defaultConfigFile
	}

	if err := config.NewFileStore(path).Load(settings); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if settings.Database == "" {
		settings.Database = mongodb.DatabaseName
	}
	if settings.Collection == "" {
		settings.Collection = mongodb.FormulasCollection
	}
	return settings, nil
}

// watchSettings reloads the active config file whenever it is rewritten
// and logs the new values. A long-running session keeps the connection it
// opened; the reload tells the operator the change applies on the next run.
func watchSettings(logger lg.Logger) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat(defaultConfigFile); err != nil {
			return
		}
		path = defaultConfigFile
	}

	store := config.NewFileStore(path)
	err := store.Watch(func() {
		var fresh config.Settings
		if err := store.Load(&fresh); err != nil {
			logger.Warn("configuration reload failed", lg.String("path", path), lg.Err(err))
			return
		}
		logger.Warn("configuration changed; new values apply on the next run",
			lg.String("path", path),
			lg.String("database", fresh.Database),
			lg.String("collection", fresh.Collection))
	})
	if err != nil {
		logger.Warn("configuration watch unavailable", lg.String("path", path), lg.Err(err))
	}
}

// resolveURI folds the --uri flag into the config file value; the env
// variable and the local default apply beneath both.
func resolveURI(settings *config.Settings) string {
	if uriFlag != "" {
		return mongodb.ResolveURI(uriFlag)
	}
	return mongodb.ResolveURI(settings.URI)
}

// openRepository connects and hands back the connection and a repository
// with indexes ensured. The caller closes the connection.
func openRepository(ctx context.Context, logger lg.Logger) (*mongodb.Connection, *formula.Repository, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}

	conn := mongodb.NewConnection(resolveURI(settings), settings.Database, logger)
	if err := conn.Connect(ctx); err != nil {
		return nil, nil, err
	}

	repo := formula.NewRepository(conn.Database().Collection(settings.Collection), logger)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = conn.Close(ctx)
		return nil, nil, err
	}
	return conn, repo, nil
}
