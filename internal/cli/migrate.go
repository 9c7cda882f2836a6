package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/formulabase/formulactl/internal/seed"
)

// NewMigrateCommand creates the "migrate" command: the one-shot seed
// migration, runnable on its own when it was skipped during setup.
func NewMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Load the built-in formula catalog into MongoDB",
		Long: `Wipe the formulas collection and load the built-in catalog.
Per-formula failures are reported and counted; the command fails only
when the database is unreachable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			conn, repo, err := openRepository(ctx, logger)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close(ctx) }()

			_, err = seed.Run(ctx, repo, os.Stdout, logger)
			return err
		},
	}
}
