package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/formulabase/formulactl/pkg/persistence"
)

// NewExportCommand creates the "export" command: a JSON snapshot of the
// whole catalog.
func NewExportCommand() *cobra.Command {
	var outFile string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the formula catalog to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			conn, repo, err := openRepository(ctx, logger)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close(ctx) }()

			formulas, err := repo.GetAll(ctx, "")
			if err != nil {
				return err
			}
			if err := persistence.ExportJSON(formulas, outFile); err != nil {
				return err
			}
			fmt.Printf("✓ Exported %d formulas to %s\n", len(formulas), outFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFile, "out", "o", "formulas.json", "output file path")
	return cmd
}
