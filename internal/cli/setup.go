package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/formulabase/formulactl/internal/formula"
	"github.com/formulabase/formulactl/internal/lg"
	"github.com/formulabase/formulactl/internal/mongodb"
	"github.com/formulabase/formulactl/internal/seed"
	"github.com/formulabase/formulactl/internal/setup"
)

// NewSetupCommand creates the "setup" command: the interactive sequence
// that checks the toolchain, probes for a local server, installs
// dependencies, verifies connectivity, and optionally seeds the catalog.
func NewSetupCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Guided environment setup for the formula database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetup(cmd.Context())
		},
	}
}

func runSetup(ctx context.Context) error {
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	uri := resolveURI(settings)

	seq := setup.NewSequencer(
		setup.Config{URI: uri},
		setup.NewRunner(),
		setup.NewPrompter(os.Stdin, os.Stdout),
		&connectionProbe{uri: uri, database: settings.Database, log: logger},
		&seedMigrator{uri: uri, database: settings.Database, collection: settings.Collection, log: logger},
		os.Stdout,
		logger,
	)
	return seq.Run(ctx)
}

// connectionProbe is the sequencer's connection collaborator: construct,
// connect (which pings), close.
type connectionProbe struct {
	uri      string
	database string
	log      lg.Logger
}

func (p *connectionProbe) Check(ctx context.Context) error {
	conn := mongodb.NewConnection(p.uri, p.database, p.log)
	if err := conn.Connect(ctx); err != nil {
		return err
	}
	return conn.Close(ctx)
}

// seedMigrator is the sequencer's migration collaborator.
type seedMigrator struct {
	uri        string
	database   string
	collection string
	log        lg.Logger
}

func (m *seedMigrator) Migrate(ctx context.Context) error {
	conn := mongodb.NewConnection(m.uri, m.database, m.log)
	if err := conn.Connect(ctx); err != nil {
		return err
	}
	defer func() { _ = conn.Close(ctx) }()

	repo := formula.NewRepository(conn.Database().Collection(m.collection), m.log)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return err
	}
	_, err := seed.Run(ctx, repo, os.Stdout, m.log)
	return err
}
