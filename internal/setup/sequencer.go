// Package setup implements the guided environment setup: a fixed sequence
// of checks that short-circuits on the first fatal failure.
//
// The six states run strictly in order:
//
//	Toolchain → ServerCheck → Install → ConnectionTest → Migration → Summary
//
// Every external command's non-zero exit is fatal except the toolchain
// version report, which is informational only. The two operator prompts
// (missing server, migration) are the only conditional branches.
package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/formulabase/formulactl/internal/lg"
)

// ErrAborted marks a sequence stopped by the operator or a failed step.
// The CLI maps it (like every setup error) to exit code 1.
var ErrAborted = errors.New("setup aborted")

// ConnectionChecker verifies the database is reachable: construct,
// connect, ping, close.
type ConnectionChecker interface {
	Check(ctx context.Context) error
}

// Migrator runs the one-shot seed migration.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Config parameterizes the external collaborators of the sequence.
type Config struct {
	GoBinary     string // toolchain reported in step 1, default "go"
	ServerBinary string // database server probed in step 2, default "mongod"
	URI          string // shown in remediation hints
}

func (c *Config) applyDefaults() {
	if c.GoBinary == "" {
		c.GoBinary = "go"
	}
	if c.ServerBinary == "" {
		c.ServerBinary = "mongod"
	}
}

// Sequencer runs the setup steps. All collaborators are injected so the
// gating semantics can be tested without external processes.
type Sequencer struct {
	cfg      Config
	runner   CommandRunner
	prompt   Prompter
	checker  ConnectionChecker
	migrator Migrator
	out      io.Writer
	log      lg.Logger
}

// NewSequencer wires a sequencer. logger may be nil.
func NewSequencer(cfg Config, runner CommandRunner, prompt Prompter, checker ConnectionChecker, migrator Migrator, out io.Writer, logger lg.Logger) *Sequencer {
	cfg.applyDefaults()
	if logger == nil {
		logger = lg.Discard
	}
	return &Sequencer{
		cfg:      cfg,
		runner:   runner,
		prompt:   prompt,
		checker:  checker,
		migrator: migrator,
		out:      out,
		log:      logger,
	}
}

// Run executes the full sequence. A nil return means the environment is
// ready (a deliberately skipped migration still counts as success).
func (s *Sequencer) Run(ctx context.Context) error {
	s.banner("Formula Database Setup")

	s.checkToolchain(ctx)
	if err := s.checkServer(ctx); err != nil {
		return err
	}
	if err := s.installDependencies(ctx); err != nil {
		return err
	}
	if err := s.checkConnection(ctx); err != nil {
		return err
	}
	if err := s.runMigration(ctx); err != nil {
		return err
	}
	s.printSummary()
	return nil
}

// checkToolchain reports the Go toolchain version. Informational only:
// a missing or failing toolchain binary does not stop the sequence.
func (s *Sequencer) checkToolchain(ctx context.Context) {
	fmt.Fprintf(s.out, "\nStep 1: Checking Go toolchain...\n")
	out, err := s.runner.Output(ctx, s.cfg.GoBinary, "version")
	if err != nil {
		fmt.Fprintf(s.out, "  ⚠ Could not determine toolchain version: %v\n", err)
		s.log.Warn("toolchain version check failed", lg.Err(err))
		return
	}
	fmt.Fprintf(s.out, "  %s\n", firstLine(out))
}

// checkServer probes for the database server executable. When it is
// absent the operator decides whether to continue (e.g. against a hosted
// cluster); declining aborts the sequence.
func (s *Sequencer) checkServer(ctx context.Context) error {
	fmt.Fprintf(s.out, "\nStep 2: Checking for MongoDB server...\n")

	path, err := s.runner.LookPath(s.cfg.ServerBinary)
	if err == nil {
		version, verr := s.runner.Output(ctx, path, "--version")
		if verr != nil {
			fmt.Fprintf(s.out, "  ✓ Found %s\n", path)
		} else {
			fmt.Fprintf(s.out, "  ✓ %s\n", firstLine(version))
		}
		return nil
	}

	fmt.Fprintf(s.out, "  ✗ %s not found on PATH.\n", s.cfg.ServerBinary)
	fmt.Fprintf(s.out, "    Install MongoDB Community Edition:\n")
	fmt.Fprintf(s.out, "      macOS:  brew tap mongodb/brew && brew install mongodb-community\n")
	fmt.Fprintf(s.out, "      Ubuntu: sudo apt-get install -y mongodb-org\n")
	fmt.Fprintf(s.out, "      Other:  https://www.mongodb.com/docs/manual/installation/\n")
	fmt.Fprintf(s.out, "    Or use a hosted cluster: https://www.mongodb.com/atlas\n")

	ok, perr := s.prompt.Confirm("  Continue without a local server? [y/N]: ")
	if perr != nil {
		return fmt.Errorf("could not read confirmation: %w", perr)
	}
	if !ok {
		fmt.Fprintf(s.out, "  Setup aborted.\n")
		return fmt.Errorf("%w: no database server available", ErrAborted)
	}
	return nil
}

// installDependencies downloads the declared module dependencies.
func (s *Sequencer) installDependencies(ctx context.Context) error {
	fmt.Fprintf(s.out, "\nStep 3: Installing dependencies (go mod download)...\n")
	if err := s.runner.Run(ctx, s.cfg.GoBinary, "mod", "download"); err != nil {
		fmt.Fprintf(s.out, "  ✗ Failed to download dependencies.\n")
		return fmt.Errorf("dependency installation failed: %w", err)
	}
	fmt.Fprintf(s.out, "  ✓ Dependencies installed.\n")
	return nil
}

// checkConnection delegates to the connection collaborator.
func (s *Sequencer) checkConnection(ctx context.Context) error {
	fmt.Fprintf(s.out, "\nStep 4: Verifying database connection...\n")
	if err := s.checker.Check(ctx); err != nil {
		fmt.Fprintf(s.out, "  ✗ %v\n", err)
		fmt.Fprintf(s.out, "    Make sure MongoDB is running (e.g. 'mongod' or 'systemctl start mongod'),\n")
		fmt.Fprintf(s.out, "    or set %s to point at your cluster.\n", s.uriHint())
		return fmt.Errorf("connection check failed: %w", err)
	}
	fmt.Fprintf(s.out, "  ✓ Connection verified.\n")
	return nil
}

// runMigration asks the operator before seeding the catalog. Declining is
// not an error; the sequence continues to the summary.
func (s *Sequencer) runMigration(ctx context.Context) error {
	fmt.Fprintf(s.out, "\nStep 5: Initial formula migration\n")
	ok, err := s.prompt.Confirm("  Run the formula migration now? [y/N]: ")
	if err != nil {
		return fmt.Errorf("could not read confirmation: %w", err)
	}
	if !ok {
		fmt.Fprintf(s.out, "  Skipping migration. Run 'formulactl migrate' later.\n")
		return nil
	}
	if err := s.migrator.Migrate(ctx); err != nil {
		fmt.Fprintf(s.out, "  ✗ Migration failed.\n")
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Fprintf(s.out, "  ✓ Migration finished.\n")
	return nil
}

func (s *Sequencer) printSummary() {
	s.banner("✅ Setup complete!")
	fmt.Fprintf(s.out, "Next steps:\n")
	fmt.Fprintf(s.out, "  formulactl manage   # interactive catalog management\n")
	fmt.Fprintf(s.out, "  formulactl stats    # catalog statistics\n")
	fmt.Fprintf(s.out, "  formulactl export   # dump the catalog to JSON\n")
}

func (s *Sequencer) banner(title string) {
	line := strings.Repeat("=", 60)
	fmt.Fprintf(s.out, "\n%s\n%s\n%s\n", line, title, line)
}

func (s *Sequencer) uriHint() string {
	if s.cfg.URI != "" {
		return fmt.Sprintf("MONGODB_URI (currently %s)", s.cfg.URI)
	}
	return "MONGODB_URI"
}

func firstLine(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return line
}
