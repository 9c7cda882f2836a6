package setup

import (
	"context"
	"os"
	"os/exec"
)

// CommandRunner abstracts external command execution so the sequencer can
// be exercised with fakes.
type CommandRunner interface {
	// Output runs a command and returns its combined standard output.
	Output(ctx context.Context, name string, args ...string) (string, error)
	// Run executes a command wired to the operator's terminal.
	Run(ctx context.Context, name string, args ...string) error
	// LookPath reports where an executable lives on the search path.
	LookPath(name string) (string, error)
}

type execRunner struct{}

// NewRunner returns the os/exec backed CommandRunner.
func NewRunner() CommandRunner { return execRunner{} }

func (execRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

func (execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (execRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
