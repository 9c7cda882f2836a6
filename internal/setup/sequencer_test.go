package setup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/formulabase/formulactl/internal/lg"
)

// fakeRunner scripts the outcome of each external command.
type fakeRunner struct {
	lookPathErr error
	versionOut  string
	versionErr  error
	runErr      error

	outputCalls []string
	runCalls    []string
	lookCalls   []string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	f.outputCalls = append(f.outputCalls, name+" "+strings.Join(args, " "))
	return f.versionOut, f.versionErr
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.runCalls = append(f.runCalls, name+" "+strings.Join(args, " "))
	return f.runErr
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	f.lookCalls = append(f.lookCalls, name)
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + name, nil
}

// fakePrompter replays scripted answers.
type fakePrompter struct {
	answers []bool
	asked   []string
}

func (f *fakePrompter) Confirm(prompt string) (bool, error) {
	f.asked = append(f.asked, prompt)
	if len(f.answers) == 0 {
		return false, nil
	}
	answer := f.answers[0]
	f.answers = f.answers[1:]
	return answer, nil
}

type fakeChecker struct {
	err    error
	called int
}

func (f *fakeChecker) Check(context.Context) error {
	f.called++
	return f.err
}

type fakeMigrator struct {
	err    error
	called int
}

func (f *fakeMigrator) Migrate(context.Context) error {
	f.called++
	return f.err
}

type fixture struct {
	runner   *fakeRunner
	prompt   *fakePrompter
	checker  *fakeChecker
	migrator *fakeMigrator
	out      *bytes.Buffer
	seq      *Sequencer
}

func newFixture(mutate func(*fixture)) *fixture {
	fx := &fixture{
		runner:   &fakeRunner{versionOut: "go version go1.23.6 linux/amd64\n"},
		prompt:   &fakePrompter{answers: []bool{true, true}},
		checker:  &fakeChecker{},
		migrator: &fakeMigrator{},
		out:      &bytes.Buffer{},
	}
	if mutate != nil {
		mutate(fx)
	}
	fx.seq = NewSequencer(Config{}, fx.runner, fx.prompt, fx.checker, fx.migrator, fx.out, lg.Discard)
	return fx
}

func TestRunHappyPath(t *testing.T) {
	fx := newFixture(nil)

	err := fx.seq.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"mongod"}, fx.runner.lookCalls)
	assert.Equal(t, []string{"go mod download"}, fx.runner.runCalls)
	assert.Equal(t, 1, fx.checker.called)
	assert.Equal(t, 1, fx.migrator.called)
	assert.Contains(t, fx.out.String(), "Setup complete")
}

func TestServerMissingOperatorDeclines(t *testing.T) {
	fx := newFixture(func(fx *fixture) {
		fx.runner.lookPathErr = errors.New("not found")
		fx.prompt.answers = []bool{false}
	})

	err := fx.seq.Run(context.Background())

	assert.ErrorIs(t, err, ErrAborted)
	// nothing after the server check may run
	assert.Empty(t, fx.runner.runCalls)
	assert.Zero(t, fx.checker.called)
	assert.Zero(t, fx.migrator.called)
	assert.Contains(t, fx.out.String(), "mongodb.com/atlas")
}

func TestServerMissingOperatorContinues(t *testing.T) {
	fx := newFixture(func(fx *fixture) {
		fx.runner.lookPathErr = errors.New("not found")
		fx.prompt.answers = []bool{true, true}
	})

	err := fx.seq.Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, []string{"go mod download"}, fx.runner.runCalls)
	assert.Equal(t, 1, fx.migrator.called)
}

func TestInstallFailureIsFatal(t *testing.T) {
	fx := newFixture(func(fx *fixture) {
		fx.runner.runErr = errors.New("exit status 1")
	})

	err := fx.seq.Run(context.Background())

	assert.Error(t, err)
	assert.Zero(t, fx.checker.called)
	assert.Zero(t, fx.migrator.called)
	assert.NotContains(t, fx.out.String(), "Setup complete")
}

func TestConnectionFailureIsFatal(t *testing.T) {
	fx := newFixture(func(fx *fixture) {
		fx.checker.err = errors.New("failed to ping MongoDB at mongodb://localhost:27017/")
	})

	err := fx.seq.Run(context.Background())

	assert.Error(t, err)
	assert.Zero(t, fx.migrator.called)
	assert.Contains(t, fx.out.String(), "MONGODB_URI")
	assert.Contains(t, fx.out.String(), "failed to ping")
}

func TestMigrationDeclinedStillSucceeds(t *testing.T) {
	fx := newFixture(func(fx *fixture) {
		fx.prompt.answers = []bool{false} // migration prompt (server is present)
	})

	err := fx.seq.Run(context.Background())

	assert.NoError(t, err)
	assert.Zero(t, fx.migrator.called)
	assert.Contains(t, fx.out.String(), "Skipping migration")
	assert.Contains(t, fx.out.String(), "Setup complete")
}

func TestMigrationFailureIsFatal(t *testing.T) {
	fx := newFixture(func(fx *fixture) {
		fx.migrator.err = errors.New("exit status 1")
	})

	err := fx.seq.Run(context.Background())

	assert.Error(t, err)
	assert.NotContains(t, fx.out.String(), "Setup complete")
}

func TestToolchainFailureIsInformational(t *testing.T) {
	fx := newFixture(func(fx *fixture) {
		fx.runner.versionErr = errors.New("no such file")
	})

	err := fx.seq.Run(context.Background())

	assert.NoError(t, err)
	assert.Contains(t, fx.out.String(), "Could not determine toolchain version")
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() (string, error) {
		fx := newFixture(nil)
		err := fx.seq.Run(context.Background())
		return fx.out.String(), err
	}

	out1, err1 := run()
	out2, err2 := run()

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, out1, out2)
}

func TestPrompterAnswers(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{" y \n", true},
		{"n\n", false},
		{"yes\n", false},
		{"\n", false},
		{"", false}, // EOF
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			var out bytes.Buffer
			p := NewPrompter(strings.NewReader(tt.input), &out)
			ok, err := p.Confirm("continue? ")
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Equal(t, "continue? ", out.String())
		})
	}
}

// failingReader hands out its data once, then fails every read.
type failingReader struct {
	data   string
	err    error
	served bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.served {
		r.served = true
		return copy(p, r.data), nil
	}
	return 0, r.err
}

func TestPrompterReadErrorIsReported(t *testing.T) {
	readErr := errors.New("input stream broken")
	var out bytes.Buffer
	p := NewPrompter(&failingReader{data: "y", err: readErr}, &out)

	ok, err := p.Confirm("continue? ")
	assert.ErrorIs(t, err, readErr)
	assert.False(t, ok)
}
