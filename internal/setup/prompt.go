package setup

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter reads a yes/no confirmation from the operator.
type Prompter interface {
	Confirm(prompt string) (bool, error)
}

type readerPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter reads answers line-wise from in and echoes prompts to out.
func NewPrompter(in io.Reader, out io.Writer) Prompter {
	return &readerPrompter{in: bufio.NewReader(in), out: out}
}

// Confirm prints the prompt and reads one answer. Only a case-insensitive
// "y" counts as affirmative; everything else, including EOF, is a no. Any
// other read error is reported to the caller.
func (p *readerPrompter) Confirm(prompt string) (bool, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y", nil
}
