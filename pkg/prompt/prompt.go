package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/siujs/cli/pkg/hooks"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=prompt.go -destination=mocks/prompt.gen.go -package=mocks

// Prompter interface provides user interaction functionality.
type Prompter interface {
	// Ask asks the question described by p and returns the transformed answer.
	Ask(p hooks.Prompt) (any, error)

	// Input prompts for free text, returning def on an empty answer.
	Input(message, def string) (string, error)

	// Confirm prompts the user for confirmation with a default value.
	Confirm(message string, defaultYes bool) (bool, error)

	// Select prompts the user to pick one of choices.
	Select(message string, choices []string) (string, error)

	// MultiSelect prompts the user to pick any number of choices.
	MultiSelect(message string, choices []string) ([]string, error)
}

type realPrompt struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

// NewPrompt creates a new Prompt instance reading from stdin.
func NewPrompt() Prompter {
	return NewPromptWithIO(os.Stdin, os.Stdout)
}

// NewPromptWithIO creates a new Prompt instance on the given streams.
func NewPromptWithIO(in io.Reader, out io.Writer) Prompter {
	return &realPrompt{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Ask asks the question described by p and returns the transformed answer.
func (p *realPrompt) Ask(question hooks.Prompt) (any, error) {
	var (
		answer any
		err    error
	)

	switch question.Kind {
	case hooks.PromptInput, "":
		def, _ := question.Default.(string)
		answer, err = p.Input(question.Message, def)
	case hooks.PromptConfirm:
		def, _ := question.Default.(bool)
		answer, err = p.Confirm(question.Message, def)
	case hooks.PromptList:
		answer, err = p.Select(question.Message, question.Choices)
	case hooks.PromptCheckbox:
		answer, err = p.MultiSelect(question.Message, question.Choices)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, question.Kind)
	}
	if err != nil {
		return nil, err
	}

	if question.Transform != nil {
		answer = question.Transform(answer)
	}
	return answer, nil
}

// Confirm prompts the user for confirmation with a default value.
func (p *realPrompt) Confirm(message string, defaultYes bool) (bool, error) {
	var defaultText string
	if defaultYes {
		defaultText = "[Y/n]"
	} else {
		defaultText = "[y/N]"
	}
	fmt.Fprintf(p.out, "%s %s: ", message, defaultText)

	input, err := p.reader.ReadString('\n')
	if err != nil && input == "" {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}

	// Trim whitespace and newlines
	input = strings.TrimSpace(strings.ToLower(input))

	// Use default if input is empty
	if input == "" {
		return defaultYes, nil
	}

	// Check for yes/no responses
	switch input {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, ErrInvalidConfirmationInput
	}
}

// run runs a Bubble Tea program on the prompt streams.
func (p *realPrompt) run(model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithInput(p.in), tea.WithOutput(p.out))
	finalModel, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to run prompt program: %w", err)
	}
	return finalModel, nil
}
