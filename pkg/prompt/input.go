package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel represents the Bubble Tea model for free text input.
type inputModel struct {
	message  string
	input    textinput.Model
	done     bool
	quitting bool
}

func initialInputModel(message, def string) inputModel {
	input := textinput.New()
	input.Placeholder = def
	input.Focus()
	return inputModel{message: message, input: input}
}

// Init initializes the model.
func (m inputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model.
func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the UI.
func (m inputModel) View() string {
	if m.done || m.quitting {
		return ""
	}
	return fmt.Sprintf("? %s\n%s\n", m.message, m.input.View())
}

// value returns the typed text, or the placeholder when nothing was typed.
func (m inputModel) value() string {
	if v := strings.TrimSpace(m.input.Value()); v != "" {
		return v
	}
	return m.input.Placeholder
}

// Input prompts for free text, returning def on an empty answer.
func (p *realPrompt) Input(message, def string) (string, error) {
	finalModel, err := p.run(initialInputModel(message, def))
	if err != nil {
		return "", err
	}

	model, ok := finalModel.(inputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if model.quitting {
		return "", ErrAborted
	}
	return model.value(), nil
}
