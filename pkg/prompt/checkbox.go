package prompt

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// checkboxModel represents the Bubble Tea model for multiple choice selection.
type checkboxModel struct {
	message  string
	choices  []string
	checked  map[int]bool
	cursor   int
	done     bool
	quitting bool
}

func initialCheckboxModel(message string, choices []string) checkboxModel {
	return checkboxModel{
		message: message,
		choices: choices,
		checked: make(map[int]bool),
	}
}

// Init initializes the model.
func (m checkboxModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m checkboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.done = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case " ":
		m.checked[m.cursor] = !m.checked[m.cursor]
	case "a":
		all := len(m.selection()) < len(m.choices)
		for i := range m.choices {
			m.checked[i] = all
		}
	}
	return m, nil
}

// selection returns the checked choices in display order.
func (m checkboxModel) selection() []string {
	out := make([]string, 0, len(m.choices))
	for i, choice := range m.choices {
		if m.checked[i] {
			out = append(out, choice)
		}
	}
	return out
}

// View renders the UI.
func (m checkboxModel) View() string {
	if m.done || m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(fmt.Sprintf("? %s  [Space to toggle, a to toggle all]\n\n", m.message))
	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		box := "( )"
		if m.checked[i] {
			box = "(*)"
		}
		s.WriteString(fmt.Sprintf("%s %s %s\n", cursor, box, choice))
	}
	s.WriteString("\nPress Enter to confirm, Ctrl+C or q to quit")
	return s.String()
}

// MultiSelect prompts the user to pick any number of choices.
func (p *realPrompt) MultiSelect(message string, choices []string) ([]string, error) {
	if len(choices) == 0 {
		return nil, ErrNoChoices
	}

	finalModel, err := p.run(initialCheckboxModel(message, choices))
	if err != nil {
		return nil, err
	}

	model, ok := finalModel.(checkboxModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}
	if model.quitting {
		return nil, ErrAborted
	}
	return model.selection(), nil
}
