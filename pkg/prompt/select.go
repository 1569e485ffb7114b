package prompt

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// selectModel represents the Bubble Tea model for single choice selection.
type selectModel struct {
	message         string
	choices         []string
	filteredChoices []string
	cursor          int
	filter          string
	selected        *string
	quitting        bool
}

// initialSelectModel creates a new select model.
func initialSelectModel(message string, choices []string) selectModel {
	return selectModel{
		message:         message,
		choices:         choices,
		filteredChoices: choices,
	}
}

// Init initializes the model.
func (m selectModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor, edits the filter or picks the highlighted choice.
func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if m.cursor < len(m.filteredChoices) {
			selected := m.filteredChoices[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down":
		if m.cursor < len(m.filteredChoices)-1 {
			m.cursor++
		}
	case "backspace":
		if m.filter != "" {
			m.setFilter(m.filter[:len(m.filter)-1])
		}
	case "esc":
		m.setFilter("")
	default:
		if len(key) == 1 {
			m.setFilter(m.filter + key)
		}
	}
	return m, nil
}

// setFilter keeps the choices containing filter, ignoring case.
func (m *selectModel) setFilter(filter string) {
	m.filter = filter
	m.filteredChoices = m.choices
	if filter != "" {
		m.filteredChoices = nil
		for _, choice := range m.choices {
			if strings.Contains(strings.ToLower(choice), strings.ToLower(filter)) {
				m.filteredChoices = append(m.filteredChoices, choice)
			}
		}
	}
	if m.cursor >= len(m.filteredChoices) {
		m.cursor = 0
	}
}

// View renders the UI.
func (m selectModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var s strings.Builder
	s.WriteString(fmt.Sprintf("? %s  [Use arrows to move, type to filter]\n\n", m.message))

	if m.filter != "" {
		s.WriteString(fmt.Sprintf("Filter: %s\n\n", m.filter))
	}

	for i, choice := range m.filteredChoices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		s.WriteString(fmt.Sprintf("%s %s\n", cursor, choice))
	}

	s.WriteString("\nPress Enter to select, Ctrl+C to quit")
	if m.filter != "" {
		s.WriteString(", Esc to clear filter")
	}

	return s.String()
}

// Select prompts the user to pick one of choices.
func (p *realPrompt) Select(message string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", ErrNoChoices
	}

	finalModel, err := p.run(initialSelectModel(message, choices))
	if err != nil {
		return "", err
	}

	model, ok := finalModel.(selectModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}
	if model.selected == nil {
		return "", ErrAborted
	}
	return *model.selected, nil
}
