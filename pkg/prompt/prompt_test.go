//go:build unit

package prompt

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/siujs/cli/pkg/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRealPrompt_Confirm(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		expected   bool
		err        error
	}{
		{name: "empty input uses default yes", input: "\n", defaultYes: true, expected: true},
		{name: "empty input uses default no", input: "\n", defaultYes: false, expected: false},
		{name: "yes", input: "y\n", expected: true},
		{name: "full no", input: " No \n", defaultYes: true, expected: false},
		{name: "no trailing newline", input: "yes", expected: true},
		{name: "invalid", input: "maybe\n", err: ErrInvalidConfirmationInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewPromptWithIO(strings.NewReader(tt.input), &out)

			got, err := p.Confirm("Publish?", tt.defaultYes)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Contains(t, out.String(), "Publish?")
		})
	}
}

func TestRealPrompt_AskConfirmTransform(t *testing.T) {
	p := NewPromptWithIO(strings.NewReader("y\n"), &bytes.Buffer{})

	got, err := p.Ask(hooks.Prompt{
		Kind:    hooks.PromptConfirm,
		Message: "Dry run?",
		Transform: func(answer any) any {
			if answer.(bool) {
				return "yes"
			}
			return "no"
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "yes", got)
}

func TestRealPrompt_AskUnknownKind(t *testing.T) {
	p := NewPromptWithIO(strings.NewReader(""), &bytes.Buffer{})
	_, err := p.Ask(hooks.Prompt{Kind: "slider"})
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestRealPrompt_NoChoices(t *testing.T) {
	p := NewPromptWithIO(strings.NewReader(""), &bytes.Buffer{})

	_, err := p.Select("Pick", nil)
	assert.ErrorIs(t, err, ErrNoChoices)
	_, err = p.MultiSelect("Pick", nil)
	assert.ErrorIs(t, err, ErrNoChoices)
}

func TestSelectModel_FilterAndSelect(t *testing.T) {
	var model tea.Model = initialSelectModel("Select hook:", []string{"pre-commit", "commit-msg", "post-merge"})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, model.(selectModel).cursor)

	model, _ = model.Update(runes("p"))
	model, _ = model.Update(runes("o"))
	m := model.(selectModel)
	assert.Equal(t, []string{"post-merge"}, m.filteredChoices)
	assert.Equal(t, 0, m.cursor)
	assert.Contains(t, m.View(), "Filter: po")

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	require.NotNil(t, model.(selectModel).selected)
	assert.Equal(t, "post-merge", *model.(selectModel).selected)
}

func TestSelectModel_EscClearsFilter(t *testing.T) {
	var model tea.Model = initialSelectModel("Pick", []string{"a", "b"})
	model, _ = model.Update(runes("b"))
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"a", "b"}, model.(selectModel).filteredChoices)
}

func TestCheckboxModel_Toggle(t *testing.T) {
	var model tea.Model = initialCheckboxModel("Select output formats:", []string{"es", "cjs", "umd"})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, []string{"es", "umd"}, model.(checkboxModel).selection())
	assert.Contains(t, model.(checkboxModel).View(), "(*) umd")

	model, _ = model.Update(runes("a"))
	assert.Equal(t, []string{"es", "cjs", "umd"}, model.(checkboxModel).selection())
	model, _ = model.Update(runes("a"))
	assert.Empty(t, model.(checkboxModel).selection())

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, model.(checkboxModel).done)
}

func TestInputModel_ValueFallsBackToDefault(t *testing.T) {
	var model tea.Model = initialInputModel("Version?", "1.0.0")
	assert.Equal(t, "1.0.0", model.(inputModel).value())

	model, _ = model.Update(runes("2.0.0"))
	assert.Equal(t, "2.0.0", model.(inputModel).value())

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.True(t, model.(inputModel).quitting)
}
