// Package hooks provides the handler registry, the registration API and the
// execution context handed to plugin handlers.
package hooks

// Handler runs for one lifecycle stage of a command.
type Handler func(c *Context) error

// CLIHandler declares command line options through option.
type CLIHandler func(option OptionFunc) error

// OptionFunc records a command line option such as "-f, --format <format>".
// The returned PromptSetter attaches an interactive prompt to the option.
type OptionFunc func(flags, description string, defaultValue any) PromptSetter

// PromptSetter attaches a prompt to a recorded option.
type PromptSetter func(prompt Prompt)

// PromptKind selects the widget used to ask for a value.
type PromptKind string

// Prompt kinds.
const (
	PromptInput    PromptKind = "input"
	PromptList     PromptKind = "list"
	PromptCheckbox PromptKind = "checkbox"
	PromptConfirm  PromptKind = "confirm"
)

// Prompt asks for the value of an option left empty on the command line.
type Prompt struct {
	// Name is the option key the answer is stored under.
	Name    string
	Kind    PromptKind
	Message string
	Choices []string
	Default any
	// Transform converts the raw answer before it is stored.
	Transform func(answer any) any
}

// CLIOption is a command line option contributed by a plugin.
type CLIOption struct {
	PluginID     string
	Flags        string
	Description  string
	DefaultValue any
	Prompt       *Prompt
}
