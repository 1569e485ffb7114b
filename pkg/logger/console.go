package logger

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/valyala/bytebufferpool"
)

// consoleState is shared by a console and every console indented from it.
type consoleState struct {
	mu        sync.Mutex
	w         io.Writer
	lineStart bool
}

// Console prints plugin output with indentation and styled tags.
type Console struct {
	state  *consoleState
	indent string
	styled bool
	tag    lipgloss.Style
	fail   lipgloss.Style
}

// ConsoleOption customizes a Console.
type ConsoleOption func(*Console)

// WithPlainOutput disables colors and text decoration.
func WithPlainOutput() ConsoleOption {
	return func(c *Console) {
		c.styled = false
	}
}

// NewConsole creates a console writing to w.
func NewConsole(w io.Writer, opts ...ConsoleOption) *Console {
	renderer := lipgloss.NewRenderer(w)
	c := &Console{
		state:  &consoleState{w: w, lineStart: true},
		styled: true,
		tag:    renderer.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Underline(true),
		fail:   renderer.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewDiscardConsole creates a console that drops everything.
func NewDiscardConsole() *Console {
	return NewConsole(io.Discard, WithPlainOutput())
}

// Indent returns a console writing to the same sink with prefix added to every line.
func (c *Console) Indent(prefix string) *Console {
	child := *c
	child.indent = c.indent + prefix
	return &child
}

// Write implements io.Writer, indenting every line.
func (c *Console) Write(p []byte) (int, error) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	for _, b := range p {
		if c.state.lineStart && b != '\n' {
			_, _ = buf.WriteString(c.indent)
		}
		_ = buf.WriteByte(b)
		c.state.lineStart = b == '\n'
	}
	if _, err := c.state.w.Write(buf.B); err != nil {
		return 0, err
	}
	return len(p), nil
}

// Printf prints a formatted line.
func (c *Console) Printf(format string, args ...any) {
	c.println(fmt.Sprintf(format, args...))
}

// Println prints its operands separated by spaces.
func (c *Console) Println(args ...any) {
	c.println(fmt.Sprintln(args...))
}

// OpenTag prints "<name>".
func (c *Console) OpenTag(name string) {
	c.println(c.render(c.tag, "<"+name+">"))
}

// CloseTag prints "</name>".
func (c *Console) CloseTag(name string) {
	c.println(c.render(c.tag, "</"+name+">"))
}

// ErrorBlock prints v wrapped in error tags.
func (c *Console) ErrorBlock(v any) {
	c.println(c.render(c.fail, "<error>"))
	c.Indent("  ").Printf("%v", v)
	c.println(c.render(c.fail, "</error>"))
}

// Blank prints an empty line.
func (c *Console) Blank() {
	_, _ = c.Write([]byte("\n"))
}

func (c *Console) println(s string) {
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	_, _ = c.Write([]byte(s))
}

func (c *Console) render(style lipgloss.Style, s string) string {
	if !c.styled {
		return s
	}
	return style.Render(s)
}
