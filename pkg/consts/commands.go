// Package consts provides command and lifecycle stage names for the plugin engine.
package consts

import (
	"fmt"
	"strings"
)

// Command names a lifecycle command the runner understands.
type Command string

// Commands understood by the runner.
const (
	// Package commands.
	Create Command = "create"
	Doc    Command = "doc"
	Demo   Command = "demo"
	Serve  Command = "serve"
	Test   Command = "test"
	Build  Command = "build"

	// Workspace commands.
	Glint   Command = "glint"
	Deps    Command = "deps"
	Publish Command = "publish"
)

// Commands lists every command in canonical order.
var Commands = []Command{Create, Glint, Deps, Doc, Demo, Serve, Test, Build, Publish}

// DefaultPluginID identifies the plugin synthesized when nothing is configured.
const DefaultPluginID = "__SIU_PLUGIN__"

// DefaultWorkspace is the directory holding the packages of a monorepo.
const DefaultWorkspace = "packages"

// ParseCommand converts a raw command name into a Command.
func ParseCommand(name string) (Command, error) {
	cmd := Command(strings.TrimSpace(name))
	if !cmd.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	return cmd, nil
}

// Valid reports whether c is one of the known commands.
func (c Command) Valid() bool {
	for _, known := range Commands {
		if c == known {
			return true
		}
	}
	return false
}

// IsPackageScoped reports whether c runs once per workspace package.
// glint, deps and publish run once for the whole workspace.
func (c Command) IsPackageScoped() bool {
	switch c {
	case Glint, Deps, Publish:
		return false
	default:
		return true
	}
}

func (c Command) String() string {
	return string(c)
}
