package hooks

import "github.com/siujs/cli/pkg/consts"

// API is the registration surface handed to a plugin factory.
// api.Build().Start(h) is the Go form of registering a "build.start" handler.
type API struct {
	registry *Registry
}

// NewAPI creates an API registering into registry.
func NewAPI(registry *Registry) *API {
	return &API{registry: registry}
}

// Command returns the registration surface of cmd.
func (a *API) Command(cmd consts.Command) *CommandAPI {
	return &CommandAPI{cmd: cmd, registry: a.registry}
}

// Create returns the registration surface of the create command.
func (a *API) Create() *CommandAPI { return a.Command(consts.Create) }

// Glint returns the registration surface of the glint command.
func (a *API) Glint() *CommandAPI { return a.Command(consts.Glint) }

// Deps returns the registration surface of the deps command.
func (a *API) Deps() *CommandAPI { return a.Command(consts.Deps) }

// Doc returns the registration surface of the doc command.
func (a *API) Doc() *CommandAPI { return a.Command(consts.Doc) }

// Demo returns the registration surface of the demo command.
func (a *API) Demo() *CommandAPI { return a.Command(consts.Demo) }

// Serve returns the registration surface of the serve command.
func (a *API) Serve() *CommandAPI { return a.Command(consts.Serve) }

// Test returns the registration surface of the test command.
func (a *API) Test() *CommandAPI { return a.Command(consts.Test) }

// Build returns the registration surface of the build command.
func (a *API) Build() *CommandAPI { return a.Command(consts.Build) }

// Publish returns the registration surface of the publish command.
func (a *API) Publish() *CommandAPI { return a.Command(consts.Publish) }

// CommandAPI registers handlers for a single command.
type CommandAPI struct {
	cmd      consts.Command
	registry *Registry
}

// Command returns the command handlers are registered for.
func (c *CommandAPI) Command() consts.Command {
	return c.cmd
}

// On registers handler for stage.
func (c *CommandAPI) On(stage consts.Stage, handler Handler) error {
	return c.registry.Add(c.cmd, stage, handler)
}

// Start registers a start handler.
func (c *CommandAPI) Start(handler Handler) error {
	return c.On(consts.StageStart, handler)
}

// Process registers a process handler.
func (c *CommandAPI) Process(handler Handler) error {
	return c.On(consts.StageProcess, handler)
}

// Complete registers a complete handler.
func (c *CommandAPI) Complete(handler Handler) error {
	return c.On(consts.StageComplete, handler)
}

// Error registers an error handler.
func (c *CommandAPI) Error(handler Handler) error {
	return c.On(consts.StageError, handler)
}

// Clean registers a clean handler.
func (c *CommandAPI) Clean(handler Handler) error {
	return c.On(consts.StageClean, handler)
}

// CLI registers a CLI option handler.
func (c *CommandAPI) CLI(handler CLIHandler) error {
	return c.registry.AddCLI(c.cmd, handler)
}
