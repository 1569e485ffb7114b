package hooks

import (
	"fmt"
	"sync"

	"github.com/siujs/cli/pkg/consts"
)

// Registry stores handlers keyed by "command.stage".
type Registry struct {
	handlers    map[string][]Handler
	cliHandlers map[consts.Command][]CLIHandler
	mu          sync.RWMutex
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers:    make(map[string][]Handler),
		cliHandlers: make(map[consts.Command][]CLIHandler),
	}
}

// Add appends handler to the list of cmd and stage.
func (r *Registry) Add(cmd consts.Command, stage consts.Stage, handler Handler) error {
	if !cmd.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	if stage == consts.StageCLI || !isLifecycleStage(stage) {
		return fmt.Errorf("%w: %s", ErrInvalidStage, stage)
	}
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, consts.HookID(cmd, stage))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := consts.HookID(cmd, stage)
	r.handlers[id] = append(r.handlers[id], handler)
	return nil
}

// AddCLI appends a CLI option handler for cmd.
func (r *Registry) AddCLI(cmd consts.Command, handler CLIHandler) error {
	if !cmd.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	if handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, consts.HookID(cmd, consts.StageCLI))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.cliHandlers[cmd] = append(r.cliHandlers[cmd], handler)
	return nil
}

// Has reports whether at least one handler is registered for cmd and stage.
func (r *Registry) Has(cmd consts.Command, stage consts.Stage) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if stage == consts.StageCLI {
		return len(r.cliHandlers[cmd]) > 0
	}
	return len(r.handlers[consts.HookID(cmd, stage)]) > 0
}

// HasCommandHooks reports whether any lifecycle stage of cmd has a handler.
// CLI option handlers do not count.
func (r *Registry) HasCommandHooks(cmd consts.Command) bool {
	for _, stage := range consts.LifecycleStages {
		if r.Has(cmd, stage) {
			return true
		}
	}
	return false
}

// Handlers returns a copy of the handlers of cmd and stage in registration order.
func (r *Registry) Handlers(cmd consts.Command, stage consts.Stage) []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.handlers[consts.HookID(cmd, stage)]
	out := make([]Handler, len(list))
	copy(out, list)
	return out
}

// CLIHandlers returns a copy of the CLI option handlers of cmd in registration order.
func (r *Registry) CLIHandlers(cmd consts.Command) []CLIHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := r.cliHandlers[cmd]
	out := make([]CLIHandler, len(list))
	copy(out, list)
	return out
}

func isLifecycleStage(stage consts.Stage) bool {
	for _, s := range consts.LifecycleStages {
		if s == stage {
			return true
		}
	}
	return false
}
