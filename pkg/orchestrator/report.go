package orchestrator

import (
	"errors"
	"fmt"
	"sync"

	"github.com/siujs/cli/pkg/consts"
)

// Failure is an error captured for one plugin and one package.
type Failure struct {
	PluginID string
	Command  consts.Command
	// Package is empty for workspace commands.
	Package string
	// Clean is set when the failure comes from a clean handler.
	Clean bool
	Err   error
}

func (f Failure) Error() string {
	scope := f.PluginID + ":" + string(f.Command)
	if f.Package != "" {
		scope += " " + f.Package
	}
	if f.Clean {
		scope += " (clean)"
	}
	return fmt.Sprintf("%s: %v", scope, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Report summarizes one ApplyPlugins run.
type Report struct {
	RunID   string
	Command consts.Command
	// Packages lists the visited packages in order.
	Packages []string
	Failures []Failure

	mu sync.Mutex
}

func (r *Report) addFailure(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Failures = append(r.Failures, f)
}

// Failed reports whether any plugin failed.
func (r *Report) Failed() bool {
	return len(r.Failures) > 0
}

// Err joins the failures under ErrRunFailed, or returns nil.
func (r *Report) Err() error {
	if !r.Failed() {
		return nil
	}
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, f)
	}
	return fmt.Errorf("%w (%d): %w", ErrRunFailed, len(r.Failures), errors.Join(errs...))
}
