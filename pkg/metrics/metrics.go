// Package metrics records hook and lifecycle activity.
package metrics

import (
	"time"

	"github.com/siujs/cli/pkg/consts"
)

//go:generate go run go.uber.org/mock/mockgen@v0.5.2 -source=metrics.go -destination=mocks/metrics.gen.go -package=mocks

// Recorder receives lifecycle events.
type Recorder interface {
	// HookInvoked records one handler invocation and its duration.
	HookInvoked(pluginID string, cmd consts.Command, stage consts.Stage, took time.Duration)
	// HookFailed records a handler that returned an error, panicked or timed out.
	HookFailed(pluginID string, cmd consts.Command, stage consts.Stage)
	// ProcessObserved records one lifecycle run of a plugin for a package.
	ProcessObserved(pluginID string, cmd consts.Command, took time.Duration, failed bool)
}

type noopRecorder struct{}

// NewNoopRecorder returns a Recorder that drops every event.
func NewNoopRecorder() Recorder {
	return noopRecorder{}
}

func (noopRecorder) HookInvoked(string, consts.Command, consts.Stage, time.Duration) {}

func (noopRecorder) HookFailed(string, consts.Command, consts.Stage) {}

func (noopRecorder) ProcessObserved(string, consts.Command, time.Duration, bool) {}
