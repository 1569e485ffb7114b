package fs

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// RunCommandParams describes a command to run.
type RunCommandParams struct {
	Dir  string
	Name string
	Args []string
	Env  []string
	// Stream receives the output while the command runs. Nil keeps it buffered only.
	Stream io.Writer
}

// RunCommand runs a command to completion and returns its combined output.
func (f *realFS) RunCommand(ctx context.Context, params RunCommandParams) (string, error) {
	cmd := exec.CommandContext(ctx, params.Name, params.Args...)
	cmd.Dir = params.Dir
	if len(params.Env) > 0 {
		cmd.Env = append(cmd.Environ(), params.Env...)
	}

	var out bytes.Buffer
	var sink io.Writer = &out
	if params.Stream != nil {
		sink = io.MultiWriter(&out, params.Stream)
	}
	cmd.Stdout = sink
	cmd.Stderr = sink

	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%w: %s %s: %w (output: %s)",
			ErrCommandFailed, params.Name, strings.Join(params.Args, " "), err, strings.TrimSpace(out.String()))
	}
	return out.String(), nil
}
