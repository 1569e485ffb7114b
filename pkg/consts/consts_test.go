//go:build unit

package consts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cmd, err := ParseCommand(" build ")
	require.NoError(t, err)
	assert.Equal(t, Build, cmd)

	_, err = ParseCommand("deploy")
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestCommand_IsPackageScoped(t *testing.T) {
	tests := []struct {
		cmd      Command
		expected bool
	}{
		{Create, true},
		{Build, true},
		{Serve, true},
		{Glint, false},
		{Deps, false},
		{Publish, false},
	}

	for _, tt := range tests {
		t.Run(tt.cmd.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cmd.IsPackageScoped())
		})
	}
}

func TestHookID(t *testing.T) {
	assert.Equal(t, "build.start", HookID(Build, StageStart))
	assert.Equal(t, "glint.cli", HookID(Glint, StageCLI))
}
