//go:build unit

package hooks

import (
	"bytes"
	"errors"
	"testing"

	"github.com/siujs/cli/pkg/consts"
	"github.com/siujs/cli/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestLogged(t *testing.T) {
	var buf bytes.Buffer
	boom := errors.New("boom")
	c := NewContext(ContextParams{Scope: Scope{PluginID: "p", Command: consts.Build, Package: "foo", Stage: consts.StageStart}})

	err := Logged(logger.NewWriterLogger(&buf), func(*Context) error { return boom })(c)

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "Starting hook: build.start plugin=p")
	assert.Contains(t, buf.String(), "Hook failed: build.start")
}
