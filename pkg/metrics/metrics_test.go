//go:build unit

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/siujs/cli/pkg/consts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	rec.HookInvoked("p", consts.Build, consts.StageStart, time.Millisecond)
	rec.HookInvoked("p", consts.Build, consts.StageStart, time.Millisecond)
	rec.HookFailed("p", consts.Build, consts.StageStart)
	rec.ProcessObserved("p", consts.Build, time.Second, true)

	r := rec.(*prometheusRecorder)
	assert.Equal(t, 2.0, testutil.ToFloat64(r.hooksTotal.WithLabelValues("p", "build", "start")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.hookFailures.WithLabelValues("p", "build", "start")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.processDuration))
}

func TestPrometheusRecorder_DoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewPrometheusRecorder(reg)
	require.NoError(t, err)

	_, err = NewPrometheusRecorder(reg)
	assert.ErrorIs(t, err, ErrRegister)
}

func TestNoopRecorder(t *testing.T) {
	rec := NewNoopRecorder()
	assert.NotPanics(t, func() {
		rec.HookInvoked("p", consts.Build, consts.StageStart, 0)
		rec.HookFailed("p", consts.Build, consts.StageStart)
		rec.ProcessObserved("p", consts.Build, 0, false)
	})
}
