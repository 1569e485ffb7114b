package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/siujs/cli/pkg/consts"
)

const namespace = "siu"

type prometheusRecorder struct {
	hooksTotal      *prometheus.CounterVec
	hookFailures    *prometheus.CounterVec
	hookDuration    *prometheus.HistogramVec
	processDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder creates a Recorder whose collectors are registered on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) (Recorder, error) {
	r := &prometheusRecorder{
		hooksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hook_invocations_total",
				Help:      "Number of hook handler invocations.",
			},
			[]string{"plugin", "command", "stage"},
		),
		hookFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "hook_failures_total",
				Help:      "Number of hook handlers that failed.",
			},
			[]string{"plugin", "command", "stage"},
		),
		hookDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "hook_duration_seconds",
				Help:      "Duration of hook handler invocations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"plugin", "command", "stage"},
		),
		processDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "process_duration_seconds",
				Help:      "Duration of a plugin lifecycle run for one package.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"plugin", "command", "failed"},
		),
	}

	for _, c := range []prometheus.Collector{r.hooksTotal, r.hookFailures, r.hookDuration, r.processDuration} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRegister, err)
		}
	}
	return r, nil
}

func (r *prometheusRecorder) HookInvoked(pluginID string, cmd consts.Command, stage consts.Stage, took time.Duration) {
	r.hooksTotal.WithLabelValues(pluginID, string(cmd), string(stage)).Inc()
	r.hookDuration.WithLabelValues(pluginID, string(cmd), string(stage)).Observe(took.Seconds())
}

func (r *prometheusRecorder) HookFailed(pluginID string, cmd consts.Command, stage consts.Stage) {
	r.hookFailures.WithLabelValues(pluginID, string(cmd), string(stage)).Inc()
}

func (r *prometheusRecorder) ProcessObserved(pluginID string, cmd consts.Command, took time.Duration, failed bool) {
	r.processDuration.WithLabelValues(pluginID, string(cmd), strconv.FormatBool(failed)).Observe(took.Seconds())
}
