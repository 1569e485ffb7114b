package config

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/siujs/cli/pkg/logger"
)

// DefaultWatchInterval is the polling interval of a Watcher.
const DefaultWatchInterval = time.Second

// WatcherParams contains parameters for creating a new Watcher.
type WatcherParams struct {
	Manager  Manager
	Interval time.Duration
	// MaxRetries bounds the reload attempts after a change. Zero means 5.
	MaxRetries uint64
	Logger     logger.Logger
}

// Watcher polls the config file and reloads it when its fingerprint changes.
type Watcher struct {
	manager    Manager
	interval   time.Duration
	maxRetries uint64
	logger     logger.Logger
	last       string
}

// NewWatcher creates a new Watcher.
func NewWatcher(params WatcherParams) *Watcher {
	w := &Watcher{
		manager:    params.Manager,
		interval:   params.Interval,
		maxRetries: params.MaxRetries,
		logger:     params.Logger,
	}
	if w.interval <= 0 {
		w.interval = DefaultWatchInterval
	}
	if w.maxRetries == 0 {
		w.maxRetries = 5
	}
	if w.logger == nil {
		w.logger = logger.NewNoopLogger()
	}
	w.logger = logger.WithComponent(w.logger, "config-watcher")
	return w
}

// Watch calls onChange with the reloaded configuration every time the file
// changes, until ctx is done. A file that stays invalid after the retries
// is reported and skipped.
func (w *Watcher) Watch(ctx context.Context, onChange func(Config) error) error {
	if w.last == "" {
		if err := w.Prime(); err != nil {
			return err
		}
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		current, err := Fingerprint(w.manager.GetConfigPath())
		if err != nil {
			w.logger.Logf("Failed to fingerprint config: %v", err)
			continue
		}
		if current == w.last {
			continue
		}
		w.last = current
		w.logger.Logf("Config changed, reloading %s", w.manager.GetConfigPath())

		config, err := w.reload(ctx)
		if err != nil {
			w.logger.Logf("Failed to reload config: %v", err)
			continue
		}
		if err := onChange(config); err != nil {
			return err
		}
	}
}

// Prime records the current fingerprint as the unchanged state.
func (w *Watcher) Prime() error {
	last, err := Fingerprint(w.manager.GetConfigPath())
	if err != nil {
		return err
	}
	w.last = last
	return nil
}

func (w *Watcher) reload(ctx context.Context) (Config, error) {
	var config Config
	op := func() error {
		loaded, err := w.manager.GetConfig()
		if err != nil {
			return err
		}
		config = loaded
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(w.interval/4), w.maxRetries),
		ctx,
	)
	if err := backoff.Retry(op, policy); err != nil {
		return Config{}, err
	}
	return config, nil
}
