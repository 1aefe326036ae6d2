package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/maksimkurb/cgproxy/src/internal/log"
)

// RestartableRunner calls a function again with exponential backoff when it
// fails or panics. It stops on a nil return, on context cancellation, or
// after MaxRestarts failures.
type RestartableRunner struct {
	name           string
	runFunc        func(ctx context.Context) error
	maxRestarts    int
	restartBackoff time.Duration
	maxBackoff     time.Duration
}

// RunnerConfig contains configuration for RestartableRunner.
type RunnerConfig struct {
	Name           string
	MaxRestarts    int           // 0 = unlimited restarts
	RestartBackoff time.Duration // Initial backoff (default: 1s)
	MaxBackoff     time.Duration // Max backoff (default: 30s)
}

// NewRestartableRunner creates a new restartable runner.
func NewRestartableRunner(cfg RunnerConfig, runFunc func(ctx context.Context) error) *RestartableRunner {
	if cfg.RestartBackoff == 0 {
		cfg.RestartBackoff = 1 * time.Second
	}
	if cfg.MaxBackoff == 0 {
		cfg.MaxBackoff = 30 * time.Second
	}

	return &RestartableRunner{
		name:           cfg.Name,
		runFunc:        runFunc,
		maxRestarts:    cfg.MaxRestarts,
		restartBackoff: cfg.RestartBackoff,
		maxBackoff:     cfg.MaxBackoff,
	}
}

// Run blocks until the function exits cleanly or ctx is cancelled, both of
// which return nil, or until the restart limit is reached, which returns the
// last failure.
func (r *RestartableRunner) Run(ctx context.Context) error {
	backoff := r.restartBackoff

	for failures := 1; ; failures++ {
		err := r.runOnce(ctx)

		if ctx.Err() != nil {
			log.Infof("%s: stopped", r.name)
			return nil
		}
		if err == nil {
			log.Infof("%s: exited cleanly", r.name)
			return nil
		}

		if r.maxRestarts > 0 && failures >= r.maxRestarts {
			log.Errorf("%s: giving up after %d failures: %v", r.name, failures, err)
			return fmt.Errorf("%s failed %d times: %w", r.name, failures, err)
		}

		log.Errorf("%s: %v, restarting in %v", r.name, err, backoff)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Infof("%s: stopped", r.name)
			return nil
		case <-timer.C:
		}

		backoff = min(backoff*2, r.maxBackoff)
	}
}

// runOnce calls runFunc, turning a panic into an error.
func (r *RestartableRunner) runOnce(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()

	return r.runFunc(ctx)
}
