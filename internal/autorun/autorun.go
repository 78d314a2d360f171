// Package autorun enforces single-instance execution for continuous mode.
// It acquires a lock file, records the process pid, and tags the run with a
// session identifier before handing control to the workflow loop.
package autorun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/gofrs/flock"

	"moneypress/internal/config"
	"moneypress/internal/logging"
)

// Loop is the long-running workflow entry point guarded by the runner.
type Loop interface {
	Run(ctx context.Context) error
}

// Runner wraps a workflow loop with lock and pid file management.
type Runner struct {
	cfg       *config.Config
	logger    *slog.Logger
	lockPath  string
	pidPath   string
	lock      *flock.Flock
	sessionID string
}

// New constructs a runner for the given configuration.
func New(cfg *config.Config, logger *slog.Logger, sessionID string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("autorun requires configuration")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	lockPath := cfg.LockPath()
	return &Runner{
		cfg:       cfg,
		logger:    logger.With(logging.String(logging.FieldSessionID, sessionID)),
		lockPath:  lockPath,
		pidPath:   cfg.PIDPath(),
		lock:      flock.New(lockPath),
		sessionID: sessionID,
	}, nil
}

// SessionID returns the identifier attached to this run's log entries.
func (r *Runner) SessionID() string {
	return r.sessionID
}

// Acquire takes the single-instance lock and writes the pid file.
func (r *Runner) Acquire() error {
	if err := os.MkdirAll(r.cfg.Paths.DataDir, 0o755); err != nil {
		return fmt.Errorf("autorun: create data directory: %w", err)
	}
	ok, err := r.lock.TryLock()
	if err != nil {
		return fmt.Errorf("autorun: acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("autorun: another instance is already running (lock: %s)", r.lockPath)
	}
	if err := writePIDFile(r.pidPath); err != nil {
		_ = r.lock.Unlock()
		return fmt.Errorf("autorun: write pid file: %w", err)
	}
	return nil
}

// Release removes the pid file and drops the lock.
func (r *Runner) Release() {
	if err := os.Remove(r.pidPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		r.logger.Warn("failed to remove pid file", logging.Error(err))
	}
	if err := r.lock.Unlock(); err != nil {
		r.logger.Warn("failed to release lock", logging.Error(err))
	}
}

// Run acquires the lock, runs the loop until the context ends, then cleans up.
func (r *Runner) Run(ctx context.Context, loop Loop) error {
	if loop == nil {
		return errors.New("autorun: no workflow loop provided")
	}
	if err := r.Acquire(); err != nil {
		return err
	}
	defer r.Release()

	r.logger.Info("continuous mode started",
		logging.String("lock", r.lockPath),
		slog.Int("pid", os.Getpid()))
	return loop.Run(ctx)
}

func writePIDFile(path string) error {
	return os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644)
}
