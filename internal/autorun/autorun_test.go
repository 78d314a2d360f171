package autorun

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"testing"

	"moneypress/internal/config"
)

type fakeLoop struct {
	runs int
	err  error
}

func (f *fakeLoop) Run(context.Context) error {
	f.runs++
	return f.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.DataDir = t.TempDir()
	return &cfg
}

func TestRunnerAcquireRelease(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg, nil, "session-a")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := first.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	data, err := os.ReadFile(cfg.PIDPath())
	if err != nil {
		t.Fatalf("read pid file: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != strconv.Itoa(os.Getpid()) {
		t.Errorf("pid file = %q, want %d", got, os.Getpid())
	}

	second, err := New(cfg, nil, "session-b")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := second.Acquire(); err == nil {
		second.Release()
		t.Fatal("second acquire succeeded while lock held")
	}

	first.Release()
	if _, err := os.Stat(cfg.PIDPath()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("pid file still present after release: %v", err)
	}

	if err := second.Acquire(); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	second.Release()
}

func TestRunnerRunsLoopAndCleansUp(t *testing.T) {
	cfg := testConfig(t)
	runner, err := New(cfg, nil, "session-c")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	loop := &fakeLoop{err: errors.New("loop crashed")}
	if err := runner.Run(context.Background(), loop); err == nil || !strings.Contains(err.Error(), "loop crashed") {
		t.Fatalf("Run err = %v", err)
	}
	if loop.runs != 1 {
		t.Fatalf("loop runs = %d", loop.runs)
	}
	if _, err := os.Stat(cfg.PIDPath()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("pid file not removed: %v", err)
	}
}
