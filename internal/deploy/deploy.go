// Package deploy pushes the built site to its edge host by shelling out to
// the configured deploy command.
package deploy

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"moneypress/internal/config"
	"moneypress/internal/logging"
)

// Deployer runs the configured deploy command in the site directory.
type Deployer struct {
	cfg    *config.Config
	logger *slog.Logger

	commandRunner func(ctx context.Context, dir, name string, args ...string) error
}

// NewDeployer constructs a deployer.
func NewDeployer(cfg *config.Config, logger *slog.Logger) *Deployer {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Deployer{cfg: cfg, logger: logger}
}

// WithCommandRunner sets a custom command runner (for testing).
func (d *Deployer) WithCommandRunner(runner func(ctx context.Context, dir, name string, args ...string) error) {
	d.commandRunner = runner
}

// Deploy runs the deploy command once. The caller decides when deployment
// is appropriate (auto_deploy or an explicit command).
func (d *Deployer) Deploy(ctx context.Context) error {
	fields := strings.Fields(d.cfg.Deploy.Command)
	if len(fields) == 0 {
		return fmt.Errorf("deploy: command not configured")
	}

	d.logger.Info("deploying site", slog.String("command", d.cfg.Deploy.Command))
	if err := d.run(ctx, d.cfg.Paths.SiteDir, fields[0], fields[1:]...); err != nil {
		return fmt.Errorf("deploy: %w", err)
	}
	d.logger.Info("deploy finished")
	return nil
}

func (d *Deployer) run(ctx context.Context, dir, name string, args ...string) error {
	if d.commandRunner != nil {
		return d.commandRunner(ctx, dir, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	cmd.Dir = dir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
