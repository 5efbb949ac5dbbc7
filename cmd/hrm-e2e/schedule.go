package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gotrs-io/hrm-e2e/internal/config"
	"github.com/gotrs-io/hrm-e2e/internal/runner"
	"github.com/gotrs-io/hrm-e2e/internal/runner/tasks"
	"github.com/gotrs-io/hrm-e2e/internal/suite"
)

func (c *cli) scheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Run the suite repeatedly on schedule.spec",
		Long: `Runs the suite on the cron schedule in schedule.spec until interrupted.
A run still in progress when the next tick fires skips that tick. When a
config file is in use, edits are picked up without restarting.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.setup(cmd)
			if err != nil {
				return err
			}
			// Metrics accumulate across runs.
			var metrics *suite.Metrics
			if cfg.Metrics.Enabled {
				metrics = suite.NewMetrics()
			}
			task, err := c.suiteTask(cfg, logger, cmd, metrics)
			if err != nil {
				return err
			}

			registry := runner.NewTaskRegistry()
			registry.Register(task)
			r := runner.NewRunner(registry, logger.WithPrefix("runner"))

			ctx := cmd.Context()
			err = config.Watch(func(newCfg *config.Config) {
				task, err := c.suiteTask(newCfg, logger, cmd, metrics)
				if err == nil {
					err = r.Reload(ctx, task)
				}
				if err != nil {
					logger.Error("Failed to apply reloaded config", "err", err)
					return
				}
				logger.Info("Configuration reloaded", "schedule", newCfg.Schedule.Spec)
			}, func(err error) {
				logger.Error("Ignoring invalid config change", "err", err)
			})
			if err != nil {
				logger.Debug("Config hot reload disabled", "reason", err)
			}

			// Start returns once ctx is cancelled by SIGINT/SIGTERM; that is
			// the normal way out of schedule mode.
			if err := r.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func (c *cli) suiteTask(cfg *config.Config, logger *log.Logger, cmd *cobra.Command, metrics *suite.Metrics) (runner.Task, error) {
	o, err := newOrchestrator(cfg, logger, cmd, c.noStore, metrics)
	if err != nil {
		return nil, err
	}
	return tasks.NewSuiteTask(o, cfg.Schedule.Spec, cfg.Schedule.Timeout, logger), nil
}
