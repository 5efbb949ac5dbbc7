// Package tasks holds the runner tasks.
package tasks

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gotrs-io/hrm-e2e/internal/models"
	"github.com/gotrs-io/hrm-e2e/internal/runner"
)

// SuiteName is the registry name of the end-to-end suite task.
const SuiteName = "pim-e2e-suite"

// Suite is satisfied by *suite.Orchestrator.
type Suite interface {
	Run(ctx context.Context) (*models.RunReport, error)
}

// SuiteTask runs the end-to-end suite on a schedule.
type SuiteTask struct {
	suite    Suite
	schedule string
	timeout  time.Duration
	logger   *log.Logger
}

// NewSuiteTask creates the task. A non-positive timeout falls back to 15m.
func NewSuiteTask(s Suite, schedule string, timeout time.Duration, logger *log.Logger) runner.Task {
	if timeout <= 0 {
		timeout = 15 * time.Minute
	}
	return &SuiteTask{suite: s, schedule: schedule, timeout: timeout, logger: logger}
}

func (t *SuiteTask) Name() string {
	return SuiteName
}

func (t *SuiteTask) Schedule() string {
	return t.schedule
}

func (t *SuiteTask) Timeout() time.Duration {
	return t.timeout
}

// Run executes one suite pass. Individual NotFound outcomes are logged but
// only a fatal run error fails the task.
func (t *SuiteTask) Run(ctx context.Context) error {
	report, err := t.suite.Run(ctx)
	if err != nil {
		return err
	}
	if missing := report.Count(models.NotFound); missing > 0 {
		t.logger.Warn("Employees missing from list", "run", report.RunID, "not_found", missing)
	}
	return nil
}
