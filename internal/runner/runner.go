package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"
)

// Runner manages and executes scheduled tasks. A task whose previous run is
// still in flight skips its next tick rather than overlapping, including
// across Reload.
type Runner struct {
	cron     *cron.Cron
	registry *TaskRegistry
	logger   *log.Logger
	wg       sync.WaitGroup

	mu      sync.Mutex
	entries map[string]cron.EntryID
	running map[string]bool
}

// NewRunner creates a new task runner
func NewRunner(registry *TaskRegistry, logger *log.Logger) *Runner {
	cl := cronLogger{logger}
	r := &Runner{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		registry: registry,
		logger:   logger,
		entries:  make(map[string]cron.EntryID),
		running:  make(map[string]bool),
	}
	return r
}

// Start schedules every registered task and blocks until ctx ends.
func (r *Runner) Start(ctx context.Context) error {
	r.logger.Info("Starting task runner")

	for _, task := range r.registry.All() {
		if err := r.schedule(ctx, task); err != nil {
			return err
		}
	}

	r.cron.Start()
	r.logger.Info("Task runner started", "tasks", len(r.registry.All()))

	return r.waitForShutdown(ctx)
}

// Reload replaces the schedule of task, registering it if it is new.
func (r *Runner) Reload(ctx context.Context, task Task) error {
	if _, err := cron.ParseStandard(task.Schedule()); err != nil {
		return fmt.Errorf("invalid schedule for task %s: %w", task.Name(), err)
	}
	r.mu.Lock()
	if id, ok := r.entries[task.Name()]; ok {
		r.cron.Remove(id)
		delete(r.entries, task.Name())
	}
	r.mu.Unlock()

	r.registry.Register(task)
	return r.schedule(ctx, task)
}

// Entries reports how many tasks are currently scheduled.
func (r *Runner) Entries() int {
	return len(r.cron.Entries())
}

func (r *Runner) schedule(ctx context.Context, task Task) error {
	r.logger.Info("Registering task", "task", task.Name(), "schedule", task.Schedule())

	id, err := r.cron.AddFunc(task.Schedule(), func() {
		r.executeTask(ctx, task)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule task %s: %w", task.Name(), err)
	}
	r.mu.Lock()
	r.entries[task.Name()] = id
	r.mu.Unlock()
	return nil
}

// begin marks name as running. It reports false when a run of the same
// task is still in flight; cron's SkipIfStillRunning only guards a single
// entry, and Reload replaces the entry.
func (r *Runner) begin(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running[name] {
		return false
	}
	r.running[name] = true
	return true
}

func (r *Runner) end(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.running, name)
}

// executeTask runs a single task with timeout and error handling
func (r *Runner) executeTask(ctx context.Context, task Task) {
	if !r.begin(task.Name()) {
		r.logger.Info("Skipping tick, previous run still in progress", "task", task.Name())
		return
	}
	defer r.end(task.Name())

	r.wg.Add(1)
	defer r.wg.Done()

	taskCtx, cancel := context.WithTimeout(ctx, task.Timeout())
	defer cancel()

	logger := r.logger.With("task", task.Name())
	logger.Info("Executing task")

	start := time.Now()
	err := task.Run(taskCtx)
	duration := time.Since(start)

	if err != nil {
		logger.Error("Task failed", "duration", duration, "err", err)
	} else {
		logger.Info("Task completed", "duration", duration)
	}
}

// Stop gracefully shuts down the runner
func (r *Runner) Stop() {
	r.logger.Info("Stopping task runner")

	// Stop accepting new tasks
	ctx := r.cron.Stop()

	// Wait for running tasks to complete
	r.wg.Wait()
	<-ctx.Done()

	r.logger.Info("Task runner stopped")
}

// waitForShutdown blocks until ctx ends, then stops the runner. Callers
// cancel ctx on SIGINT/SIGTERM.
func (r *Runner) waitForShutdown(ctx context.Context) error {
	<-ctx.Done()
	r.logger.Info("Context cancelled")
	r.Stop()
	return ctx.Err()
}

// cronLogger routes cron's own logging through the runner logger.
type cronLogger struct {
	l *log.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debug(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Error(msg, append(keysAndValues, "err", err)...)
}
