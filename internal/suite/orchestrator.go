// Package suite sequences the page flows into one end-to-end run: seed the
// record store, log in, create the employee batch, verify it in the
// employee list and log out.
package suite

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/config"
	"github.com/gotrs-io/hrm-e2e/internal/logging"
	"github.com/gotrs-io/hrm-e2e/internal/models"
	"github.com/gotrs-io/hrm-e2e/internal/pages"
)

// Store is the record store as the orchestrator uses it.
type Store interface {
	EnsureSchema(ctx context.Context) error
	Seed(ctx context.Context, records []models.EmployeeRecord) (int, error)
	pages.RecordChecker
}

// Launcher starts a browser session.
type Launcher func(ctx context.Context) (browser.Session, error)

// Orchestrator runs the suite. It is not safe for concurrent Run calls;
// the schedule runner never overlaps runs.
type Orchestrator struct {
	cfg      *config.Config
	launch   Launcher
	store    Store
	reporter *Reporter
	metrics  *Metrics
	logger   *log.Logger
	now      func() time.Time
}

// Option customises an Orchestrator.
type Option func(*Orchestrator)

// WithStore attaches the record store. Without one, schema and seed steps
// are skipped and verification is two-way.
func WithStore(s Store) Option {
	return func(o *Orchestrator) { o.store = s }
}

// WithOutput sets where outcome lines are printed.
func WithOutput(w io.Writer) Option {
	return func(o *Orchestrator) { o.reporter = NewReporter(w) }
}

// WithMetrics records run and step metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) { o.now = now }
}

// New creates an orchestrator for cfg using launch to obtain the session.
func New(cfg *config.Config, launch Launcher, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:      cfg,
		launch:   launch,
		reporter: NewReporter(os.Stdout),
		logger:   logging.Discard(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BrowserLauncher launches sessions from the browser section of cfg.
func BrowserLauncher(cfg *config.Config, logger *log.Logger) Launcher {
	return func(ctx context.Context) (browser.Session, error) {
		return browser.Launch(ctx, cfg.Browser.BrowserOptions(), logging.Printf(logger))
	}
}

// Run performs one full pass. The returned report is never nil; on error it
// holds whatever completed before the failure. The browser session, once
// launched, is closed exactly once before Run returns.
func (o *Orchestrator) Run(ctx context.Context) (*models.RunReport, error) {
	report := &models.RunReport{
		RunID:      uuid.NewString(),
		StartedAt:  o.now(),
		StoreAware: o.store != nil,
	}
	logger := o.logger.With("run", report.RunID)
	logger.Info("Starting run", "url", o.cfg.Target.LoginURL, "employees", len(o.cfg.Employees))

	err := o.run(ctx, logger, report)

	report.FinishedAt = o.now()
	if err != nil {
		report.Error = err.Error()
		logger.Error("Run failed", "err", err, "duration", report.Duration())
	} else {
		logger.Info("Run finished",
			"verified", report.Count(models.FoundAndVerified),
			"unrecorded", report.Count(models.FoundButUnrecorded),
			"not_found", report.Count(models.NotFound),
			"duration", report.Duration())
	}
	o.publish(logger, report, err)
	return report, err
}

func (o *Orchestrator) run(ctx context.Context, logger *log.Logger, report *models.RunReport) (err error) {
	records := o.cfg.Employees
	explicit := o.cfg.Browser.ExplicitWait

	if o.store != nil {
		if err := o.step(ctx, logger, "ensure_schema", "", o.store.EnsureSchema); err != nil {
			return err
		}
		err := o.step(ctx, logger, "seed", "", func(ctx context.Context) error {
			n, err := o.store.Seed(ctx, records)
			logger.Debug("Seeded record store", "inserted", n)
			return err
		})
		if err != nil {
			return err
		}
	}

	var session browser.Session
	err = o.step(ctx, logger, "launch_browser", o.cfg.Browser.Driver, func(ctx context.Context) error {
		var err error
		session, err = o.launch(ctx)
		return err
	})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			o.screenshot(logger, session, report.RunID)
		}
		if cerr := session.Close(); cerr != nil {
			logger.Warn("Failed to close browser session", "err", cerr)
		}
	}()

	login := pages.NewLoginPage(session, o.cfg.Locators, explicit)
	dashboard := pages.NewDashboardPage(session, o.cfg.Locators, explicit)
	pim := pages.NewPIMPage(session, o.cfg.Locators, explicit)
	var checker pages.RecordChecker
	if o.store != nil {
		checker = o.store
	}
	list := pages.NewEmployeeListPage(session, o.cfg.Locators, explicit, checker)

	if err := o.step(ctx, logger, "navigate", o.cfg.Target.LoginURL, func(ctx context.Context) error {
		return session.Navigate(ctx, o.cfg.Target.LoginURL)
	}); err != nil {
		return err
	}
	if err := o.step(ctx, logger, "login", o.cfg.Target.Username, func(ctx context.Context) error {
		return login.Login(ctx, o.cfg.Target.Username, o.cfg.Target.Password)
	}); err != nil {
		return err
	}
	if err := o.step(ctx, logger, "open_pim", "", dashboard.GoToEmployeeModule); err != nil {
		return err
	}

	for _, r := range records {
		if err := o.step(ctx, logger, "add_employee", r.DisplayName(), func(ctx context.Context) error {
			return pim.AddEmployee(ctx, r.FirstName, r.LastName)
		}); err != nil {
			return err
		}
		report.Created = append(report.Created, r)
		// Saving redirects to the personal details page.
		if err := o.step(ctx, logger, "open_pim", "", dashboard.GoToEmployeeModule); err != nil {
			return err
		}
	}

	if err := o.step(ctx, logger, "open_employee_list", "", pim.GoToEmployeeList); err != nil {
		return err
	}

	for _, r := range records {
		var outcome models.Outcome
		if err := o.step(ctx, logger, "verify", r.DisplayName(), func(ctx context.Context) error {
			var err error
			outcome, err = list.Verify(ctx, r)
			return err
		}); err != nil {
			return err
		}
		result := models.VerificationResult{Record: r, Outcome: outcome}
		report.Results = append(report.Results, result)
		o.reporter.Report(result, list.StoreAware())
	}

	return o.step(ctx, logger, "logout", "", dashboard.Logout)
}

// step runs one named stage, timing it and wrapping its error with the
// stage name and detail.
func (o *Orchestrator) step(ctx context.Context, logger *log.Logger, name, detail string, fn func(context.Context) error) error {
	start := o.now()
	logger.Debug("Step", "step", name, "detail", detail)
	err := fn(ctx)
	if o.metrics != nil {
		o.metrics.ObserveStep(name, o.now().Sub(start), err)
	}
	if err != nil {
		if detail != "" {
			return fmt.Errorf("%s %s: %w", name, detail, err)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (o *Orchestrator) screenshot(logger *log.Logger, session browser.Session, runID string) {
	dir := o.cfg.Browser.ScreenshotDir
	if dir == "" {
		return
	}
	path := filepath.Join(dir, fmt.Sprintf("%s_%d.png", runID, o.now().Unix()))
	// The run already failed; a fresh context keeps a cancelled run from
	// losing its screenshot.
	ctx, cancel := context.WithTimeout(context.Background(), o.cfg.Browser.ImplicitWait)
	defer cancel()
	if err := session.Screenshot(ctx, path); err != nil {
		logger.Warn("Failed to capture screenshot", "path", path, "err", err)
		return
	}
	logger.Info("Captured failure screenshot", "path", path)
}

func (o *Orchestrator) publish(logger *log.Logger, report *models.RunReport, err error) {
	if o.metrics != nil {
		o.metrics.ObserveRun(report, err)
		if path := o.cfg.Metrics.Textfile; path != "" {
			if werr := o.metrics.WriteTextfile(path); werr != nil {
				logger.Warn("Failed to write metrics textfile", "path", path, "err", werr)
			}
		}
	}
	if path := o.cfg.Report.Path; path != "" {
		if werr := WriteReport(path, report); werr != nil {
			logger.Warn("Failed to write run report", "path", path, "err", werr)
		}
	}
}
