package config

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"

	"github.com/robfig/cron/v3"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/database"
)

var identifierRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidIdentifier reports whether name is safe to splice into SQL as a table name.
func ValidIdentifier(name string) bool {
	return identifierRe.MatchString(name)
}

// Validate checks the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errs []error
	add := func(format string, args ...interface{}) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if u, err := url.Parse(c.Target.LoginURL); err != nil || u.Scheme == "" || u.Host == "" {
		add("target.login_url %q is not an absolute URL", c.Target.LoginURL)
	}
	if c.Target.Username == "" || c.Target.Password == "" {
		add("target.username and target.password are required")
	}

	switch c.Browser.Driver {
	case browser.DriverPlaywright, browser.DriverChromedp:
	default:
		add("browser.driver %q must be %q or %q", c.Browser.Driver, browser.DriverPlaywright, browser.DriverChromedp)
	}
	if c.Browser.ImplicitWait <= 0 {
		add("browser.implicit_wait must be positive")
	}
	if c.Browser.ExplicitWait <= 0 {
		add("browser.explicit_wait must be positive")
	}

	if c.Database.Enabled {
		if !database.SupportedDriver(c.Database.Driver) {
			add("database.driver %q is not supported", c.Database.Driver)
		}
		if c.Database.DSN == "" {
			add("database.dsn is required when the database is enabled")
		}
		if !ValidIdentifier(c.Database.Table) {
			add("database.table %q is not a valid identifier", c.Database.Table)
		}
	}

	if len(c.Employees) == 0 {
		add("employees must list at least one record")
	}
	seen := make(map[string]bool, len(c.Employees))
	for i, e := range c.Employees {
		if e.FirstName == "" || e.LastName == "" {
			add("employees[%d]: first_name and last_name are required", i)
			continue
		}
		key := e.FirstName + "\x00" + e.LastName
		if seen[key] {
			add("employees[%d]: duplicate record %q", i, e.DisplayName())
		}
		seen[key] = true
	}

	errs = append(errs, c.Locators.Validate()...)

	if c.Schedule.Spec != "" {
		if _, err := cron.ParseStandard(c.Schedule.Spec); err != nil {
			add("schedule.spec %q: %v", c.Schedule.Spec, err)
		}
	}

	switch c.Logging.Format {
	case "", "text", "json", "logfmt":
	default:
		add("logging.format %q must be text, json or logfmt", c.Logging.Format)
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
