package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/models"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultLoginURL, cfg.Target.LoginURL)
	assert.Equal(t, "Admin", cfg.Target.Username)
	assert.Equal(t, "admin123", cfg.Target.Password)
	assert.Equal(t, "users.db", cfg.Database.DSN)
	assert.Equal(t, "users", cfg.Database.Table)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Browser.ExplicitWait)
	assert.Equal(t, 10*time.Second, cfg.Browser.ImplicitWait)

	assert.Equal(t, []models.EmployeeRecord{
		{FirstName: "Admin111", LastName: "Test"},
		{FirstName: "Admin112", LastName: "Test"},
		{FirstName: "Admin113", LastName: "Test"},
		{FirstName: "Admin114", LastName: "Test"},
	}, cfg.Employees)

	assert.Equal(t, DefaultLocators(), cfg.Locators)
}

func TestLocatorTable(t *testing.T) {
	l := DefaultLocators()
	assert.Equal(t, browser.XPath("//button[text()=' Add ']"), l.AddButton)
	assert.Equal(t, browser.XPath("//button[text()=' Save ']"), l.SaveButton)
	assert.Equal(t, browser.Class("oxd-userdropdown-tab"), l.UserDropdown)
	assert.Len(t, l.table(), 13)
	assert.Empty(t, l.Validate())

	l.UserDropdown = browser.Class("")
	assert.Len(t, l.Validate(), 1)
}

func TestLoadFromFile(t *testing.T) {
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "hrm-e2e.yaml")
	content := `
target:
  username: Auditor
browser:
  driver: chromedp
  explicit_wait: 3s
database:
  driver: sqlite3
  dsn: /tmp/seed.db
employees:
  - first_name: Jane
    last_name: Roe
locators:
  save_button:
    by: css
    value: "button[type='submit']"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Auditor", cfg.Target.Username)
	assert.Equal(t, "admin123", cfg.Target.Password, "defaults survive partial files")
	assert.Equal(t, browser.DriverChromedp, cfg.Browser.Driver)
	assert.Equal(t, 3*time.Second, cfg.Browser.ExplicitWait)
	assert.Equal(t, "/tmp/seed.db", cfg.Database.DSN)
	assert.Equal(t, []models.EmployeeRecord{{FirstName: "Jane", LastName: "Roe"}}, cfg.Employees)
	assert.Equal(t, browser.CSS("button[type='submit']"), cfg.Locators.SaveButton)
	assert.Equal(t, browser.Name("firstName"), cfg.Locators.FirstName)

}

func TestLoadEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HRME2E_TARGET_PASSWORD", "s3cret")
	t.Setenv("HRME2E_DATABASE_ENABLED", "false")
	t.Setenv("HRME2E_LOCATORS_PIM_MENU_VALUE", "//span[text()='Employees']")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Target.Password)
	assert.False(t, cfg.Database.Enabled)
	assert.Equal(t, browser.XPath("//span[text()='Employees']"), cfg.Locators.PIMMenu)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("HRME2E_TARGET_USERNAME=FromDotEnv\nHRME2E_BROWSER_DRIVER=chromedp\n"), 0o644))
	t.Setenv("HRME2E_BROWSER_DRIVER", "playwright")
	t.Cleanup(func() { os.Unsetenv("HRME2E_TARGET_USERNAME") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "FromDotEnv", cfg.Target.Username)
	assert.Equal(t, browser.DriverPlaywright, cfg.Browser.Driver, "existing env wins over .env")
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad url", func(c *Config) { c.Target.LoginURL = "not a url" }, "target.login_url"},
		{"missing password", func(c *Config) { c.Target.Password = "" }, "target.password"},
		{"bad driver", func(c *Config) { c.Browser.Driver = "selenium" }, "browser.driver"},
		{"zero explicit wait", func(c *Config) { c.Browser.ExplicitWait = 0 }, "browser.explicit_wait"},
		{"bad table", func(c *Config) { c.Database.Table = "users; DROP TABLE x" }, "database.table"},
		{"bad db driver", func(c *Config) { c.Database.Driver = "oracle" }, "database.driver"},
		{"no employees", func(c *Config) { c.Employees = nil }, "at least one record"},
		{"duplicate employee", func(c *Config) {
			c.Employees = append(c.Employees, c.Employees[0])
		}, "duplicate record"},
		{"blank name", func(c *Config) {
			c.Employees = []models.EmployeeRecord{{FirstName: "Solo"}}
		}, "first_name and last_name"},
		{"bad locator", func(c *Config) { c.Locators.ListRows = browser.Locator{Strategy: "id", Value: "rows"} }, "locators.list_rows"},
		{"bad schedule", func(c *Config) { c.Schedule.Spec = "every now and then" }, "schedule.spec"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("sqlite alias accepted", func(t *testing.T) {
		cfg := Default()
		cfg.Database.Driver = "sqlite"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("database checks skipped when disabled", func(t *testing.T) {
		cfg := Default()
		cfg.Database.Enabled = false
		cfg.Database.Table = ""
		assert.NoError(t, cfg.Validate())
	})
}

func TestLocatorsValidateOrder(t *testing.T) {
	l := DefaultLocators()
	l.Username = browser.Locator{}
	l.ListRows = browser.Locator{}
	l.AddButton = browser.Locator{}

	for i := 0; i < 5; i++ {
		errs := l.Validate()
		require.Len(t, errs, 3)
		assert.Contains(t, errs[0].Error(), "locators.add_button")
		assert.Contains(t, errs[1].Error(), "locators.list_rows")
		assert.Contains(t, errs[2].Error(), "locators.username")
	}
}

func TestBrowserOptions(t *testing.T) {
	cfg := Default()
	cfg.Browser.Driver = browser.DriverChromedp
	cfg.Browser.ImplicitWait = 4 * time.Second

	opts := cfg.Browser.BrowserOptions()
	assert.Equal(t, browser.DriverChromedp, opts.Driver)
	assert.Equal(t, 4*time.Second, opts.ImplicitWait)
	assert.True(t, opts.Headless)
}

func TestValidIdentifier(t *testing.T) {
	assert.True(t, ValidIdentifier("users"))
	assert.True(t, ValidIdentifier("_seed_users2"))
	assert.False(t, ValidIdentifier("2users"))
	assert.False(t, ValidIdentifier("users-table"))
	assert.False(t, ValidIdentifier(""))
}
