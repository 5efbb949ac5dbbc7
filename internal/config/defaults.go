package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
)

// DefaultLoginURL is the OrangeHRM open-source demo.
const DefaultLoginURL = "https://opensource-demo.orangehrmlive.com/web/index.php/auth/login"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "hrm-e2e")
	v.SetDefault("app.env", "development")

	v.SetDefault("target.login_url", DefaultLoginURL)
	v.SetDefault("target.username", "Admin")
	v.SetDefault("target.password", "admin123")

	v.SetDefault("browser.driver", browser.DriverPlaywright)
	v.SetDefault("browser.headless", true)
	v.SetDefault("browser.slow_mo", time.Duration(0))
	v.SetDefault("browser.implicit_wait", 10*time.Second)
	v.SetDefault("browser.explicit_wait", 10*time.Second)
	v.SetDefault("browser.poll_interval", 250*time.Millisecond)
	v.SetDefault("browser.viewport_width", 1280)
	v.SetDefault("browser.viewport_height", 720)
	v.SetDefault("browser.install_browsers", false)
	v.SetDefault("browser.screenshot_dir", "./test-results/screenshots")

	v.SetDefault("database.enabled", true)
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.dsn", "users.db")
	v.SetDefault("database.table", "users")

	v.SetDefault("employees", []map[string]interface{}{
		{"first_name": "Admin111", "last_name": "Test"},
		{"first_name": "Admin112", "last_name": "Test"},
		{"first_name": "Admin113", "last_name": "Test"},
		{"first_name": "Admin114", "last_name": "Test"},
	})

	for key, loc := range DefaultLocators().table() {
		v.SetDefault("locators."+key+".by", string(loc.Strategy))
		v.SetDefault("locators."+key+".value", loc.Value)
	}

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.textfile", "")

	v.SetDefault("report.path", "")

	v.SetDefault("schedule.spec", "@every 1h")
	v.SetDefault("schedule.timeout", 15*time.Minute)
}
