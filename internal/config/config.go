// Package config loads the suite configuration: target application,
// browser, record store, locator table and ambient settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/gotrs-io/hrm-e2e/internal/browser"
	"github.com/gotrs-io/hrm-e2e/internal/models"
)

// EnvPrefix prefixes every environment override, e.g. HRME2E_TARGET_USERNAME.
const EnvPrefix = "HRME2E"

var (
	v  *viper.Viper
	mu sync.RWMutex
)

// Config represents the suite configuration
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Target    TargetConfig            `mapstructure:"target"`
	Browser   BrowserConfig           `mapstructure:"browser"`
	Database  DatabaseConfig          `mapstructure:"database"`
	Employees []models.EmployeeRecord `mapstructure:"employees"`
	Locators  Locators                `mapstructure:"locators"`
	Logging   LoggingConfig           `mapstructure:"logging"`
	Metrics   MetricsConfig           `mapstructure:"metrics"`
	Report    ReportConfig            `mapstructure:"report"`
	Schedule  ScheduleConfig          `mapstructure:"schedule"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type TargetConfig struct {
	LoginURL string `mapstructure:"login_url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type BrowserConfig struct {
	Driver          string        `mapstructure:"driver"`
	Headless        bool          `mapstructure:"headless"`
	SlowMo          time.Duration `mapstructure:"slow_mo"`
	ImplicitWait    time.Duration `mapstructure:"implicit_wait"`
	ExplicitWait    time.Duration `mapstructure:"explicit_wait"`
	PollInterval    time.Duration `mapstructure:"poll_interval"`
	ViewportWidth   int           `mapstructure:"viewport_width"`
	ViewportHeight  int           `mapstructure:"viewport_height"`
	InstallBrowsers bool          `mapstructure:"install_browsers"`
	ScreenshotDir   string        `mapstructure:"screenshot_dir"`
}

type DatabaseConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Driver  string `mapstructure:"driver"`
	DSN     string `mapstructure:"dsn"`
	Table   string `mapstructure:"table"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type MetricsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Textfile string `mapstructure:"textfile"`
}

type ReportConfig struct {
	Path string `mapstructure:"path"`
}

type ScheduleConfig struct {
	Spec    string        `mapstructure:"spec"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// BrowserOptions converts the browser section into launch options.
func (c *BrowserConfig) BrowserOptions() browser.Options {
	return browser.Options{
		Driver:          c.Driver,
		Headless:        c.Headless,
		SlowMo:          c.SlowMo,
		ImplicitWait:    c.ImplicitWait,
		PollInterval:    c.PollInterval,
		ViewportWidth:   c.ViewportWidth,
		ViewportHeight:  c.ViewportHeight,
		InstallBrowsers: c.InstallBrowsers,
	}
}

func newViper() *viper.Viper {
	nv := viper.New()
	nv.SetConfigType("yaml")
	setDefaults(nv)
	nv.SetEnvPrefix(EnvPrefix)
	nv.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	nv.AutomaticEnv()
	return nv
}

// Load reads .env (without overriding the environment), the optional YAML
// file and environment overrides on top of the built-in defaults. With an
// empty configFile, hrm-e2e.yaml is looked up in the working directory and
// is optional.
func Load(configFile string) (*Config, error) {
	if err := gotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	nv := newViper()
	if configFile != "" {
		nv.SetConfigFile(configFile)
		if err := nv.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		nv.SetConfigName("hrm-e2e")
		nv.AddConfigPath(".")
		if err := nv.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	loaded, err := unmarshal(nv)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	v = nv
	return loaded, nil
}

func unmarshal(nv *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Watch reloads the configuration whenever the loaded file changes and
// hands every valid new configuration to onChange. Invalid edits keep the
// previous configuration and are reported through onError.
func Watch(onChange func(*Config), onError func(error)) error {
	mu.RLock()
	nv := v
	mu.RUnlock()
	if nv == nil || nv.ConfigFileUsed() == "" {
		return errors.New("no config file loaded, nothing to watch")
	}

	nv.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		newCfg, err := unmarshal(nv)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reload %s: %w", e.Name, err))
			}
			return
		}
		if onChange != nil {
			onChange(newCfg)
		}
	})
	nv.WatchConfig()
	return nil
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	nv := viper.New()
	setDefaults(nv)
	c := &Config{}
	if err := nv.Unmarshal(c); err != nil {
		panic(fmt.Sprintf("invalid built-in defaults: %v", err))
	}
	return c
}
