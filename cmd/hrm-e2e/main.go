// Command hrm-e2e drives the OrangeHRM PIM end-to-end suite.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gotrs-io/hrm-e2e/internal/config"
	"github.com/gotrs-io/hrm-e2e/internal/database"
	"github.com/gotrs-io/hrm-e2e/internal/logging"
	"github.com/gotrs-io/hrm-e2e/internal/suite"
	"github.com/gotrs-io/hrm-e2e/internal/version"
)

// cli holds the values shared by every subcommand.
type cli struct {
	configFile string
	logLevel   string
	noStore    bool
}

func main() {
	ctx, stop := signalContext()
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM, so an interrupted run
// unwinds through its browser teardown instead of dying mid-step.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "hrm-e2e",
		Short: "OrangeHRM PIM end-to-end suite",
		Long: `Logs into OrangeHRM, adds the configured employees through PIM,
verifies each one in the Employee List (cross-checked against the record
store when enabled) and logs out.`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runOnce,
	}
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "config file (default ./hrm-e2e.yaml if present)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "override logging.level")
	root.Flags().BoolVar(&c.noStore, "no-store", false, "skip the record store and report Found / NOT Found only")

	root.AddCommand(c.seedCmd(), c.scheduleCmd(), c.reportCmd(), versionCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hrm-e2e %s\n", version.Full())
		},
	}
}

// setup loads the configuration and builds the logger.
func (c *cli) setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(c.configFile)
	if err != nil {
		return nil, nil, err
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
	}
	return cfg, newLogger(cfg, cmd), nil
}

func newLogger(cfg *config.Config, cmd *cobra.Command) *log.Logger {
	opts := logging.DefaultOptions()
	opts.Level = cfg.Logging.Level
	opts.Format = cfg.Logging.Format
	opts.Output = cmd.ErrOrStderr()
	opts.Prefix = cfg.App.Name
	return logging.New(opts)
}

func newStore(cfg *config.Config) (*database.RecordStore, error) {
	return database.NewRecordStore(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.Table)
}

// newOrchestrator wires one suite run from cfg. The store is attached only
// when the database section is enabled and noStore is unset.
func newOrchestrator(cfg *config.Config, logger *log.Logger, cmd *cobra.Command, noStore bool, metrics *suite.Metrics) (*suite.Orchestrator, error) {
	opts := []suite.Option{
		suite.WithLogger(logger),
		suite.WithOutput(cmd.OutOrStdout()),
	}
	if cfg.Database.Enabled && !noStore {
		store, err := newStore(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, suite.WithStore(store))
	}
	if metrics != nil {
		opts = append(opts, suite.WithMetrics(metrics))
	}
	return suite.New(cfg, suite.BrowserLauncher(cfg, logger), opts...), nil
}

func (c *cli) runOnce(cmd *cobra.Command, args []string) error {
	cfg, logger, err := c.setup(cmd)
	if err != nil {
		return err
	}
	var metrics *suite.Metrics
	if cfg.Metrics.Enabled {
		metrics = suite.NewMetrics()
	}
	o, err := newOrchestrator(cfg, logger, cmd, c.noStore, metrics)
	if err != nil {
		return err
	}
	if _, err := o.Run(cmd.Context()); err != nil {
		logger.Error("Suite failed", "err", err)
		return err
	}
	return nil
}
