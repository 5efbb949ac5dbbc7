package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gotrs-io/hrm-e2e/internal/config"
	"github.com/gotrs-io/hrm-e2e/internal/models"
	"github.com/gotrs-io/hrm-e2e/internal/suite"
)

func (c *cli) reportCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the last saved run report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				cfg, err := config.Load(c.configFile)
				if err != nil {
					return err
				}
				path = cfg.Report.Path
			}
			if path == "" {
				return errors.New("no report path: set report.path or pass --path")
			}
			report, err := suite.ReadReport(path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s finished %s in %s\n",
				report.RunID, report.FinishedAt.Format("2006-01-02 15:04:05"), report.Duration())
			for _, r := range report.Results {
				fmt.Fprintln(out, suite.Line(r, report.StoreAware))
			}
			fmt.Fprintf(out, "created %d, verified %d, unrecorded %d, not found %d\n",
				len(report.Created),
				report.Count(models.FoundAndVerified),
				report.Count(models.FoundButUnrecorded),
				report.Count(models.NotFound))
			if report.Error != "" {
				fmt.Fprintf(out, "error: %s\n", report.Error)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "report file (default report.path)")
	return cmd
}
