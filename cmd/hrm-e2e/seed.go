package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) seedCmd() *cobra.Command {
	var list bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the record store table and seed the configured employees",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := c.setup(cmd)
			if err != nil {
				return err
			}
			store, err := newStore(cfg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			inserted, err := store.Seed(ctx, cfg.Employees)
			if err != nil {
				return err
			}
			total, err := store.Count(ctx)
			if err != nil {
				return err
			}
			logger.Info("Seeded record store", "driver", cfg.Database.Driver, "table", store.Table())

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "inserted %d, %d rows in %s\n", inserted, total, store.Table())
			if !list {
				return nil
			}
			rows, err := store.List(ctx)
			if err != nil {
				return err
			}
			for _, r := range rows {
				fmt.Fprintf(out, "%d\t%s\n", r.ID, r.Record().DisplayName())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "print every stored row after seeding")
	return cmd
}
