package main

import (
	"fmt"
	"time"

	"github.com/mkessy/devbench/internal/janitor"
	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	var (
		configPath string
		watch      bool
		maxAgeFlag string
	)

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Fail stale running executions",
		Long:  "Marks executions still running past the configured max age as failed. With --watch, keeps running on the configured cron schedule.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			maxAge := cfg.MaxAge()
			if maxAgeFlag != "" {
				maxAge, err = time.ParseDuration(maxAgeFlag)
				if err != nil {
					return fmt.Errorf("dvb: invalid --max-age %q: %w", maxAgeFlag, err)
				}
			}

			if watch {
				return janitor.Watch(cmd.Context(), gormDB, cfg.Sweep.Schedule, maxAge)
			}

			result, err := janitor.SweepStale(gormDB, maxAge)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Failed %d stale execution(s)\n", result.Failed)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().BoolVar(&watch, "watch", false, "run continuously on the configured schedule")
	cmd.Flags().StringVar(&maxAgeFlag, "max-age", "", "override the configured max age, e.g. 1h")
	return cmd
}
