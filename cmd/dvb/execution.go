package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/mkessy/devbench/internal/execution"
	"github.com/mkessy/devbench/internal/validate"
	"github.com/spf13/cobra"
)

func newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execution history commands",
	}

	cmd.AddCommand(newExecRecordCmd())
	cmd.AddCommand(newExecListCmd())
	cmd.AddCommand(newExecShowCmd())
	cmd.AddCommand(newExecFinishCmd())
	return cmd
}

func newExecRecordCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
		command    string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record the start of a command run",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			e, err := execution.Create(gormDB, validate.NewExecution{
				ProjectID: projectID,
				Command:   command,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Recorded execution %s\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().StringVar(&command, "command", "", "command line that was run (required)")
	cmd.MarkFlagRequired("project")
	cmd.MarkFlagRequired("command")
	return cmd
}

func newExecListCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List executions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			execs, err := execution.List(gormDB, execution.ListFilters{
				ProjectID: projectID,
				Status:    status,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(execs) == 0 {
				fmt.Fprintln(out, "No executions found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPROJECT\tSTATUS\tSTARTED\tCOMMAND")
			for _, e := range execs {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					e.ID, e.ProjectID, e.Status,
					e.StartTime.Format("2006-01-02 15:04:05"),
					truncate(e.Command, 48))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&projectID, "project", "", "filter by project ID")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	return cmd
}

func newExecShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show execution details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			e, err := execution.Get(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:        %s\n", e.ID)
			fmt.Fprintf(out, "Project:   %s\n", e.ProjectID)
			fmt.Fprintf(out, "Status:    %s\n", e.Status)
			fmt.Fprintf(out, "Command:   %s\n", e.Command)
			fmt.Fprintf(out, "Started:   %s\n", e.StartTime.Format("2006-01-02 15:04:05"))
			if e.EndTime != nil {
				fmt.Fprintf(out, "Ended:     %s\n", e.EndTime.Format("2006-01-02 15:04:05"))
				fmt.Fprintf(out, "Duration:  %s\n", e.EndTime.Sub(e.StartTime).Round(time.Millisecond))
			}
			if e.ExitCode != nil {
				fmt.Fprintf(out, "Exit code: %d\n", *e.ExitCode)
			}
			if e.Output != "" {
				fmt.Fprintf(out, "\nOutput:\n%s\n", e.Output)
			}
			if e.Error != "" {
				fmt.Fprintf(out, "\nError:\n%s\n", e.Error)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	return cmd
}

func newExecFinishCmd() *cobra.Command {
	var (
		configPath string
		status     string
		exitCode   int
		output     string
		errText    string
	)

	cmd := &cobra.Command{
		Use:   "finish <id>",
		Short: "Record the end of a running execution",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := execution.FinishOpts{
				Status: status,
				Output: output,
				Error:  errText,
			}
			if cmd.Flags().Changed("exit-code") {
				opts.ExitCode = &exitCode
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := execution.Finish(gormDB, args[0], opts); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Execution %s finished as %s\n", args[0], status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&status, "status", "completed", "terminal status (completed or failed)")
	cmd.Flags().IntVar(&exitCode, "exit-code", 0, "process exit code")
	cmd.Flags().StringVar(&output, "output", "", "captured stdout")
	cmd.Flags().StringVar(&errText, "error", "", "captured stderr or failure reason")
	return cmd
}
