package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/mkessy/devbench/internal/model"
	"github.com/mkessy/devbench/internal/models"
	"github.com/mkessy/devbench/internal/validate"
	"github.com/spf13/cobra"
)

func newModelCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Model registry commands",
	}

	cmd.AddCommand(newModelCreateCmd())
	cmd.AddCommand(newModelListCmd())
	cmd.AddCommand(newModelShowCmd())
	cmd.AddCommand(newModelProgressCmd())
	cmd.AddCommand(newModelStatusCmd())
	return cmd
}

func newModelCreateCmd() *cobra.Command {
	var (
		configPath    string
		name          string
		source        string
		modelID       string
		parameters    string
		size          int64
		contextLength int
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new model",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			in := validate.NewModel{
				Name:       name,
				Source:     source,
				ModelID:    modelID,
				Parameters: parameters,
			}
			if cmd.Flags().Changed("size") {
				in.Size = &size
			}
			if cmd.Flags().Changed("context-length") {
				in.ContextLength = &contextLength
			}

			m, err := model.Create(gormDB, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered model %s (%s)\n", m.ID, m.Status)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&name, "name", "", "model display name (required)")
	cmd.Flags().StringVar(&source, "source", "ollama", "model source (ollama, huggingface, custom)")
	cmd.Flags().StringVar(&modelID, "model-id", "", "source-specific model identifier (required)")
	cmd.Flags().StringVar(&parameters, "parameters", "", "parameter count label, e.g. 7b")
	cmd.Flags().Int64Var(&size, "size", 0, "model size in bytes")
	cmd.Flags().IntVar(&contextLength, "context-length", 0, "context window size in tokens")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("model-id")
	return cmd
}

func newModelListCmd() *cobra.Command {
	var (
		configPath string
		source     string
		status     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered models",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			ms, err := model.List(gormDB, model.ListFilters{
				Source: source,
				Status: status,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(ms) == 0 {
				fmt.Fprintln(out, "No models found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSOURCE\tSTATUS\tPROGRESS")
			for _, m := range ms {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\n",
					m.ID, truncate(m.Name, 32), m.Source, m.Status, m.DownloadProgress)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&source, "source", "", "filter by source")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	return cmd
}

func newModelShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show model details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			m, err := model.Get(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", m.ID)
			fmt.Fprintf(out, "Name:        %s\n", m.Name)
			fmt.Fprintf(out, "Source:      %s\n", m.Source)
			fmt.Fprintf(out, "Model ID:    %s\n", m.ModelID)
			fmt.Fprintf(out, "Status:      %s\n", m.Status)
			fmt.Fprintf(out, "Progress:    %d%%\n", m.DownloadProgress)
			if m.Parameters != "" {
				fmt.Fprintf(out, "Parameters:  %s\n", m.Parameters)
			}
			if m.Size != nil {
				fmt.Fprintf(out, "Size:        %d bytes\n", *m.Size)
			}
			if m.ContextLength != nil {
				fmt.Fprintf(out, "Context:     %d tokens\n", *m.ContextLength)
			}
			fmt.Fprintf(out, "Created:     %s\n", m.CreatedAt.Format("2006-01-02 15:04:05"))

			if m.Config != "" && m.Config != models.EmptyDocument {
				fmt.Fprintf(out, "\nConfig:\n%s\n", m.Config)
			}
			if m.Performance != "" && m.Performance != models.EmptyDocument {
				fmt.Fprintf(out, "\nPerformance:\n%s\n", m.Performance)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	return cmd
}

func newModelProgressCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "progress <id> <percent>",
		Short: "Record download progress for a model",
		Long:  "Sets download progress to a 0-100 value. Reaching 100 while downloading marks the model ready.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var progress int
			if _, err := fmt.Sscanf(args[1], "%d", &progress); err != nil {
				return fmt.Errorf("dvb: progress must be an integer, got %q", args[1])
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := model.UpdateProgress(gormDB, args[0], progress); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Model %s at %d%%\n", args[0], progress)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	return cmd
}

func newModelStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Move a model through its lifecycle",
		Long:  "Transitions a model between downloading, ready, running, and error. Invalid transitions are rejected.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := model.UpdateStatus(gormDB, args[0], args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Model %s is now %s\n", args[0], args[1])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	return cmd
}
