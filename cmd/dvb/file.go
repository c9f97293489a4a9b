package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/mkessy/devbench/internal/file"
	"github.com/mkessy/devbench/internal/validate"
	"github.com/spf13/cobra"
)

func newFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Project file tracking commands",
	}

	cmd.AddCommand(newFilePutCmd())
	cmd.AddCommand(newFileListCmd())
	cmd.AddCommand(newFileShowCmd())
	cmd.AddCommand(newFileRmCmd())
	return cmd
}

func newFilePutCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
		fileType   string
		from       string
	)

	cmd := &cobra.Command{
		Use:   "put <path>",
		Short: "Record a file or directory under a project",
		Long:  "Inserts or updates the entry for the given project-relative path. With --from, the local file's content and size are stored.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := validate.NewFile{
				ProjectID: projectID,
				Path:      args[0],
				Type:      fileType,
			}

			if from != "" {
				data, err := os.ReadFile(from)
				if err != nil {
					return fmt.Errorf("dvb: read %s: %w", from, err)
				}
				content := string(data)
				size := int64(len(data))
				in.Content = &content
				in.Size = &size
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			f, err := file.Put(gormDB, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Stored %s as %s\n", f.Path, f.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().StringVar(&fileType, "type", "file", "entry type (file or directory)")
	cmd.Flags().StringVar(&from, "from", "", "local file to read content from")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newFileListCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
		prefix     string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tracked files for a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			files, err := file.List(gormDB, projectID, prefix)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No files found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tTYPE\tSIZE\tMODIFIED")
			for _, f := range files {
				size := "-"
				if f.Size != nil {
					size = fmt.Sprintf("%d", *f.Size)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					f.Path, f.Type, size, f.ModifiedAt.Format("2006-01-02 15:04:05"))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.Flags().StringVar(&prefix, "prefix", "", "restrict to a directory subtree")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newFileShowCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
	)

	cmd := &cobra.Command{
		Use:   "show <path>",
		Short: "Print a tracked file's stored content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			f, err := file.Get(gormDB, projectID, args[0])
			if err != nil {
				return err
			}

			if f.Content == nil {
				return fmt.Errorf("dvb: %s has no stored content", f.Path)
			}
			fmt.Fprint(cmd.OutOrStdout(), *f.Content)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.MarkFlagRequired("project")
	return cmd
}

func newFileRmCmd() *cobra.Command {
	var (
		configPath string
		projectID  string
	)

	cmd := &cobra.Command{
		Use:   "rm <path>",
		Short: "Remove a tracked file entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := file.Remove(gormDB, projectID, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&projectID, "project", "", "project ID (required)")
	cmd.MarkFlagRequired("project")
	return cmd
}
