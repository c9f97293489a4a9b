package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/mkessy/devbench/internal/github"
	"github.com/mkessy/devbench/internal/models"
	"github.com/mkessy/devbench/internal/project"
	"github.com/mkessy/devbench/internal/validate"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project management commands",
	}

	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectShowCmd())
	cmd.AddCommand(newProjectUpdateCmd())
	cmd.AddCommand(newProjectImportCmd())
	cmd.AddCommand(newProjectArchiveCmd())
	return cmd
}

func newProjectCreateCmd() *cobra.Command {
	var (
		configPath  string
		name        string
		description string
		userID      string
		projectType string
		path        string
		githubURL   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			p, err := project.Create(gormDB, validate.NewProject{
				Name:        name,
				Description: description,
				UserID:      userID,
				Type:        projectType,
				Path:        path,
				GithubURL:   githubURL,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", p.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&name, "name", "", "project name (required)")
	cmd.Flags().StringVar(&description, "description", "", "project description")
	cmd.Flags().StringVar(&userID, "user", "", "owning user ID (required)")
	cmd.Flags().StringVar(&projectType, "type", "local", "project type (local, github, template)")
	cmd.Flags().StringVar(&path, "path", "", "workspace path (required)")
	cmd.Flags().StringVar(&githubURL, "github-url", "", "GitHub repository URL")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("path")
	return cmd
}

func newProjectListCmd() *cobra.Command {
	var (
		configPath  string
		userID      string
		status      string
		projectType string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			projects, err := project.List(gormDB, project.ListFilters{
				UserID: userID,
				Status: status,
				Type:   projectType,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tTYPE\tSTATUS\tPATH")
			for _, p := range projects {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, truncate(p.Name, 32), p.Type, p.Status, truncate(p.Path, 48))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&userID, "user", "", "filter by owning user ID")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().StringVar(&projectType, "type", "", "filter by type")
	return cmd
}

func newProjectShowCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show project details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			p, err := project.Get(gormDB, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", p.ID)
			fmt.Fprintf(out, "Name:        %s\n", p.Name)
			fmt.Fprintf(out, "Type:        %s\n", p.Type)
			fmt.Fprintf(out, "Status:      %s\n", p.Status)
			fmt.Fprintf(out, "Owner:       %s\n", p.UserID)
			fmt.Fprintf(out, "Path:        %s\n", p.Path)
			if p.GithubURL != "" {
				fmt.Fprintf(out, "GitHub:      %s\n", p.GithubURL)
			}
			fmt.Fprintf(out, "Created:     %s\n", p.CreatedAt.Format("2006-01-02 15:04:05"))
			fmt.Fprintf(out, "Updated:     %s\n", p.UpdatedAt.Format("2006-01-02 15:04:05"))

			if p.Description != "" {
				fmt.Fprintf(out, "\nDescription:\n%s\n", p.Description)
			}
			if p.Metadata != "" && p.Metadata != models.EmptyDocument {
				fmt.Fprintf(out, "\nMetadata:\n%s\n", p.Metadata)
			}
			fmt.Fprintf(out, "\nExecutions: %d\n", len(p.Executions))
			fmt.Fprintf(out, "Files:      %d\n", len(p.Files))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	return cmd
}

func newProjectUpdateCmd() *cobra.Command {
	var (
		configPath  string
		name        string
		description string
		status      string
		path        string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a project",
		Long:  "Updates project fields. Status transitions are validated.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			updates := make(map[string]interface{})

			if cmd.Flags().Changed("name") {
				updates["name"] = name
			}
			if cmd.Flags().Changed("description") {
				updates["description"] = description
			}
			if cmd.Flags().Changed("status") {
				updates["status"] = status
			}
			if cmd.Flags().Changed("path") {
				updates["path"] = path
			}

			if len(updates) == 0 {
				return fmt.Errorf("no fields to update; use --name, --description, --status, or --path")
			}

			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := project.Update(gormDB, args[0], updates); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&status, "status", "", "new status")
	cmd.Flags().StringVar(&path, "path", "", "new workspace path")
	return cmd
}

func newProjectImportCmd() *cobra.Command {
	var (
		configPath string
		userID     string
		path       string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "import <github-url>",
		Short: "Import a GitHub repository as a project",
		Long:  "Creates a github-type project and fills its metadata from the repository (description, default branch, language).",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjectImport(cmd, configPath, args[0], userID, path, name)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&userID, "user", "", "owning user ID (required)")
	cmd.Flags().StringVar(&path, "path", "", "workspace path (required)")
	cmd.Flags().StringVar(&name, "name", "", "project name (defaults to the repository name)")
	cmd.MarkFlagRequired("user")
	cmd.MarkFlagRequired("path")
	return cmd
}

func runProjectImport(cmd *cobra.Command, configPath, rawURL, userID, path, name string) error {
	cfg, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	owner, repo, err := github.ParseRepoURL(rawURL)
	if err != nil {
		return err
	}
	if name == "" {
		name = repo
	}

	ctx := cmd.Context()
	client := github.NewClient(ctx, cfg.GitHubToken())
	metadata, err := github.RepoMetadata(ctx, client, owner, repo)
	if err != nil {
		return err
	}

	description, _ := metadata["description"].(string)
	p, err := project.Create(gormDB, validate.NewProject{
		Name:        name,
		Description: description,
		UserID:      userID,
		Type:        "github",
		Path:        path,
		GithubURL:   github.CanonicalURL(owner, repo),
		Metadata:    metadata,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Imported %s/%s as project %s\n", owner, repo, p.ID)
	if branch, ok := metadata["default_branch"].(string); ok {
		fmt.Fprintf(out, "Default branch: %s\n", branch)
	}
	return nil
}

func newProjectArchiveCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "archive <id>",
		Short: "Archive a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			if err := project.Archive(gormDB, args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Archived project %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	return cmd
}
