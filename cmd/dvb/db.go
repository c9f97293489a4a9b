package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/mkessy/devbench/internal/config"
	"github.com/mkessy/devbench/internal/db"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBInitCmd())
	cmd.AddCommand(newDBResetCmd())
	return cmd
}

func newDBInitCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the devbench database",
		Long:  "Migrates all tables and seeds the admin account.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBInit(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	return cmd
}

func runDBInit(cmd *cobra.Command, configPath string) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprintf(out, "Loaded config from %s (%s)\n", configPath, cfg.Database.Driver)

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(db.AllModels()))

	password, err := readPassword(cmd, fmt.Sprintf("Password for initial user %q: ", cfg.Admin.Username))
	if err != nil {
		return err
	}

	admin, err := db.SeedAdmin(gormDB, cfg.Admin.Username, password)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Admin account %s ready (%s)\n", admin.Username, admin.ID)

	fmt.Fprintln(out, "\ndevbench database initialized successfully.")
	return nil
}

func newDBResetCmd() *cobra.Command {
	var (
		configPath string
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop and re-create all devbench tables",
		Long: `Drops every devbench table and re-runs migrations.

All stored users, projects, models, executions and files are lost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, configPath, yes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, configPath string, skipConfirm bool) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if !skipConfirm {
		if !confirmReset(cmd) {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return err
	}

	// Children before parents so foreign keys don't block the drop.
	models := db.AllModels()
	for i := len(models) - 1; i >= 0; i-- {
		if err := gormDB.Migrator().DropTable(models[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	fmt.Fprintf(out, "Dropped %d tables\n", len(models))

	if err := db.AutoMigrate(gormDB); err != nil {
		return err
	}
	fmt.Fprintf(out, "Migrated %d tables\n", len(models))

	fmt.Fprintln(out, "\ndevbench database reset successfully.")
	return nil
}

func confirmReset(cmd *cobra.Command) bool {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()

	fmt.Fprintln(out, "WARNING: This will permanently delete all devbench data.")
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes"
	}
	return false
}

// connectFromConfig loads config and returns a GORM DB connection.
func connectFromConfig(configPath string) (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	gormDB, err := db.Connect(cfg.Database)
	if err != nil {
		return nil, nil, err
	}

	return cfg, gormDB, nil
}
