package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mkessy/devbench/internal/user"
	"github.com/mkessy/devbench/internal/validate"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "User account commands",
	}

	cmd.AddCommand(newUserCreateCmd())
	cmd.AddCommand(newUserListCmd())
	return cmd
}

func newUserCreateCmd() *cobra.Command {
	var (
		configPath string
		username   string
		password   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Long:  "Creates a user account. Without --password the password is prompted for without echo.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUserCreate(cmd, configPath, username, password)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	cmd.Flags().StringVar(&username, "username", "", "username (required)")
	cmd.Flags().StringVar(&password, "password", "", "password (prompted when omitted)")
	cmd.MarkFlagRequired("username")
	return cmd
}

func runUserCreate(cmd *cobra.Command, configPath, username, password string) error {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return err
	}

	if password == "" {
		password, err = readPassword(cmd, fmt.Sprintf("Password for %q: ", username))
		if err != nil {
			return err
		}
	}

	u, err := user.Create(gormDB, validate.NewUser{Username: username, Password: password})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", u.Username, u.ID)
	return nil
}

func newUserListCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, gormDB, err := connectFromConfig(configPath)
			if err != nil {
				return err
			}

			users, err := user.List(gormDB)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(users) == 0 {
				fmt.Fprintln(out, "No users found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tUSERNAME\tCREATED")
			for _, u := range users {
				fmt.Fprintf(w, "%s\t%s\t%s\n", u.ID, u.Username, u.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "devbench.yaml", "path to devbench config file")
	return cmd
}

// readPassword reads a password without echo when stdin is a terminal,
// falling back to a plain line read for piped input.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, prompt)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(raw), nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	if !scanner.Scan() {
		return "", fmt.Errorf("read password: no input")
	}
	return strings.TrimSpace(scanner.Text()), nil
}
