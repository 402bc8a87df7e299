package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	authEmail    string
	authPassword string
	authTeamName string
)

// authCmd manages the club API session
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Sign in to the club API",
	Long: `Manage the club API session.

Available subcommands:
  login    - Sign in with email and password
  register - Create an account and a team
  logout   - Sign out and forget the stored token
  status   - Show whether you are signed in`,
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email and password",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, s *Services) error {
			if _, err := s.Auth.Login(ctx, authEmail, authPassword); err != nil {
				return err
			}
			printStatus(cmd, s)
			return nil
		})
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and a team",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, s *Services) error {
			if _, err := s.Auth.Register(ctx, authEmail, authPassword, authTeamName); err != nil {
				return err
			}
			printStatus(cmd, s)
			return nil
		})
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, s *Services) error {
			return s.Auth.Logout(ctx)
		})
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are signed in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, s *Services) error {
			printStatus(cmd, s)
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{authLoginCmd, authRegisterCmd} {
		c.Flags().StringVarP(&authEmail, "email", "e", "", "Account email (required)")
		c.Flags().StringVarP(&authPassword, "password", "p", "", "Account password (required)")
		c.MarkFlagRequired("email")
		c.MarkFlagRequired("password")
	}
	authRegisterCmd.Flags().StringVarP(&authTeamName, "team", "t", "", "Name of your new team (required)")
	authRegisterCmd.MarkFlagRequired("team")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
}

func printStatus(cmd *cobra.Command, s *Services) {
	out := cmd.OutOrStdout()
	status := s.Auth.Status()
	if !status.Active {
		fmt.Fprintln(out, mutedStyle.Render("Not signed in"))
		return
	}

	fmt.Fprintln(out, titleStyle.Render("Signed in"))
	if status.ExpiresAt != nil {
		fmt.Fprintf(out, "Session expires %s (%s)\n",
			humanize.Time(*status.ExpiresAt), status.ExpiresAt.Local().Format(time.RFC1123))
	}
}

// withServices runs fn with freshly wired services and releases them after
func withServices(cmd *cobra.Command, fn func(ctx context.Context, s *Services) error) error {
	ctx := cmd.Context()
	services, err := setupServices(ctx, cfg, false)
	if err != nil {
		return err
	}
	defer services.Close()

	return fn(ctx, services)
}
