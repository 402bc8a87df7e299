package main

import (
	"context"

	"github.com/spf13/cobra"
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show your team, budget and roster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withServices(cmd, func(ctx context.Context, s *Services) error {
			team, err := s.Team.GetMyTeam(ctx)
			if err != nil {
				return err
			}
			printTeam(cmd.OutOrStdout(), team)
			return nil
		})
	},
}
