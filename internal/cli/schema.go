package cli

import (
	"fmt"

	"github.com/ErlanBelekov/league-manager/internal/infrastructure/postgres"
	"github.com/spf13/cobra"
)

func newSchemaCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Apply the bootstrap schema",
		Long:  "Creates the users, teams, games and link tables if they do not exist. Safe to run repeatedly.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := s.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := postgres.ApplySchema(cmd.Context(), pool); err != nil {
				return err
			}
			s.logger.Info("schema applied")
			fmt.Fprintln(cmd.OutOrStdout(), "schema applied")
			return nil
		},
	}
}
